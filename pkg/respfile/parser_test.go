package respfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Line
	}{
		{"blank", "", Line{Kind: LineEmpty}},
		{"whitespace", "   \t ", Line{Kind: LineEmpty}},
		{"comment only", "  # nothing here", Line{Kind: LineEmpty}},
		{"group", "[net]", Line{Kind: LineGroup, Group: "net"}},
		{"group with comment", "[net]   # network", Line{Kind: LineGroup, Group: "net"}},
		{"empty group", "[]", Line{Kind: LineGroup, Group: ""}},
		{"pair", "port=8080", Line{Kind: LinePair, Key: "port", Value: "8080"}},
		{"pair with spaces", "port   =   8080  ", Line{Kind: LinePair, Key: "port", Value: "8080"}},
		{"pair splits at first equals", "expr = a=b", Line{Kind: LinePair, Key: "expr", Value: "a=b"}},
		{"pair with empty value", "proxy =", Line{Kind: LinePair, Key: "proxy", Value: ""}},
		{"pair with trailing comment", "port = 80 # http", Line{Kind: LinePair, Key: "port", Value: "80"}},
		{"switch", "verbose", Line{Kind: LineSwitch, Key: "verbose"}},
		{"unterminated header is a switch", "[net", Line{Kind: LineSwitch, Key: "[net"}},
		{"indented switch", "   verbose  ", Line{Kind: LineSwitch, Key: "verbose"}},
		{"windows line ending", "port = 1\r", Line{Kind: LinePair, Key: "port", Value: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.raw))
		})
	}
}

func TestLineToken(t *testing.T) {
	tests := []struct {
		name   string
		line   Line
		scope  string
		want   string
		wantOK bool
	}{
		{"pair without scope", Line{Kind: LinePair, Key: "key", Value: "value"}, "", "--key=value", true},
		{"pair in scope", Line{Kind: LinePair, Key: "key", Value: "value"}, "g", "--g.key=value", true},
		{"dotted pair ignores scope", Line{Kind: LinePair, Key: "other.key", Value: "v"}, "g", "--other.key=v", true},
		{"empty value", Line{Kind: LinePair, Key: "key"}, "g", "", false},
		{"empty key", Line{Kind: LinePair, Value: "v"}, "", "", false},
		{"switch without scope", Line{Kind: LineSwitch, Key: "sw"}, "", "--sw", true},
		{"switch in scope", Line{Kind: LineSwitch, Key: "sw"}, "g", "--g.sw", true},
		{"group yields nothing", Line{Kind: LineGroup, Group: "g"}, "", "", false},
		{"empty yields nothing", Line{Kind: LineEmpty}, "g", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.line.Token(tt.scope)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "pairs without group",
			input: "alpha = 1\nbeta=two\n",
			want:  []string{"--alpha=1", "--beta=two"},
		},
		{
			name:  "group prefixes bare keys",
			input: "[g]\nkey = value\n",
			want:  []string{"--g.key=value"},
		},
		{
			name:  "dotted key keeps its own prefix",
			input: "[g]\nother.key = value\n",
			want:  []string{"--other.key=value"},
		},
		{
			name:  "empty value produces no token",
			input: "[g]\nkey =\nnext = 1\n",
			want:  []string{"--g.next=1"},
		},
		{
			name:  "switch inside group",
			input: "[g]\nsw\n",
			want:  []string{"--g.sw"},
		},
		{
			name:  "comments do not reset scope",
			input: "[g]\n\n# comment\n   \nkey = v\n",
			want:  []string{"--g.key=v"},
		},
		{
			name:  "new header replaces scope",
			input: "[a]\nx = 1\n[b]\nx = 2\n",
			want:  []string{"--a.x=1", "--b.x=2"},
		},
		{
			name:  "empty header returns to root",
			input: "[a]\nx = 1\n[]\ny = 2\n",
			want:  []string{"--a.x=1", "--y=2"},
		},
		{
			name:  "order is preserved",
			input: "z = 1\na = 2\nz = 3\n",
			want:  []string{"--z=1", "--a=2", "--z=3"},
		},
		{
			name:  "last line without newline",
			input: "verbose",
			want:  []string{"--verbose"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(strings.NewReader(tt.input)))
		})
	}
}

func TestParse_PairWithoutGroupIsUnchanged(t *testing.T) {
	for _, key := range []string{"a", "name", "log-level", "x_y"} {
		for _, value := range []string{"1", "some value", "a=b", "/tmp/file"} {
			got := Parse(strings.NewReader(key + " = " + value))
			require.Len(t, got, 1)
			assert.Equal(t, "--"+key+"="+value, got[0])
		}
	}
}

func TestReadFile(t *testing.T) {
	t.Run("reads and parses", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.rsp")
		require.NoError(t, os.WriteFile(path, []byte("[net]\nport = 80\nipv6\n"), 0644))

		tokens, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"--net.port=80", "--net.ipv6"}, tokens)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "missing.rsp"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
