package template

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycho-core/console-app/pkg/respfile"
	"github.com/tycho-core/console-app/pkg/schema"
)

func sampleSchema(t *testing.T) *schema.Schema {
	t.Helper()

	s := schema.New()
	s.AddInternalOptions()
	s.Global().
		Switch("verbose", "chatty output", false).
		Switch("color", "coloured output", true).
		Switch("quiet", "suppress output\nwarnings still print", false).
		Int("net.port", "listen port", 8080).
		Duration("net.timeout", "dial timeout", 3*time.Second).
		String("net.proxy.host", "proxy host", "proxy.local").
		String("net.host", "host name\nused for binding", "localhost")
	s.Visible().
		String("name", "display name", "demo").
		Strings("tags", "labels", []string{"a", "b"})
	schema.Required[string](s.Run(), "input", "input file")
	s.Positional("input")
	require.NoError(t, s.Err())
	return s
}

func TestWriteConfigFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConfigFile(&buf, "demo", sampleSchema(t)))

	want := strings.Join([]string{
		"# demo configuration file",
		"",
		"# chatty output, uncomment option to enable",
		"#verbose",
		"",
		"# coloured output, uncomment option to enable",
		"color",
		"",
		"# suppress output",
		"# warnings still print, uncomment option to enable",
		"#quiet",
		"",
		"# display name",
		"name=demo",
		"",
		"# labels",
		"tags=a,b",
		"",
		"# input file",
		"input=",
		"",
		"[net]",
		"# listen port",
		"port=8080",
		"",
		"# dial timeout",
		"timeout=3s",
		"",
		"# proxy host",
		"net.proxy.host=proxy.local",
		"",
		"# host name",
		"# used for binding",
		"host=localhost",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteConfigFile_InternalOptionsOmitted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConfigFile(&buf, "demo", sampleSchema(t)))
	assert.NotContains(t, buf.String(), "genresponse")
	assert.NotContains(t, buf.String(), "response-file")
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	s := sampleSchema(t)

	var buf bytes.Buffer
	require.NoError(t, WriteConfigFile(&buf, "demo", s))

	tokens := respfile.Parse(&buf)
	assert.ElementsMatch(t, []string{
		"--color",
		"--name=demo",
		"--tags=a,b",
		"--net.port=8080",
		"--net.timeout=3s",
		"--net.proxy.host=proxy.local",
		"--net.host=localhost",
	}, tokens)

	values := schema.NewValues(s, schema.PolicyOverride)
	require.NoError(t, values.Apply(schema.SourceResponseFile, tokens))

	for _, d := range s.Descriptors(schema.SegmentGlobal, schema.SegmentVisible) {
		want, _ := d.DefaultString()
		got, ok := values.Lookup(d.Name)
		require.True(t, ok, d.Name)
		assert.Equal(t, want, got, d.Name)
	}
	assert.False(t, values.IsSet("verbose"), "switches off by default stay commented out")
	assert.False(t, values.IsSet("quiet"), "every line of a multi-line description is a comment")
}

func TestWriteUsage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUsage(&buf, "Demo application", sampleSchema(t)))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Demo application\n"))

	run := strings.Index(out, "Run options:")
	global := strings.Index(out, "Global options:")
	internal := strings.Index(out, "Internal options:")
	require.NotEqual(t, -1, run)
	require.NotEqual(t, -1, global)
	require.NotEqual(t, -1, internal)
	assert.Less(t, run, global)
	assert.Less(t, global, internal)

	assert.Contains(t, out, "--input string")
	assert.Contains(t, out, "--net.port int")
	assert.Contains(t, out, "(default 8080)")
	assert.Contains(t, out, "--help")
	assert.NotContains(t, out, "--name", "visible options are not listed")
}

func TestWriteUsage_SkipsEmptySegments(t *testing.T) {
	s := schema.New()
	s.AddInternalOptions()

	var buf bytes.Buffer
	require.NoError(t, WriteUsage(&buf, "", s))
	assert.NotContains(t, buf.String(), "Run options")
	assert.NotContains(t, buf.String(), "Global options")
	assert.Contains(t, buf.String(), "Internal options:")
}
