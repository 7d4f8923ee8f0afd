package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceValidate(t *testing.T) {
	tests := []struct {
		name    string
		ns      Namespace
		wantErr bool
	}{
		{"valid", Namespace{Vendor: "acme", App: "tool"}, false},
		{"mixed case", Namespace{Vendor: "Acme", App: "My Tool"}, false},
		{"empty vendor", Namespace{App: "tool"}, true},
		{"empty app", Namespace{Vendor: "acme"}, true},
		{"dot dot", Namespace{Vendor: "..", App: "tool"}, true},
		{"slash", Namespace{Vendor: "acme", App: "a/b"}, true},
		{"backslash", Namespace{Vendor: `a\b`, App: "tool"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ns.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidNamespace)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Equal(t, "acme/tool", Namespace{Vendor: "acme", App: "tool"}.String())
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("net.port"))
	assert.ErrorIs(t, ValidateName(""), ErrInvalidName)
	assert.ErrorIs(t, ValidateName("--port"), ErrInvalidName)
	assert.ErrorIs(t, ValidateName("a=b"), ErrInvalidName)
	assert.ErrorIs(t, ValidateName("a b"), ErrInvalidName)
	assert.ErrorIs(t, ValidateName("a#b"), ErrInvalidName)
}

func TestTokens(t *testing.T) {
	entries := []Entry{
		{Name: "port", Value: "8080"},
		{Name: "net.proxy", Value: "http://proxy:3128"},
		{Name: "expr", Value: "a=b"},
		{Name: "empty", Value: ""},
		{Name: "", Value: "orphan"},
	}

	assert.Equal(t, []string{
		"--port=8080",
		"--net.proxy=http://proxy:3128",
		"--expr=a=b",
	}, Tokens(entries))

	assert.Empty(t, Tokens(nil))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	ns := Namespace{Vendor: "acme", App: "tool"}
	s := NewMemoryStore()

	assert.False(t, s.Exists(ns))
	entries, err := s.Enumerate(ctx, ns)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.True(t, s.Exists(ns), "enumerating creates the namespace")

	require.NoError(t, s.Set(ctx, ns, "b", "2"))
	require.NoError(t, s.Set(ctx, ns, "a", "1"))

	entries, err = s.Enumerate(ctx, ns)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}, entries)

	value, ok, err := s.Get(ctx, ns, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", value)

	removed, err := s.Unset(ctx, ns, "a")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Unset(ctx, ns, "a")
	require.NoError(t, err)
	assert.False(t, removed)

	assert.ErrorIs(t, s.Set(ctx, ns, "", "x"), ErrInvalidName)
}

func TestNoopStore(t *testing.T) {
	ctx := context.Background()
	var s Manager = NoopStore{}

	entries, err := s.Enumerate(ctx, Namespace{Vendor: "acme", App: "tool"})
	assert.NoError(t, err)
	assert.Empty(t, entries)

	assert.ErrorIs(t, s.Set(ctx, Namespace{}, "a", "b"), ErrReadOnly)
	_, err = s.Unset(ctx, Namespace{}, "a")
	assert.ErrorIs(t, err, ErrReadOnly)
}
