package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidNamespace is returned for a namespace that cannot address a store.
	ErrInvalidNamespace = errors.New("invalid store namespace")

	// ErrInvalidName is returned when an entry name cannot be stored.
	ErrInvalidName = errors.New("invalid entry name")

	// ErrReadOnly is returned by stores that cannot be modified.
	ErrReadOnly = errors.New("store is read-only")
)

// Namespace addresses the entries of one application.
type Namespace struct {
	Vendor string
	App    string
}

// String renders the namespace as vendor/app.
func (n Namespace) String() string {
	return n.Vendor + "/" + n.App
}

// Validate checks that both parts are usable as a single path element.
func (n Namespace) Validate() error {
	for _, part := range []struct{ label, value string }{{"vendor", n.Vendor}, {"app", n.App}} {
		switch {
		case part.value == "":
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidNamespace, part.label)
		case part.value == "." || part.value == "..":
			return fmt.Errorf("%w: %s %q is not allowed", ErrInvalidNamespace, part.label, part.value)
		case strings.ContainsAny(part.value, `/\`):
			return fmt.Errorf("%w: %s %q must not contain path separators", ErrInvalidNamespace, part.label, part.value)
		}
	}
	return nil
}

// Entry is one persisted option value.
type Entry struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Store is a persistent per-application option store.
type Store interface {
	// Enumerate returns every entry of ns. A namespace that does not exist
	// yet is created empty and yields no entries.
	Enumerate(ctx context.Context, ns Namespace) ([]Entry, error)
}

// Manager is a Store whose entries can be edited.
type Manager interface {
	Store

	Get(ctx context.Context, ns Namespace, name string) (string, bool, error)
	Set(ctx context.Context, ns Namespace, name, value string) error
	// Unset removes an entry and reports whether it existed.
	Unset(ctx context.Context, ns Namespace, name string) (bool, error)
}

// ValidateName checks that name can be replayed as a --name=value token.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("%w: %q must not start with '-'", ErrInvalidName, name)
	case strings.ContainsAny(name, "= \t\r\n#"):
		return fmt.Errorf("%w: %q must not contain '=', '#' or whitespace", ErrInvalidName, name)
	}
	return nil
}

// Tokens turns entries into --name=value argument tokens, in entry order.
// Entries with an empty name or value produce no token, matching the
// response file rule for empty values.
func Tokens(entries []Entry) []string {
	tokens := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" || e.Value == "" {
			continue
		}
		tokens = append(tokens, "--"+e.Name+"="+e.Value)
	}
	return tokens
}

// entriesFromMap returns the map contents as entries sorted by name.
func entriesFromMap(m map[string]string) []Entry {
	entries := make([]Entry, 0, len(m))
	for name, value := range m {
		entries = append(entries, Entry{Name: name, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}
