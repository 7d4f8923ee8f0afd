package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/tycho-core/console-app/pkg/logging"
)

// Collision records two sources setting the same option.
type Collision struct {
	Name     string
	Previous Source
	Incoming Source
	Kept     Source
}

type entry struct {
	flags  *pflag.FlagSet
	source Source
}

// Values is the resolved configuration: every option that any source set
// explicitly, with its provenance, backed by the schema defaults.
type Values struct {
	schema     *Schema
	policy     Policy
	defaults   *pflag.FlagSet
	entries    map[string]entry
	collisions []Collision
}

// NewValues returns an empty resolution over s.
func NewValues(s *Schema, policy Policy) *Values {
	return &Values{
		schema:   s,
		policy:   policy,
		defaults: s.FlagSet("defaults"),
		entries:  make(map[string]entry),
	}
}

// Schema returns the schema the values resolve.
func (v *Values) Schema() *Schema {
	return v.schema
}

// Apply parses the tokens of one source against the full schema and merges
// the explicitly set options according to the policy. Tokens are either all
// accepted or the whole source is rejected with a *SourceError.
//
// Only command line tokens may be positional or carry their value in the
// following token; every other source must use --name or --name=value.
func (v *Values) Apply(src Source, tokens []string) error {
	fs := v.schema.FlagSet(src.String())

	if src != SourceCommandLine {
		if err := v.checkSelfContained(tokens); err != nil {
			return &SourceError{Source: src, Err: err}
		}
	}

	if err := fs.Parse(tokens); err != nil {
		return &SourceError{Source: src, Err: err}
	}

	if err := v.assignPositional(fs); err != nil {
		return &SourceError{Source: src, Err: err}
	}

	fs.Visit(func(f *pflag.Flag) {
		v.merge(f.Name, src, fs)
	})
	return nil
}

// checkSelfContained rejects tokens that pflag would complete from the next
// token, and stray positional tokens.
func (v *Values) checkSelfContained(tokens []string) error {
	for _, tok := range tokens {
		name, ok := strings.CutPrefix(tok, "--")
		if !ok || name == "" {
			return fmt.Errorf("unexpected argument %q", tok)
		}
		if strings.Contains(name, "=") {
			continue
		}
		d, _, known := v.schema.Lookup(name)
		if !known {
			return fmt.Errorf("unknown flag: --%s", name)
		}
		if d.Kind() != KindSwitch {
			return fmt.Errorf("flag needs an argument: --%s", name)
		}
	}
	return nil
}

func (v *Values) assignPositional(fs *pflag.FlagSet) error {
	args := fs.Args()
	if len(args) == 0 {
		return nil
	}

	names := v.schema.positional
	for i, arg := range args {
		if i >= len(names) {
			last := len(names) - 1
			if last >= 0 {
				if d, _, _ := v.schema.Lookup(names[last]); d.Type == TypeStrings {
					if err := fs.Set(d.Name, arg); err != nil {
						return err
					}
					continue
				}
			}
			return fmt.Errorf("unexpected positional argument %q", arg)
		}

		name := names[i]
		if fs.Changed(name) {
			return fmt.Errorf("positional argument %q: --%s is already set", arg, name)
		}
		if err := fs.Set(name, arg); err != nil {
			return fmt.Errorf("positional argument %q for --%s: %w", arg, name, err)
		}
	}
	return nil
}

func (v *Values) merge(name string, src Source, fs *pflag.FlagSet) {
	prev, exists := v.entries[name]
	if !exists {
		v.entries[name] = entry{flags: fs, source: src}
		return
	}

	kept := src
	if v.policy == PolicyFallback {
		kept = prev.source
	} else {
		v.entries[name] = entry{flags: fs, source: src}
	}

	if prev.source != src {
		v.collisions = append(v.collisions, Collision{Name: name, Previous: prev.source, Incoming: src, Kept: kept})
		logging.Warn("Resolve", "--%s is set by both the %s and the %s, using the %s value",
			name, prev.source, src, kept)
	}
}

// CheckRequired fails with a *MissingRequiredError when a run option was not
// set by any source.
func (v *Values) CheckRequired() error {
	var missing []string
	for _, name := range v.schema.Required() {
		if _, ok := v.entries[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingRequiredError{Names: missing}
	}
	return nil
}

// IsSet reports whether a source set the option explicitly.
func (v *Values) IsSet(name string) bool {
	_, ok := v.entries[name]
	return ok
}

// Has reports whether the option has a value, explicit or default.
func (v *Values) Has(name string) bool {
	if v.IsSet(name) {
		return true
	}
	d, _, ok := v.schema.Lookup(name)
	return ok && d.hasDef
}

// Source returns where the option's value came from.
func (v *Values) Source(name string) Source {
	if e, ok := v.entries[name]; ok {
		return e.source
	}
	return SourceDefault
}

// Names returns the explicitly set options, sorted.
func (v *Values) Names() []string {
	names := make([]string, 0, len(v.entries))
	for name := range v.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Collisions returns every cross-source collision seen, in order.
func (v *Values) Collisions() []Collision {
	return append([]Collision(nil), v.collisions...)
}

// Lookup returns the value of an option rendered as a string.
func (v *Values) Lookup(name string) (string, bool) {
	fs, err := v.flagsFor(name)
	if err != nil {
		return "", false
	}
	f := fs.Lookup(name)
	if f == nil {
		return "", false
	}
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		return strings.Join(sv.GetSlice(), ","), v.Has(name)
	}
	return f.Value.String(), v.Has(name)
}

func (v *Values) flagsFor(name string) (*pflag.FlagSet, error) {
	if e, ok := v.entries[name]; ok {
		return e.flags, nil
	}
	if _, _, ok := v.schema.Lookup(name); !ok {
		return nil, fmt.Errorf("%w: --%s", ErrUnknownOption, name)
	}
	return v.defaults, nil
}

func getValue[T any](v *Values, name string, get func(*pflag.FlagSet, string) (T, error)) (T, error) {
	fs, err := v.flagsFor(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return get(fs, name)
}

func (v *Values) GetBool(name string) (bool, error) {
	return getValue(v, name, (*pflag.FlagSet).GetBool)
}

func (v *Values) GetString(name string) (string, error) {
	return getValue(v, name, (*pflag.FlagSet).GetString)
}

func (v *Values) GetInt(name string) (int, error) {
	return getValue(v, name, (*pflag.FlagSet).GetInt)
}

func (v *Values) GetFloat64(name string) (float64, error) {
	return getValue(v, name, (*pflag.FlagSet).GetFloat64)
}

func (v *Values) GetDuration(name string) (time.Duration, error) {
	return getValue(v, name, (*pflag.FlagSet).GetDuration)
}

func (v *Values) GetStringSlice(name string) ([]string, error) {
	return getValue(v, name, (*pflag.FlagSet).GetStringSlice)
}

// Bool is GetBool without the error, for options the caller declared.
func (v *Values) Bool(name string) bool {
	b, err := v.GetBool(name)
	if err != nil && !errors.Is(err, ErrUnknownOption) {
		logging.Debug("Resolve", "reading --%s: %v", name, err)
	}
	return b
}

// String is GetString without the error, for options the caller declared.
func (v *Values) String(name string) string {
	s, err := v.GetString(name)
	if err != nil && !errors.Is(err, ErrUnknownOption) {
		logging.Debug("Resolve", "reading --%s: %v", name, err)
	}
	return s
}
