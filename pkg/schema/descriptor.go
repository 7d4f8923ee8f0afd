package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// ValueType is the concrete type an option's value takes.
type ValueType int

const (
	TypeBool ValueType = iota
	TypeString
	TypeInt
	TypeFloat
	TypeDuration
	TypeStrings
)

// String makes ValueType satisfy the fmt.Stringer interface.
func (t ValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float64"
	case TypeDuration:
		return "duration"
	case TypeStrings:
		return "strings"
	default:
		return "unknown"
	}
}

// Kind separates boolean switches, whose presence is their value, from
// options that carry an explicit value.
type Kind int

const (
	KindSwitch Kind = iota
	KindValued
)

func (k Kind) String() string {
	if k == KindSwitch {
		return "switch"
	}
	return "valued"
}

// Scalar lists the Go types a descriptor default can have.
type Scalar interface {
	bool | string | int | float64 | time.Duration | []string
}

// Descriptor declares one recognised option. Construct descriptors with
// Switch, Valued or WithDefault so the default always matches Type.
type Descriptor struct {
	Name        string
	Description string
	Type        ValueType

	def    any
	hasDef bool
}

// Switch declares a boolean switch with the given default state.
func Switch(name, description string, def bool) Descriptor {
	return Descriptor{Name: name, Description: description, Type: TypeBool, def: def, hasDef: true}
}

// Valued declares an option of type T without a default.
func Valued[T Scalar](name, description string) Descriptor {
	return Descriptor{Name: name, Description: description, Type: typeOf[T]()}
}

// WithDefault declares an option of type T with a default value.
func WithDefault[T Scalar](name, description string, def T) Descriptor {
	d := Valued[T](name, description)
	if s, ok := any(def).([]string); ok {
		d.def = append([]string(nil), s...)
	} else {
		d.def = def
	}
	d.hasDef = true
	return d
}

func typeOf[T Scalar]() ValueType {
	var zero T
	switch any(zero).(type) {
	case bool:
		return TypeBool
	case string:
		return TypeString
	case int:
		return TypeInt
	case float64:
		return TypeFloat
	case time.Duration:
		return TypeDuration
	default:
		return TypeStrings
	}
}

// Kind reports whether the option is a switch or a valued option.
func (d Descriptor) Kind() Kind {
	if d.Type == TypeBool {
		return KindSwitch
	}
	return KindValued
}

// Default returns the typed default and whether one was declared.
func (d Descriptor) Default() (any, bool) {
	return d.def, d.hasDef
}

// SwitchDefault returns the default state of a switch; false when unset.
func (d Descriptor) SwitchDefault() bool {
	b, _ := d.def.(bool)
	return b
}

// DefaultString renders the default the way it would be written on the
// command line, so that feeding it back as --name=<default> reproduces it.
func (d Descriptor) DefaultString() (string, bool) {
	if !d.hasDef {
		return "", false
	}
	switch v := d.def.(type) {
	case bool:
		return strconv.FormatBool(v), true
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case time.Duration:
		return v.String(), true
	case []string:
		return strings.Join(v, ","), true
	default:
		return fmt.Sprint(v), true
	}
}

// Group returns the part of the name before the first dot, or "" for
// ungrouped names.
func (d Descriptor) Group() string {
	group, _, ok := strings.Cut(d.Name, ".")
	if !ok {
		return ""
	}
	return group
}

// Key returns the name without its group prefix.
func (d Descriptor) Key() string {
	_, key, ok := strings.Cut(d.Name, ".")
	if !ok {
		return d.Name
	}
	return key
}

func (d Descriptor) validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidOption)
	}
	if strings.HasPrefix(d.Name, "-") {
		return fmt.Errorf("%w: name %q must not start with '-'", ErrInvalidOption, d.Name)
	}
	if strings.ContainsAny(d.Name, "= \t\r\n") {
		return fmt.Errorf("%w: name %q must not contain '=' or whitespace", ErrInvalidOption, d.Name)
	}
	// '#' starts a comment and brackets a group header in response files.
	if strings.ContainsAny(d.Name, "#[]") {
		return fmt.Errorf("%w: name %q must not contain '#', '[' or ']'", ErrInvalidOption, d.Name)
	}
	if strings.HasPrefix(d.Name, ".") || strings.HasSuffix(d.Name, ".") {
		return fmt.Errorf("%w: name %q must not start or end with '.'", ErrInvalidOption, d.Name)
	}
	if d.Type < TypeBool || d.Type > TypeStrings {
		return fmt.Errorf("%w: option %q has unknown type %d", ErrInvalidOption, d.Name, d.Type)
	}
	// Template values are trimmed and read one line at a time when parsed back.
	if def, ok := d.DefaultString(); ok {
		if def != strings.TrimSpace(def) || strings.ContainsAny(def, "\r\n") {
			return fmt.Errorf("%w: default %q of option %q must not contain line breaks or surrounding whitespace", ErrInvalidOption, def, d.Name)
		}
	}
	return nil
}

// define registers the descriptor on a pflag flag set.
func (d Descriptor) define(fs *pflag.FlagSet) {
	switch d.Type {
	case TypeBool:
		fs.Bool(d.Name, d.SwitchDefault(), d.Description)
	case TypeString:
		def, _ := d.def.(string)
		fs.String(d.Name, def, d.Description)
	case TypeInt:
		def, _ := d.def.(int)
		fs.Int(d.Name, def, d.Description)
	case TypeFloat:
		def, _ := d.def.(float64)
		fs.Float64(d.Name, def, d.Description)
	case TypeDuration:
		def, _ := d.def.(time.Duration)
		fs.Duration(d.Name, def, d.Description)
	case TypeStrings:
		def, _ := d.def.([]string)
		fs.StringSlice(d.Name, def, d.Description)
	}
}
