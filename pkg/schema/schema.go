package schema

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"
)

// Segment partitions the schema. Names are unique across all segments.
type Segment int

const (
	// SegmentInternal holds the options the console itself handles.
	SegmentInternal Segment = iota
	// SegmentGlobal holds options shared by every run of the application.
	SegmentGlobal
	// SegmentVisible holds application options shown in the template.
	SegmentVisible
	// SegmentRun holds required options, fillable by position.
	SegmentRun

	segmentCount
)

func (s Segment) String() string {
	switch s {
	case SegmentInternal:
		return "internal"
	case SegmentGlobal:
		return "global"
	case SegmentVisible:
		return "visible"
	case SegmentRun:
		return "run"
	default:
		return "unknown"
	}
}

var defaultCaptions = [segmentCount]string{
	SegmentInternal: "Internal options",
	SegmentGlobal:   "Global options",
	SegmentVisible:  "Options",
	SegmentRun:      "Run options",
}

// Names of the options the console registers in the internal segment.
const (
	OptionHelp         = "help"
	OptionResponseFile = "response-file"
	OptionGenResponse  = "genresponse"
)

// Schema is the ordered set of options an application accepts.
//
// A Schema is built once, before any source is parsed, and must not be
// modified afterwards. Declaration errors are collected and reported by Err
// so that builder calls can be chained.
type Schema struct {
	segments   [segmentCount][]Descriptor
	captions   [segmentCount]string
	index      map[string]Segment
	positional []string
	errs       []error
}

// New returns an empty schema.
func New() *Schema {
	return &Schema{
		captions: defaultCaptions,
		index:    make(map[string]Segment),
	}
}

// AddInternalOptions declares help, response-file and genresponse.
func (s *Schema) AddInternalOptions() {
	s.Internal().
		Switch(OptionHelp, "display usage information", false).
		String(OptionResponseFile, "can also be specified with '@name'", "").
		String(OptionGenResponse, "generate a blank response file", "")
}

// Add declares d in segment seg.
func (s *Schema) Add(seg Segment, d Descriptor) error {
	if seg < SegmentInternal || seg >= segmentCount {
		return fmt.Errorf("%w: unknown segment %d", ErrInvalidOption, seg)
	}
	if err := d.validate(); err != nil {
		return err
	}
	if existing, ok := s.index[d.Name]; ok {
		return fmt.Errorf("%w: --%s is already declared in the %s segment", ErrDuplicateOption, d.Name, existing)
	}

	s.index[d.Name] = seg
	s.segments[seg] = append(s.segments[seg], d)
	return nil
}

// Positional maps positional arguments onto run options, in order. A
// trailing string-list option absorbs all remaining arguments.
func (s *Schema) Positional(names ...string) *Schema {
	s.positional = append(s.positional, names...)
	return s
}

// PositionalNames returns the run options filled by position.
func (s *Schema) PositionalNames() []string {
	return append([]string(nil), s.positional...)
}

// SetCaption replaces the heading printed for a segment in usage text.
func (s *Schema) SetCaption(seg Segment, caption string) {
	if seg >= SegmentInternal && seg < segmentCount {
		s.captions[seg] = caption
	}
}

// Caption returns the heading of a segment.
func (s *Schema) Caption(seg Segment) string {
	if seg < SegmentInternal || seg >= segmentCount {
		return ""
	}
	return s.captions[seg]
}

// Err reports every declaration problem found so far.
func (s *Schema) Err() error {
	errs := append([]error(nil), s.errs...)

	for i, name := range s.positional {
		d, seg, ok := s.Lookup(name)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%w: positional --%s is not declared", ErrInvalidOption, name))
		case seg != SegmentRun:
			errs = append(errs, fmt.Errorf("%w: positional --%s must be a run option", ErrInvalidOption, name))
		case d.Type == TypeStrings && i != len(s.positional)-1:
			errs = append(errs, fmt.Errorf("%w: list positional --%s must be last", ErrInvalidOption, name))
		}
	}

	return errors.Join(errs...)
}

// Lookup finds a descriptor by name.
func (s *Schema) Lookup(name string) (Descriptor, Segment, bool) {
	seg, ok := s.index[name]
	if !ok {
		return Descriptor{}, 0, false
	}
	for _, d := range s.segments[seg] {
		if d.Name == name {
			return d, seg, true
		}
	}
	return Descriptor{}, 0, false
}

// Descriptors returns the descriptors of the given segments in the order
// given, each segment in declaration order. With no arguments every segment
// is returned.
func (s *Schema) Descriptors(segs ...Segment) []Descriptor {
	if len(segs) == 0 {
		segs = []Segment{SegmentInternal, SegmentGlobal, SegmentVisible, SegmentRun}
	}

	var out []Descriptor
	for _, seg := range segs {
		if seg < SegmentInternal || seg >= segmentCount {
			continue
		}
		out = append(out, s.segments[seg]...)
	}
	return out
}

// Required returns the names of the run options.
func (s *Schema) Required() []string {
	names := make([]string, 0, len(s.segments[SegmentRun]))
	for _, d := range s.segments[SegmentRun] {
		names = append(names, d.Name)
	}
	return names
}

// FlagSet builds a fresh pflag flag set holding the descriptors of segs, or
// of the whole schema when segs is empty. The set never prints on its own.
func (s *Schema) FlagSet(name string, segs ...Segment) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	fs.Usage = func() {}

	for _, d := range s.Descriptors(segs...) {
		d.define(fs)
	}
	return fs
}

// Internal returns a builder for the internal segment.
func (s *Schema) Internal() *Builder { return &Builder{schema: s, seg: SegmentInternal} }

// Global returns a builder for the global segment.
func (s *Schema) Global() *Builder { return &Builder{schema: s, seg: SegmentGlobal} }

// Visible returns a builder for the visible segment.
func (s *Schema) Visible() *Builder { return &Builder{schema: s, seg: SegmentVisible} }

// Run returns a builder for the run segment.
func (s *Schema) Run() *Builder { return &Builder{schema: s, seg: SegmentRun} }

// Builder declares options into one segment. Errors are recorded on the
// schema and surface through Schema.Err.
type Builder struct {
	schema *Schema
	seg    Segment
}

// Caption sets the segment heading.
func (b *Builder) Caption(caption string) *Builder {
	b.schema.SetCaption(b.seg, caption)
	return b
}

// Add declares an arbitrary descriptor.
func (b *Builder) Add(d Descriptor) *Builder {
	if err := b.schema.Add(b.seg, d); err != nil {
		b.schema.errs = append(b.schema.errs, err)
	}
	return b
}

func (b *Builder) Switch(name, description string, def bool) *Builder {
	return b.Add(Switch(name, description, def))
}

func (b *Builder) String(name, description, def string) *Builder {
	return b.Add(WithDefault(name, description, def))
}

func (b *Builder) Int(name, description string, def int) *Builder {
	return b.Add(WithDefault(name, description, def))
}

func (b *Builder) Float(name, description string, def float64) *Builder {
	return b.Add(WithDefault(name, description, def))
}

func (b *Builder) Duration(name, description string, def time.Duration) *Builder {
	return b.Add(WithDefault(name, description, def))
}

func (b *Builder) Strings(name, description string, def []string) *Builder {
	return b.Add(WithDefault(name, description, def))
}

// Required declares a run option of type T without a default. It is meant
// for the run segment but works on any builder.
func Required[T Scalar](b *Builder, name, description string) *Builder {
	return b.Add(Valued[T](name, description))
}
