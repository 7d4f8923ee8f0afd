package schema

// Source identifies where a resolved value came from.
type Source int

const (
	SourceDefault Source = iota
	SourceCommandLine
	SourceResponseFile
	SourceStore
)

func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceCommandLine:
		return "command line"
	case SourceResponseFile:
		return "response file"
	case SourceStore:
		return "persistent store"
	default:
		return "unknown source"
	}
}

// Policy decides which value survives when two sources set the same option.
type Policy int

const (
	// PolicyOverride lets a later source replace a value set by an earlier
	// one. Sources are applied command line, response file, store.
	PolicyOverride Policy = iota

	// PolicyFallback keeps the first explicit value; later sources only fill
	// options that are still unset.
	PolicyFallback
)

func (p Policy) String() string {
	switch p {
	case PolicyOverride:
		return "override"
	case PolicyFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// ParsePolicy accepts the names produced by Policy.String.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "", "override":
		return PolicyOverride, true
	case "fallback":
		return PolicyFallback, true
	default:
		return PolicyOverride, false
	}
}
