package respfile

import "strings"

// LineKind classifies one line of a response file.
type LineKind int

const (
	// LineEmpty is a blank or comment-only line.
	LineEmpty LineKind = iota
	// LineGroup is a "[name]" section header.
	LineGroup
	// LinePair is a "key = value" assignment.
	LinePair
	// LineSwitch is any other non-empty line, read as a boolean switch name.
	LineSwitch
)

func (k LineKind) String() string {
	switch k {
	case LineEmpty:
		return "empty"
	case LineGroup:
		return "group"
	case LinePair:
		return "pair"
	case LineSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// commentMarker starts a comment that runs to the end of the line.
const commentMarker = "#"

// Line is the classified form of a single response file line. Only the fields
// relevant to Kind are populated: Group for LineGroup, Key and Value for
// LinePair, Key for LineSwitch.
type Line struct {
	Kind  LineKind
	Group string
	Key   string
	Value string
}

// StripComment removes everything from the first comment marker onwards and
// trims surrounding whitespace.
func StripComment(raw string) string {
	if i := strings.Index(raw, commentMarker); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw)
}

// Classify interprets one raw line. Header is tested before key/value and
// key/value before switch; the first match wins.
func Classify(raw string) Line {
	line := StripComment(raw)
	if line == "" {
		return Line{Kind: LineEmpty}
	}

	if len(line) >= 2 && line[0] == '[' && line[len(line)-1] == ']' {
		return Line{Kind: LineGroup, Group: strings.TrimSpace(line[1 : len(line)-1])}
	}

	if key, value, ok := strings.Cut(line, "="); ok {
		return Line{
			Kind:  LinePair,
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		}
	}

	return Line{Kind: LineSwitch, Key: line}
}

// Token renders the line as an argument token within the given group scope.
// It reports false when the line yields no token: empty lines, headers,
// pairs with an empty value and pairs with an empty key.
func (l Line) Token(scope string) (string, bool) {
	switch l.Kind {
	case LinePair:
		if l.Value == "" || l.Key == "" {
			return "", false
		}
		key := l.Key
		if !strings.Contains(key, ".") {
			key = qualify(scope, key)
		}
		return "--" + key + "=" + l.Value, true
	case LineSwitch:
		return "--" + qualify(scope, l.Key), true
	default:
		return "", false
	}
}

func qualify(scope, key string) string {
	if scope == "" {
		return key
	}
	return scope + "." + key
}
