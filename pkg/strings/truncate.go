package strings

import (
	"strings"
)

// DefaultValueMaxLen bounds option values shown in tables.
const DefaultValueMaxLen = 60

// MinTruncateLen leaves room for one character plus "...".
const MinTruncateLen = 4

// Truncate collapses whitespace runs (newlines included) into single spaces
// and shortens the result to maxLen runes, ending in "..." when cut. A maxLen
// below MinTruncateLen is raised to it.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
