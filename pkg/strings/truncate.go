package strings

import (
	"strings"
)

// DefaultCellMaxLen is the widest a free-form value may get in table output.
const DefaultCellMaxLen = 32

// MinTruncateLen is the minimum maxLen value for Truncate.
// Values smaller than this would not leave room for meaningful content plus "...".
const MinTruncateLen = 4

// Truncate shortens s to at most maxLen runes for single-line display.
// Runs of whitespace, newlines included, collapse into single spaces and a
// truncated result ends in "...". maxLen is clamped to MinTruncateLen.
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

// Prefix returns the first n runes of s, or s itself when it is shorter.
// Unlike Truncate it leaves whitespace alone and adds no ellipsis.
func Prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
