package keys

import (
	"regexp"
	"strings"
)

// maskVisibleRunes is how many trailing characters stay readable in a
// masked value, enough to tell two keys apart without exposing either.
const maskVisibleRunes = 4

// sensitiveKeyPattern matches field names that likely hold secrets.
var sensitiveKeyPattern = regexp.MustCompile(`(?i)(password|token|key|secret|authorization)`)

// MaskValue replaces all but the last four runes of s with '*'.
// Values of four runes or fewer (including the empty string) are
// returned unchanged.
func MaskValue(s string) string {
	runes := []rune(s)
	if len(runes) <= maskVisibleRunes {
		return s
	}
	return strings.Repeat("*", len(runes)-maskVisibleRunes) + string(runes[len(runes)-maskVisibleRunes:])
}

// MaskMap returns a copy of m with every string value under a
// sensitive-named key masked. Nested maps and slices are walked
// recursively; non-sensitive values pass through untouched.
func MaskMap(m map[string]any) map[string]any {
	masked, _ := maskAny(m).(map[string]any)
	return masked
}

func maskAny(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if s, ok := inner.(string); ok && sensitiveKeyPattern.MatchString(k) {
				out[k] = MaskValue(s)
				continue
			}
			out[k] = maskAny(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = maskAny(item)
		}
		return out
	default:
		return v
	}
}
