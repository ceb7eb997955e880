package allocation

import "strings"

// Every free-text comparison on specialty and floor fields goes through this
// file, so the matching policy can later be replaced by exact enums.

// OrthopedicsKeyword marks demands that prefer ground-floor rooms
const OrthopedicsKeyword = "orthopedics"

// groundFloorSentinel is the literal floor value meaning ground floor
const groundFloorSentinel = "0"

var groundFloorKeywords = []string{"ground", "térreo", "terreo"}

// Normalize lowercases and trims a free-text field
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ContainsFold reports whether needle is a case-insensitive substring of haystack
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

// MutuallyContains reports whether either text contains the other. A blank
// text is contained in every text, so it always matches.
func MutuallyContains(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// HasKeyword reports whether text mentions keyword, case-insensitively
func HasKeyword(text, keyword string) bool {
	return ContainsFold(text, keyword)
}

// IsGroundFloor recognizes "0" and the ground-floor synonyms
func IsGroundFloor(floor string) bool {
	f := Normalize(floor)
	if f == groundFloorSentinel {
		return true
	}
	for _, kw := range groundFloorKeywords {
		if strings.Contains(f, kw) {
			return true
		}
	}
	return false
}

// SameFloor compares two floor labels after trimming
func SameFloor(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
