package util

import "strings"

// ContainsAny reports whether s contains any of the lowercase keywords,
// ignoring case.
func ContainsAny(s string, keywords ...string) bool {
	l := strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(l, k) {
			return true
		}
	}
	return false
}
