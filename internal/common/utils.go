package common

import "strings"

// ContainsAnyFold reports whether s contains one of subs, ignoring case.
// Empty entries in subs never match.
func ContainsAnyFold(s string, subs ...string) bool {
	upper := strings.ToUpper(s)
	for _, sub := range subs {
		if sub != "" && strings.Contains(upper, strings.ToUpper(sub)) {
			return true
		}
	}
	return false
}
