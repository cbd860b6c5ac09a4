package snapshot

import "unicode/utf8"

// Truncate shortens s to at most max runes, appending "..." only when the
// input was actually longer than max. Strings already within the limit are
// returned unchanged. All bounded fields in this package go through this one
// helper so the marker behavior stays consistent.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
