// Package tags holds pure helpers for deriving tag names from the
// free-text temperament field of a breed.
package tags

import "strings"

// Normalize converts a raw tag name into its deduplication key:
// lower-cased, surrounding whitespace trimmed, internal spaces removed.
// The key is only ever compared; the original string stays the display value.
func Normalize(raw string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "")
}

// SplitTemperament splits a temperament field into candidate tag names:
// comma-separated pieces, trimmed, empty pieces dropped, exact duplicates
// removed while preserving first-seen order.
func SplitTemperament(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
