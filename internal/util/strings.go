package util

import "strings"

// SplitCSV splits a comma separated list, trimming whitespace and dropping
// empty entries. Returns an empty (non-nil) slice for empty input.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		result = append(result, part)
	}

	return result
}
