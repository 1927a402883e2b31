package guard

import "bytes"

// ScanContent returns the patterns that occur verbatim in content, in pattern order.
// Returns nil when nothing matches.
func ScanContent(content []byte, patterns []string) []string {
	var found []string
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if bytes.Contains(content, []byte(pattern)) {
			found = append(found, pattern)
		}
	}
	return found
}
