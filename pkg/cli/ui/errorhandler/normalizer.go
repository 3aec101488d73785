package errorhandler

import "strings"

// DefaultNormalizer cleans up cobra's stderr output for presentation.
type DefaultNormalizer struct{}

// Normalize trims whitespace, removes the redundant "Error:" prefix from the
// first line, and preserves multi-line usage hints.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")

	first := strings.TrimSpace(lines[0])
	lines[0] = strings.TrimPrefix(first, "Error: ")

	return strings.Join(lines, "\n")
}
