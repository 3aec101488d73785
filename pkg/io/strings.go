package io

import "strings"

// String manipulation helpers.

// TrimNonEmpty returns the trimmed string and whether it's non-empty.
// This consolidates the common pattern of trimming and checking for emptiness.
func TrimNonEmpty(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)

	return trimmed, trimmed != ""
}

// SanitizeToDNSLabel converts an arbitrary string to a lowercase alphanumeric
// string with hyphens as the only separator. Consecutive hyphens are collapsed
// and leading/trailing hyphens are trimmed.
//
// Machine names flow into hostnames and file names, so free-form user input
// is normalised through this kernel before validation.
func SanitizeToDNSLabel(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return ""
	}

	var builder strings.Builder

	prevHyphen := false

	for _, char := range trimmed {
		switch {
		case (char >= 'a' && char <= 'z') || (char >= '0' && char <= '9'):
			builder.WriteRune(char)

			prevHyphen = false
		default:
			if !prevHyphen {
				builder.WriteRune('-')

				prevHyphen = true
			}
		}
	}

	return strings.Trim(builder.String(), "-")
}
