package configmanager

import (
	"fmt"
	"strings"

	"github.com/metalstrap/metalstrap/pkg/io/validator"
)

// FormatValidationErrorsMultiline renders every validation error on its own
// line, with fix suggestions indented below the error they belong to.
func FormatValidationErrorsMultiline(result *validator.ValidationResult) string {
	var builder strings.Builder

	builder.WriteString("invalid machine configuration")

	for _, validationError := range result.Errors {
		builder.WriteString("\n")
		builder.WriteString(formatValidationError(validationError))
	}

	return builder.String()
}

func formatValidationError(validationError validator.ValidationError) string {
	message := validationError.Field + ": " + validationError.Message

	switch {
	case validationError.CurrentValue != "" && validationError.ExpectedValue != "":
		message += fmt.Sprintf(
			" (got %q, want %q)",
			validationError.CurrentValue,
			validationError.ExpectedValue,
		)
	case validationError.CurrentValue != "":
		message += fmt.Sprintf(" (got %q)", validationError.CurrentValue)
	case validationError.ExpectedValue != "":
		message += fmt.Sprintf(" (want %q)", validationError.ExpectedValue)
	}

	if validationError.FixSuggestion != "" {
		message += "\n  fix: " + validationError.FixSuggestion
	}

	return message
}

// FormatValidationWarnings renders validation warnings as single-line messages
// suitable for warning notifications.
func FormatValidationWarnings(result *validator.ValidationResult) []string {
	warnings := make([]string, 0, len(result.Warnings))

	for _, warning := range result.Warnings {
		message := warning.Field + ": " + warning.Message
		if warning.FixSuggestion != "" {
			message += " (" + warning.FixSuggestion + ")"
		}

		warnings = append(warnings, message)
	}

	return warnings
}

// NewValidationSummaryError builds the error returned when validation fails,
// summarizing counts rather than repeating every message.
func NewValidationSummaryError(errorCount, warningCount int) error {
	if warningCount > 0 {
		return fmt.Errorf(
			"%w: %d error(s), %d warning(s)",
			ErrConfigInvalid,
			errorCount,
			warningCount,
		)
	}

	return fmt.Errorf("%w: %d error(s)", ErrConfigInvalid, errorCount)
}
