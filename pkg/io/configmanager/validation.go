package configmanager

import (
	"github.com/metalstrap/metalstrap/pkg/io/validator"
	machinevalidator "github.com/metalstrap/metalstrap/pkg/io/validator/machine"
	"github.com/metalstrap/metalstrap/pkg/utils/notify"
)

// validateConfig validates the loaded machine configuration.
func (m *ConfigManager) validateConfig() error {
	result := machinevalidator.NewValidator().Validate(m.Config)

	if !result.Valid {
		notify.WriteMessage(notify.Message{
			Type:    notify.ErrorType,
			Content: "%s",
			Args:    []any{FormatValidationErrorsMultiline(result)},
			Writer:  m.Writer,
		})
		m.writeValidationWarnings(result)

		// Return a validation summary instead of the full error stack.
		return NewValidationSummaryError(len(result.Errors), len(result.Warnings))
	}

	m.writeValidationWarnings(result)

	return nil
}

func (m *ConfigManager) writeValidationWarnings(result *validator.ValidationResult) {
	for _, warning := range FormatValidationWarnings(result) {
		notify.WriteMessage(notify.Message{
			Type:    notify.WarningType,
			Content: "%s",
			Args:    []any{warning},
			Writer:  m.Writer,
		})
	}
}
