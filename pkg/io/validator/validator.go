package validator

// Validator validates a configuration of type T.
type Validator[T any] interface {
	// Validate checks the configuration and returns a structured result.
	// The result is never nil.
	Validate(config T) *ValidationResult
}

// ValidationError describes a single validation failure with enough context
// for the user to fix it.
type ValidationError struct {
	// Field is the dotted path of the offending field, e.g. "spec.disks[0].device".
	Field string
	// Message describes what is wrong.
	Message string
	// CurrentValue is the value found in the configuration, if any.
	CurrentValue string
	// ExpectedValue is the value (or value shape) the field should have.
	ExpectedValue string
	// FixSuggestion tells the user how to resolve the error.
	FixSuggestion string
}

// ValidationResult collects errors and warnings from a validation run.
type ValidationResult struct {
	// ConfigName identifies the validated configuration, typically a file name.
	ConfigName string
	// Valid is true while no errors have been recorded.
	Valid bool
	// Errors lists the recorded validation errors in insertion order.
	Errors []ValidationError
	// Warnings lists non-fatal findings in insertion order.
	Warnings []ValidationError
}

// NewValidationResult creates an empty, valid result for the named configuration.
func NewValidationResult(configName string) *ValidationResult {
	return &ValidationResult{
		ConfigName: configName,
		Valid:      true,
		Errors:     nil,
		Warnings:   nil,
	}
}

// AddError records a validation error and marks the result invalid.
func (r *ValidationResult) AddError(err ValidationError) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// AddWarning records a non-fatal finding without affecting validity.
func (r *ValidationResult) AddWarning(warning ValidationError) {
	r.Warnings = append(r.Warnings, warning)
}
