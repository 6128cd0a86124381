package domain

// ValidationResult outcome of a booking rule check.
// Rule violations are values, not errors.
type ValidationResult struct {
	Valid  bool
	Reason string
}

// Valid successful validation
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid failed validation with a user-facing reason
func Invalid(reason string) ValidationResult {
	return ValidationResult{Valid: false, Reason: reason}
}
