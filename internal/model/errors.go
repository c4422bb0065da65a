package model

// ValidationError is returned when input is rejected before any store call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// ErrConsentRequired rejects a submission whose privacy consent was not given.
var ErrConsentRequired = &ValidationError{Field: "agreed", Reason: "privacy policy consent is required"}
