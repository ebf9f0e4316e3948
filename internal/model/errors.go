package model

import "errors"

// ErrTranslationMissing is returned when a field has no translation in the requested language.
var ErrTranslationMissing = errors.New("translation missing")

// ValidationError describes a product field that breaks a write-time rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}
