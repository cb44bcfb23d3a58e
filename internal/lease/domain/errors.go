package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports caller input that cannot be used as given.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// UnsupportedPolicyError reports a duration, extension type or reason outside
// the recognized set.
type UnsupportedPolicyError struct {
	Field string
	Value string
}

func (e UnsupportedPolicyError) Error() string {
	return fmt.Sprintf("unsupported %s '%s'", e.Field, e.Value)
}

// IsInputError reports whether err is a ValidationError or an UnsupportedPolicyError.
func IsInputError(err error) bool {
	var ve ValidationError
	var pe UnsupportedPolicyError
	return errors.As(err, &ve) || errors.As(err, &pe)
}
