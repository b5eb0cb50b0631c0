package cart

import (
	"errors"

	"github.com/ginjaninja78/cart-parser/internal/validation"
)

// ErrValidationFailed is matched by every *ValidationFailedError.
//
//nolint:staticcheck // the message is part of the public contract
var ErrValidationFailed = errors.New("Validation failed!")

// ErrNoSource is returned when neither a path nor a default path is given.
var ErrNoSource = errors.New("no cart source path")

// ValidationFailedError is returned by Parse when the cart text has at least
// one validation error. No partial result accompanies it.
type ValidationFailedError struct {
	// Errors holds every validation error in scan order.
	Errors []validation.ValidationError
}

func (e *ValidationFailedError) Error() string {
	return ErrValidationFailed.Error()
}

// Is reports whether target is ErrValidationFailed.
func (e *ValidationFailedError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ValidationErrors extracts the validation errors carried by err, if any.
func ValidationErrors(err error) ([]validation.ValidationError, bool) {
	var vf *ValidationFailedError
	if errors.As(err, &vf) {
		return vf.Errors, true
	}
	return nil, false
}
