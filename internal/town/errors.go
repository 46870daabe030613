package town

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every lookup miss in this package and in the poster stores.
var ErrNotFound = errors.New("not found")

// InvalidParametersError reports a request or construction input the town refuses.
type InvalidParametersError struct {
	Message string
	Err     error
}

func (e *InvalidParametersError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid parameters: %s: %v", e.Message, e.Err)
	}
	return "invalid parameters: " + e.Message
}

func (e *InvalidParametersError) Unwrap() error {
	return e.Err
}

// NewInvalidParametersError builds an InvalidParametersError from a format string.
func NewInvalidParametersError(format string, args ...any) *InvalidParametersError {
	return &InvalidParametersError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalidParameters reports whether err is, or wraps, an InvalidParametersError.
func IsInvalidParameters(err error) bool {
	var invalid *InvalidParametersError
	return errors.As(err, &invalid)
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
