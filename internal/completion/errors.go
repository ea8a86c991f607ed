package completion

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType is matched by errors.Is for every UnsupportedTypeError
var ErrUnsupportedType = errors.New("unsupported completion type")

// UnsupportedTypeError is returned when no generator exists for the request's context type
type UnsupportedTypeError struct {
	Type ContextType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported completion type: %q", e.Type)
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}
