package reconcile

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is returned when provider content yields no usable items
var ErrEmptyResult = errors.New("no usable items in provider content")

// ParseError represents provider content that does not contain the expected JSON
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
