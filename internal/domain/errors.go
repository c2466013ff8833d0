package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError уточняет, какой параметр не прошел проверку.
// errors.Is(err, ErrInvalidArgument) == true.
type InvalidArgumentError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%v: %s=%v: %s", ErrInvalidArgument, e.Field, e.Value, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
