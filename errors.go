package jsonable

import (
	"errors"
	"fmt"
)

var (
	// ErrMismatch is matched by errors.Is for every TypeMismatchError.
	ErrMismatch = errors.New("jsonable: type mismatch")
	// ErrMissingField is matched by errors.Is for every MissingFieldError.
	ErrMissingField = errors.New("jsonable: missing field")
	// ErrArrayLength is matched by errors.Is for every ArrayLengthError.
	ErrArrayLength = errors.New("jsonable: array too short")
)

// TypeMismatchError reports a value whose JSON kind cannot be converted to
// the declared field type. An empty Path means the top-level value itself
// had the wrong shape.
type TypeMismatchError struct {
	Path     string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
	}
	return fmt.Sprintf("field %q: expected %s, got %s", e.Path, e.Expected, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrMismatch }

// MissingFieldError reports an absent JSON key for a required field.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Path)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// ArrayLengthError reports a JSON array shorter than the declared number of
// positional fields.
type ArrayLengthError struct {
	Path string
	Got  int
	Want int
}

func (e *ArrayLengthError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("array too short: got %d, want %d", e.Got, e.Want)
	}
	return fmt.Sprintf("field %q: array too short: got %d, want %d", e.Path, e.Got, e.Want)
}

func (e *ArrayLengthError) Is(target error) bool { return target == ErrArrayLength }

// FieldError qualifies a nested conversion failure with the field it
// occurred under.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func mismatch(path, expected string, got any) error {
	return &TypeMismatchError{Path: path, Expected: expected, Got: KindOf(got).String()}
}
