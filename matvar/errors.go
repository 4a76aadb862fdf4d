package matvar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrMissingField    = errors.New("missing field")
	ErrInvalidShape    = errors.New("invalid shape")
	ErrUnsupportedType = errors.New("unsupported type")
)

// MissingFieldError reports a required struct field that is absent or empty.
type MissingFieldError struct {
	Path  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: struct is missing expected field %q", e.Path, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// InvalidShapeError reports a value of the wrong kind, rank, dimensions or complexity.
type InvalidShapeError struct {
	Path   string
	Reason string
	Class  Class
	Dims   []int
}

func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("%s: invalid shape: %s (got %s %s)", e.Path, e.Reason, FormatDims(e.Dims), e.Class)
}

func (e *InvalidShapeError) Is(target error) bool {
	return target == ErrInvalidShape
}

// UnsupportedTypeError reports an element type outside the accepted set.
type UnsupportedTypeError struct {
	Path     string
	Class    Class
	Accepted []Class
}

func (e *UnsupportedTypeError) Error() string {
	want := make([]string, len(e.Accepted))
	for i, c := range e.Accepted {
		want[i] = c.String()
	}
	return fmt.Sprintf("%s: unsupported type %s (want %s)", e.Path, e.Class, strings.Join(want, " or "))
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// FormatDims renders dims the way MATLAB prints sizes, e.g. "1x3".
func FormatDims(dims []int) string {
	if len(dims) == 0 {
		return "[]"
	}
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "x")
}
