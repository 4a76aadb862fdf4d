package filter

import "errors"

// ErrTooLarge is returned when decoded output would exceed the configured limit.
var ErrTooLarge = errors.New("decoded data exceeds size limit")

// Filter is the interface implemented by all container filters.
type Filter interface {
	// Name returns the filter name for error messages.
	Name() string

	// Decode transforms encoded data to decoded form.
	Decode(input []byte) ([]byte, error)

	// Encode transforms decoded data to encoded form.
	Encode(input []byte) ([]byte, error)
}
