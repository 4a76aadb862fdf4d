package regionmap

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-regionmap/internal/filter"
	"github.com/robert-malhotra/go-regionmap/internal/mat5"
)

// Common errors
var (
	ErrRLE              = errors.New("invalid run-length encoding")
	ErrTreeTooDeep      = errors.New("region tree too deep")
	ErrClosed           = errors.New("file is closed")
	ErrVariableNotFound = errors.New("variable not found")
)

// RLEOverrunError reports a run that would write past the end of the label map.
type RLEOverrunError struct {
	Run      int   // zero-based index of the offending (run_length, value) pair
	Cursor   int   // write position when the run started
	Length   int64 // run length
	Capacity int   // rows*cols
}

func (e *RLEOverrunError) Error() string {
	return fmt.Sprintf("run %d of length %d at position %d overruns %d pixels",
		e.Run, e.Length, e.Cursor, e.Capacity)
}

func (e *RLEOverrunError) Is(target error) bool { return target == ErrRLE }

// RLEUnderrunError reports runs that cover fewer pixels than the image has.
// It is only returned in strict mode.
type RLEUnderrunError struct {
	Covered  int
	Capacity int
}

func (e *RLEUnderrunError) Error() string {
	return fmt.Sprintf("runs cover %d of %d pixels", e.Covered, e.Capacity)
}

func (e *RLEUnderrunError) Is(target error) bool { return target == ErrRLE }

// RLERunError reports a negative run length.
type RLERunError struct {
	Run    int
	Length int64
}

func (e *RLERunError) Error() string {
	return fmt.Sprintf("run %d has negative length %d", e.Run, e.Length)
}

func (e *RLERunError) Is(target error) bool { return target == ErrRLE }

// TreeTooDeepError reports a region tree nested deeper than the configured bound.
type TreeTooDeepError struct {
	Path     string
	MaxDepth int
}

func (e *TreeTooDeepError) Error() string {
	return fmt.Sprintf("%s: region tree deeper than %d levels", e.Path, e.MaxDepth)
}

func (e *TreeTooDeepError) Is(target error) bool { return target == ErrTreeTooDeep }

// Container errors, matched with errors.Is on errors from Open and Variable.
var (
	ErrNotMAT      = mat5.ErrNotMAT
	ErrUnsupported = mat5.ErrUnsupported
	ErrTruncated   = mat5.ErrTruncated
	ErrTooLarge    = filter.ErrTooLarge
)
