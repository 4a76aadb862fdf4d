package mat5

import "errors"

// Common errors
var (
	ErrNotMAT      = errors.New("not a level-5 MAT-file")
	ErrUnsupported = errors.New("unsupported feature")
	ErrTruncated   = errors.New("truncated data element")
	ErrMalformed   = errors.New("malformed data element")
	ErrNesting     = errors.New("maximum nesting depth exceeded")
	ErrNotFound    = errors.New("variable not found")
	ErrClosed      = errors.New("file is closed")
)

// MaxNesting is the default bound on nested cell and struct levels.
const MaxNesting = 512
