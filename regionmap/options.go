package regionmap

import (
	"io"
	"log/slog"

	"github.com/robert-malhotra/go-regionmap/internal/mat5"
)

// Default limits.
const (
	DefaultMaxDepth  = 256
	DefaultMaxPixels = 1 << 28
)

// Default variable names read by File.Load.
const (
	DefaultTreeVar  = "regions"
	DefaultShapeVar = "image_shape"
	DefaultRLEVar   = "atomic_SLIC_rle"
)

// Option configures the loaders and the file facade.
type Option func(*options)

type options struct {
	maxDepth   int
	maxPixels  int
	maxInflate int64
	strictRLE  bool
	logger     *slog.Logger

	treeVar  string
	shapeVar string
	rleVar   string
}

func defaultOptions() *options {
	return &options{
		maxDepth:  DefaultMaxDepth,
		maxPixels: DefaultMaxPixels,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		treeVar:   DefaultTreeVar,
		shapeVar:  DefaultShapeVar,
		rleVar:    DefaultRLEVar,
	}
}

func newOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithMaxDepth bounds how deeply region trees may nest.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithMaxPixels bounds rows*cols of a decoded label map.
func WithMaxPixels(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPixels = n
		}
	}
}

// WithMaxInflate caps the inflated size of a compressed variable. Zero keeps
// the container default.
func WithMaxInflate(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxInflate = n
		}
	}
}

// WithStrictRLE makes the RLE decoder fail when the runs cover fewer pixels
// than the image has, instead of leaving the rest zero.
func WithStrictRLE() Option {
	return func(o *options) {
		o.strictRLE = true
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithVariableNames overrides the top-level variable names read by File.Load.
// Empty names keep their defaults.
func WithVariableNames(tree, shape, rle string) Option {
	return func(o *options) {
		if tree != "" {
			o.treeVar = tree
		}
		if shape != "" {
			o.shapeVar = shape
		}
		if rle != "" {
			o.rleVar = rle
		}
	}
}

// containerOptions returns the reader limits for the MAT-file. Each tree level
// takes a cell and a struct level, so a tree one level deeper than maxDepth
// still decodes and is reported by the loader as TreeTooDeepError.
func (o *options) containerOptions() []mat5.Option {
	opts := []mat5.Option{mat5.WithMaxNesting(2*o.maxDepth + 2)}
	if o.maxInflate > 0 {
		opts = append(opts, mat5.WithMaxInflate(o.maxInflate))
	}
	return opts
}
