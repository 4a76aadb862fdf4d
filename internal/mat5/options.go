package mat5

import "github.com/robert-malhotra/go-regionmap/internal/filter"

// Option configures how a File is read.
type Option func(*options)

type options struct {
	maxInflate int64
	maxNesting int
}

func defaultOptions() *options {
	return &options{
		maxInflate: filter.DefaultMaxSize,
		maxNesting: MaxNesting,
	}
}

// WithMaxInflate caps the inflated size of a compressed variable.
func WithMaxInflate(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxInflate = n
		}
	}
}

// WithMaxNesting sets how many cell and struct levels may nest.
func WithMaxNesting(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxNesting = n
		}
	}
}

// EncoderOption configures an Encoder.
type EncoderOption func(*encoderOptions)

type encoderOptions struct {
	bigEndian  bool
	compressed bool
	level      int
	text       string
}

func defaultEncoderOptions() *encoderOptions {
	return &encoderOptions{
		level: -1,
		text:  defaultTxt,
	}
}

// BigEndian writes the file in big-endian byte order.
func BigEndian() EncoderOption {
	return func(o *encoderOptions) {
		o.bigEndian = true
	}
}

// Compressed wraps each variable in an miCOMPRESSED element.
func Compressed() EncoderOption {
	return func(o *encoderOptions) {
		o.compressed = true
	}
}

// WithCompressionLevel sets the zlib level (0-9) used by Compressed.
func WithCompressionLevel(level int) EncoderOption {
	return func(o *encoderOptions) {
		if level >= 0 && level <= 9 {
			o.level = level
		}
	}
}

// WithHeaderText sets the descriptive header text. It is truncated to 116 bytes.
func WithHeaderText(text string) EncoderOption {
	return func(o *encoderOptions) {
		o.text = text
	}
}
