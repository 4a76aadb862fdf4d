package filter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// DefaultMaxSize is the default cap on inflated output (1 GiB).
const DefaultMaxSize = 1 << 30

// Deflate implements the DEFLATE filter (zlib streams).
type Deflate struct {
	// Level is the compression level used by Encode (0-9, or -1 for the default).
	Level int

	// MaxSize caps the number of bytes Decode may produce. Zero means DefaultMaxSize.
	MaxSize int64
}

// NewDeflate creates a DEFLATE filter compressing at level (0-9, or -1 for
// the default) with the default size cap.
func NewDeflate(level int) *Deflate {
	return &Deflate{Level: level}
}

func (f *Deflate) Name() string {
	return "deflate"
}

func (f *Deflate) maxSize() int64 {
	if f.MaxSize <= 0 {
		return DefaultMaxSize
	}
	return f.MaxSize
}

func (f *Deflate) Decode(input []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	defer r.Close()

	limit := f.maxSize()
	output, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	if int64(len(output)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return output, nil
}

func (f *Deflate) Encode(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, f.Level)
	if err != nil {
		return nil, fmt.Errorf("zlib writer: %w", err)
	}
	if _, err := w.Write(input); err != nil {
		w.Close()
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodePrefix inflates at most n bytes from the start of input. It is used
// to peek at the beginning of a stream without inflating all of it.
func (f *Deflate) DecodePrefix(input []byte, n int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	defer r.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	return buf[:read], nil
}
