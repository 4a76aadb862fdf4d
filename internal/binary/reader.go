// Package binary provides low-level binary I/O for walking MAT-file data elements.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrShortRead is returned when a read would cross the end of the readable window.
var ErrShortRead = errors.New("read past end of data")

// Reader is a positioned, byte-order aware cursor over an io.ReaderAt.
// Reads are confined to the window [start, end).
type Reader struct {
	r     io.ReaderAt
	order binary.ByteOrder
	start int64
	end   int64
	pos   int64
}

// Config holds reader configuration, typically derived from the file header.
type Config struct {
	ByteOrder binary.ByteOrder
	// Size is the number of readable bytes. Negative means unbounded.
	Size int64
}

// NewReader creates a binary reader with the given configuration.
func NewReader(r io.ReaderAt, cfg Config) *Reader {
	end := cfg.Size
	if end < 0 {
		end = -1
	}
	order := cfg.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}
	return &Reader{
		r:     r,
		order: order,
		end:   end,
	}
}

// FromBytes returns a reader over an in-memory buffer.
func FromBytes(b []byte, order binary.ByteOrder) *Reader {
	return NewReader(byteSlice(b), Config{ByteOrder: order, Size: int64(len(b))})
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying io.ReaderAt and window but has independent position.
func (r *Reader) At(offset int64) *Reader {
	c := *r
	c.pos = offset
	return &c
}

// Section returns a reader over the next n bytes and advances past them.
// The section's positions are relative to its own start.
func (r *Reader) Section(n int64) (*Reader, error) {
	if err := r.check(n); err != nil {
		return nil, err
	}
	s := &Reader{
		r:     r.r,
		order: r.order,
		start: r.start + r.pos,
		end:   r.start + r.pos + n,
	}
	r.pos += n
	return s, nil
}

// Pos returns the current read position relative to the window start.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Len returns the number of unread bytes, or -1 when the reader is unbounded.
func (r *Reader) Len() int64 {
	if r.end < 0 {
		return -1
	}
	return r.end - r.start - r.pos
}

// check reports whether n more bytes are available.
func (r *Reader) check(n int64) error {
	if n < 0 {
		return fmt.Errorf("negative read length %d", n)
	}
	if r.end >= 0 && r.start+r.pos+n > r.end {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortRead, n, r.pos, r.Len())
	}
	return nil
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if err := r.check(int64(n)); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	read, err := r.r.ReadAt(buf, r.start+r.pos)
	if read < n {
		if err == nil || err == io.EOF {
			err = fmt.Errorf("%w: need %d bytes at offset %d, got %d", ErrShortRead, n, r.pos, read)
		}
		return nil, err
	}
	r.pos += int64(n)
	return buf, nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(buf), nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(buf), nil
}

// ReadInt32 reads a signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(buf), nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int64) {
	r.pos += n
}

// ByteOrder returns the configured byte order.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}

// byteSlice adapts a byte slice to io.ReaderAt.
type byteSlice []byte

func (b byteSlice) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
