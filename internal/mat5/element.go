package mat5

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-regionmap/internal/binary"
	"github.com/robert-malhotra/go-regionmap/internal/dtype"
)

// element is one tagged data element. data covers exactly the payload bytes.
type element struct {
	typ    dtype.Type
	offset int64 // position of the tag within the enclosing reader
	data   *binary.Reader
	small  bool
}

// size returns the payload byte count.
func (e element) size() int64 {
	return e.data.Len()
}

// bytes reads the whole payload.
func (e element) bytes() ([]byte, error) {
	return e.data.At(0).ReadBytes(int(e.size()))
}

// readElement reads the tag at r's position and returns a reader over its
// payload, leaving r at the start of the next element.
func readElement(r *binary.Reader) (element, error) {
	offset := r.Pos()
	first, err := r.ReadUint32()
	if err != nil {
		return element{}, truncated(err)
	}

	// Small data element: byte count in the upper half of the first word.
	if n := first >> 16; n != 0 {
		if n > 4 {
			return element{}, fmt.Errorf("%w: small element at offset %d claims %d bytes", ErrMalformed, offset, n)
		}
		word, err := r.Section(4)
		if err != nil {
			return element{}, truncated(err)
		}
		data, _ := word.Section(int64(n))
		return element{typ: dtype.Type(first & 0xFFFF), offset: offset, data: data, small: true}, nil
	}

	n, err := r.ReadUint32()
	if err != nil {
		return element{}, truncated(err)
	}
	typ := dtype.Type(first)
	data, err := r.Section(int64(n))
	if err != nil {
		return element{}, fmt.Errorf("%s element at offset %d: %w", typ, offset, truncated(err))
	}
	// Payloads are padded to a multiple of 8 bytes, except compressed ones.
	if typ != dtype.Compressed {
		pad := padding(int64(n))
		if l := r.Len(); l >= 0 && l < pad {
			pad = l
		}
		r.Skip(pad)
	}
	return element{typ: typ, offset: offset, data: data}, nil
}

// expectElement reads the next element and checks its type against accepted.
func expectElement(r *binary.Reader, what string, accepted ...dtype.Type) (element, error) {
	e, err := readElement(r)
	if err != nil {
		return element{}, fmt.Errorf("reading %s: %w", what, err)
	}
	for _, t := range accepted {
		if e.typ == t {
			return e, nil
		}
	}
	return element{}, fmt.Errorf("%w: %s stored as %s", ErrMalformed, what, e.typ)
}

// truncated maps short reads onto ErrTruncated.
func truncated(err error) error {
	if errors.Is(err, binary.ErrShortRead) {
		return fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	return err
}

// writeElement writes a tag, payload and padding. Payloads of 1 to 4 bytes use
// the small element format.
func writeElement(w *binary.Writer, typ dtype.Type, data []byte) error {
	if n := len(data); n > 0 && n <= 4 && typ != dtype.Matrix && typ != dtype.Compressed {
		w.WriteUint32(uint32(n)<<16 | uint32(typ))
		w.WriteBytes(data)
		w.WriteZeros(4 - n)
		return w.Err()
	}
	w.WriteUint32(uint32(typ))
	w.WriteUint32(uint32(len(data)))
	w.WriteBytes(data)
	if typ != dtype.Compressed {
		w.WriteZeros(int(padding(int64(len(data)))))
	}
	return w.Err()
}

// padding returns the number of bytes needed to round n up to a multiple of 8.
func padding(n int64) int64 {
	return (8 - n%8) % 8
}
