package mat5

import (
	"bytes"
	stdbinary "encoding/binary"
	"fmt"
	"io"

	"github.com/robert-malhotra/go-regionmap/internal/binary"
	"github.com/robert-malhotra/go-regionmap/internal/dtype"
	"github.com/robert-malhotra/go-regionmap/internal/filter"
	"github.com/robert-malhotra/go-regionmap/matvar"
)

// minFieldNameLen is the field name width MATLAB writes for short names.
const minFieldNameLen = 32

// Encoder writes variables to a level-5 MAT-file.
type Encoder struct {
	w        *binary.Writer
	order    stdbinary.ByteOrder
	opts     *encoderOptions
	compress filter.Filter
	started  bool
	closed   bool
}

// NewEncoder returns an Encoder writing to w. The header is written with the
// first variable, or by Close for a file without variables.
func NewEncoder(w io.Writer, opts ...EncoderOption) *Encoder {
	o := defaultEncoderOptions()
	for _, opt := range opts {
		opt(o)
	}
	var order stdbinary.ByteOrder = stdbinary.LittleEndian
	if o.bigEndian {
		order = stdbinary.BigEndian
	}
	return &Encoder{
		w:        binary.NewWriter(w, binary.Config{ByteOrder: order}),
		order:    order,
		opts:     o,
		compress: filter.NewDeflate(o.level),
	}
}

func (e *Encoder) start() error {
	if e.started {
		return e.w.Err()
	}
	e.started = true
	h := &Header{Text: e.opts.text, ByteOrder: e.order}
	return h.write(e.w)
}

// Encode writes v as a top-level variable called name.
func (e *Encoder) Encode(name string, v matvar.Value) error {
	if e.closed {
		return ErrClosed
	}
	if err := e.start(); err != nil {
		return err
	}
	payload, err := e.encodeMatrix(name, v, 0)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", name, err)
	}
	if !e.opts.compressed {
		return writeElement(e.w, dtype.Matrix, payload)
	}

	var inner bytes.Buffer
	if err := writeElement(binary.NewWriter(&inner, binary.Config{ByteOrder: e.order}), dtype.Matrix, payload); err != nil {
		return err
	}
	compressed, err := e.compress.Encode(inner.Bytes())
	if err != nil {
		return fmt.Errorf("%s %q: %w", e.compress.Name(), name, err)
	}
	return writeElement(e.w, dtype.Compressed, compressed)
}

// Close writes the header if no variable was encoded. It does not close the
// underlying writer.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	err := e.start()
	e.closed = true
	return err
}

// encodeMatrix returns the payload of an miMATRIX element for v.
func (e *Encoder) encodeMatrix(name string, v matvar.Value, depth int) ([]byte, error) {
	if depth > MaxNesting {
		return nil, fmt.Errorf("%w: more than %d levels", ErrNesting, MaxNesting)
	}
	if v == nil {
		v = matvar.Empty()
	}
	switch v.Class() {
	case matvar.Object, matvar.Sparse, matvar.Function, matvar.Opaque:
		return nil, fmt.Errorf("%w: %s arrays", ErrUnsupported, v.Class())
	}
	ac, logical, err := dtype.FromClass(v.Class())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}

	var buf bytes.Buffer
	w := binary.NewWriter(&buf, binary.Config{ByteOrder: e.order})

	var bits uint32
	if v.IsComplex() {
		bits |= flagComplex
	}
	if logical {
		bits |= flagLogical
	}
	flags := make([]byte, 8)
	e.order.PutUint32(flags, uint32(ac)|bits<<8)
	writeElement(w, dtype.Uint32, flags)

	dims := v.Dims()
	for len(dims) < 2 {
		dims = append(dims, 1)
	}
	dimBytes := make([]byte, 4*len(dims))
	for i, d := range dims {
		e.order.PutUint32(dimBytes[4*i:], uint32(int32(d)))
	}
	writeElement(w, dtype.Int32, dimBytes)
	writeElement(w, dtype.Int8, []byte(name))

	switch c := v.Class(); {
	case c == matvar.Cell:
		for i, cell := range v.Cells() {
			if err := e.writeNested(w, cell, depth); err != nil {
				return nil, fmt.Errorf("cell element %d: %w", i+1, err)
			}
		}
	case c == matvar.Struct:
		if err := e.writeStruct(w, v, depth); err != nil {
			return nil, err
		}
	default:
		typ, data, err := dtype.Encode(c, v.Data(), e.order)
		if err != nil {
			return nil, err
		}
		writeElement(w, typ, data)
		if v.IsComplex() {
			typ, data, err := dtype.Encode(c, v.Imag(), e.order)
			if err != nil {
				return nil, err
			}
			writeElement(w, typ, data)
		}
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) writeStruct(w *binary.Writer, v matvar.Value, depth int) error {
	names := v.FieldNames()
	width := minFieldNameLen
	for _, n := range names {
		width = max(width, len(n)+1)
	}
	lenBytes := make([]byte, 4)
	e.order.PutUint32(lenBytes, uint32(width))
	writeElement(w, dtype.Int32, lenBytes)

	packed := make([]byte, width*len(names))
	for i, n := range names {
		copy(packed[i*width:], n)
	}
	writeElement(w, dtype.Int8, packed)

	for i := range matvar.NumElements(v.Dims()) {
		for _, n := range names {
			field, _ := v.Field(i, n)
			if err := e.writeNested(w, field, depth); err != nil {
				return fmt.Errorf("field %q of element %d: %w", n, i+1, err)
			}
		}
	}
	return w.Err()
}

func (e *Encoder) writeNested(w *binary.Writer, v matvar.Value, depth int) error {
	payload, err := e.encodeMatrix("", v, depth+1)
	if err != nil {
		return err
	}
	return writeElement(w, dtype.Matrix, payload)
}
