package mat5

import (
	"bytes"
	"fmt"

	"github.com/robert-malhotra/go-regionmap/internal/binary"
	"github.com/robert-malhotra/go-regionmap/internal/dtype"
	"github.com/robert-malhotra/go-regionmap/matvar"
)

// Array flag bits, stored in the second byte of the first flags word.
const (
	flagComplex = 0x08
	flagGlobal  = 0x04
	flagLogical = 0x02
)

// matrixHeader holds the sub-elements common to every miMATRIX payload.
type matrixHeader struct {
	arrayClass dtype.ArrayClass
	class      matvar.Class
	complex    bool
	global     bool
	dims       []int
	name       string
}

// readMatrixHeader reads array flags, dimensions and name from an miMATRIX payload.
func readMatrixHeader(r *binary.Reader) (*matrixHeader, error) {
	flags, err := expectElement(r, "array flags", dtype.Uint32)
	if err != nil {
		return nil, err
	}
	if flags.size() != 8 {
		return nil, fmt.Errorf("%w: array flags are %d bytes, want 8", ErrMalformed, flags.size())
	}
	word, err := flags.data.ReadUint32()
	if err != nil {
		return nil, truncated(err)
	}
	bits := uint8(word >> 8)
	h := &matrixHeader{
		arrayClass: dtype.ArrayClass(word & 0xFF),
		complex:    bits&flagComplex != 0,
		global:     bits&flagGlobal != 0,
	}
	h.class = h.arrayClass.Class(bits&flagLogical != 0)
	if h.class == matvar.Unknown {
		return nil, fmt.Errorf("%w: unknown array class %d", ErrMalformed, h.arrayClass)
	}

	dimsElem, err := expectElement(r, "dimensions", dtype.Int32)
	if err != nil {
		return nil, err
	}
	rank := int(dimsElem.size() / 4)
	if rank < 2 {
		return nil, fmt.Errorf("%w: rank %d dimensions", ErrMalformed, rank)
	}
	h.dims = make([]int, rank)
	for i := range h.dims {
		d, err := dimsElem.data.ReadInt32()
		if err != nil {
			return nil, truncated(err)
		}
		if d < 0 {
			return nil, fmt.Errorf("%w: negative dimension %d", ErrMalformed, d)
		}
		h.dims[i] = int(d)
	}

	nameElem, err := expectElement(r, "array name", dtype.Int8, dtype.Uint8, dtype.UTF8)
	if err != nil {
		return nil, err
	}
	name, err := nameElem.bytes()
	if err != nil {
		return nil, truncated(err)
	}
	h.name = string(bytes.TrimRight(name, "\x00"))
	return h, nil
}

// decoder turns miMATRIX payloads into matvar arrays.
type decoder struct {
	maxNesting int
}

// readMatrix decodes a complete miMATRIX payload. depth counts enclosing
// cell and struct levels.
func (d *decoder) readMatrix(r *binary.Reader, depth int) (*matvar.Array, error) {
	if depth > d.maxNesting {
		return nil, fmt.Errorf("%w: more than %d levels", ErrNesting, d.maxNesting)
	}
	// A zero-length miMATRIX stands for an empty array.
	if r.Len() == 0 {
		return matvar.Empty(), nil
	}

	h, err := readMatrixHeader(r)
	if err != nil {
		return nil, err
	}

	var a *matvar.Array
	switch {
	case h.class.IsNumeric() || h.class == matvar.Logical:
		a, err = d.readNumeric(r, h)
	case h.class == matvar.Char:
		a, err = d.readChar(r, h)
	case h.class == matvar.Cell:
		a, err = d.readCell(r, h, depth)
	case h.class == matvar.Struct:
		a, err = d.readStruct(r, h, depth)
	default:
		return nil, fmt.Errorf("%w: %s arrays (variable %q)", ErrUnsupported, h.class, h.name)
	}
	if err != nil {
		if h.name != "" {
			return nil, fmt.Errorf("variable %q: %w", h.name, err)
		}
		return nil, err
	}
	return a.WithName(h.name), nil
}

// readPart reads one numeric data element and converts it to the header's class.
func (d *decoder) readPart(r *binary.Reader, h *matrixHeader, what string) ([]byte, error) {
	e, err := readElement(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", what, err)
	}
	if !e.typ.IsNumeric() {
		return nil, fmt.Errorf("%w: %s stored as %s", ErrMalformed, what, e.typ)
	}
	raw, err := e.bytes()
	if err != nil {
		return nil, truncated(err)
	}
	data, err := dtype.Convert(e.typ, r.ByteOrder(), raw, h.class)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, what, err)
	}
	if want := matvar.NumElements(h.dims) * h.class.Size(); len(data) != want {
		return nil, fmt.Errorf("%w: %s has %d bytes, dims %s need %d",
			ErrMalformed, what, len(data), matvar.FormatDims(h.dims), want)
	}
	return data, nil
}

func (d *decoder) readNumeric(r *binary.Reader, h *matrixHeader) (*matvar.Array, error) {
	// The narrowest storage type is one byte per element.
	if _, err := elementCount(r, h, 1); err != nil {
		return nil, err
	}
	re, err := d.readPart(r, h, "real part")
	if err != nil {
		return nil, err
	}
	if !h.complex {
		return matvar.NewNumeric(h.class, h.dims, re), nil
	}
	im, err := d.readPart(r, h, "imaginary part")
	if err != nil {
		return nil, err
	}
	return matvar.NewComplex(h.class, h.dims, re, im), nil
}

func (d *decoder) readChar(r *binary.Reader, h *matrixHeader) (*matvar.Array, error) {
	e, err := readElement(r)
	if err != nil {
		return nil, fmt.Errorf("reading char data: %w", err)
	}
	raw, err := e.bytes()
	if err != nil {
		return nil, truncated(err)
	}
	text, err := dtype.DecodeText(e.typ, r.ByteOrder(), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if n := matvar.NumElements(h.dims); n < 0 || len(text) != 2*n {
		return nil, fmt.Errorf("%w: %d char units for dims %s", ErrMalformed, len(text)/2, matvar.FormatDims(h.dims))
	}
	return matvar.NewNumeric(matvar.Char, h.dims, text), nil
}

// elementCount returns the number of elements of h, failing when the payload
// left in r cannot hold that many elements of at least minSize bytes.
func elementCount(r *binary.Reader, h *matrixHeader, minSize int64) (int, error) {
	n := matvar.NumElements(h.dims)
	if n < 0 {
		return 0, fmt.Errorf("%w: dims %s overflow", ErrMalformed, matvar.FormatDims(h.dims))
	}
	if int64(n) > r.Len()/minSize {
		return 0, fmt.Errorf("%w: dims %s need more than the %d bytes left", ErrMalformed, matvar.FormatDims(h.dims), r.Len())
	}
	return n, nil
}

func (d *decoder) readCell(r *binary.Reader, h *matrixHeader, depth int) (*matvar.Array, error) {
	// Every cell element is a nested miMATRIX with an 8-byte tag.
	n, err := elementCount(r, h, 8)
	if err != nil {
		return nil, err
	}
	cells := make([]matvar.Value, n)
	for i := range cells {
		v, err := d.readNested(r, depth)
		if err != nil {
			return nil, fmt.Errorf("cell element %d: %w", i+1, err)
		}
		cells[i] = v
	}
	return matvar.NewCellArray(h.dims, cells), nil
}

func (d *decoder) readStruct(r *binary.Reader, h *matrixHeader, depth int) (*matvar.Array, error) {
	lenElem, err := expectElement(r, "field name length", dtype.Int32)
	if err != nil {
		return nil, err
	}
	nameLen, err := lenElem.data.ReadInt32()
	if err != nil {
		return nil, truncated(err)
	}
	namesElem, err := expectElement(r, "field names", dtype.Int8, dtype.Uint8, dtype.UTF8)
	if err != nil {
		return nil, err
	}
	packed, err := namesElem.bytes()
	if err != nil {
		return nil, truncated(err)
	}

	var names []string
	if len(packed) > 0 {
		if nameLen <= 0 || len(packed)%int(nameLen) != 0 {
			return nil, fmt.Errorf("%w: %d bytes of field names with width %d", ErrMalformed, len(packed), nameLen)
		}
		for off := 0; off < len(packed); off += int(nameLen) {
			names = append(names, string(bytes.TrimRight(packed[off:off+int(nameLen)], "\x00")))
		}
	}

	if len(names) == 0 {
		if matvar.NumElements(h.dims) < 0 {
			return nil, fmt.Errorf("%w: dims %s overflow", ErrMalformed, matvar.FormatDims(h.dims))
		}
		return matvar.NewStructArray(h.dims, nil, nil), nil
	}
	n, err := elementCount(r, h, 8*int64(len(names)))
	if err != nil {
		return nil, err
	}
	elems := make([][]matvar.Value, n)
	for i := range elems {
		elems[i] = make([]matvar.Value, len(names))
		for j, name := range names {
			v, err := d.readNested(r, depth)
			if err != nil {
				return nil, fmt.Errorf("field %q of element %d: %w", name, i+1, err)
			}
			elems[i][j] = v
		}
	}
	return matvar.NewStructArray(h.dims, names, elems), nil
}

// readNested reads one nested miMATRIX element of a cell or struct.
func (d *decoder) readNested(r *binary.Reader, depth int) (*matvar.Array, error) {
	e, err := expectElement(r, "nested matrix", dtype.Matrix)
	if err != nil {
		return nil, err
	}
	return d.readMatrix(e.data, depth+1)
}
