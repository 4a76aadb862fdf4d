package matvar

import (
	"encoding/binary"
	"math"
	"slices"
	"strconv"
)

// Accessor wraps a Value with the path used in error messages and the
// validation and decoding helpers loaders share. The zero Accessor wraps no
// value; every check on it fails with *InvalidShapeError.
type Accessor struct {
	v    Value
	path string
}

// Wrap returns an Accessor for v whose path is v's variable name.
func Wrap(v Value) Accessor {
	name := "<value>"
	if v != nil && v.Name() != "" {
		name = v.Name()
	}
	return Accessor{v: v, path: name}
}

// WrapPath returns an Accessor for v with an explicit path.
func WrapPath(v Value, path string) Accessor {
	return Accessor{v: v, path: path}
}

// Value returns the wrapped value.
func (a Accessor) Value() Value { return a.v }

// Path returns the display path of the wrapped value.
func (a Accessor) Path() string { return a.path }

// Valid reports whether the accessor wraps a value.
func (a Accessor) Valid() bool { return a.v != nil }

// Class returns the element type tag, or Unknown when no value is wrapped.
func (a Accessor) Class() Class {
	if a.v == nil {
		return Unknown
	}
	return a.v.Class()
}

// Dims returns the dimension vector.
func (a Accessor) Dims() []int {
	if a.v == nil {
		return nil
	}
	return a.v.Dims()
}

// Rank returns the number of dimensions.
func (a Accessor) Rank() int {
	return len(a.Dims())
}

// NumElements returns the product of the dimensions.
func (a Accessor) NumElements() int {
	return NumElements(a.Dims())
}

// IsComplex reports whether the value has an imaginary part.
func (a Accessor) IsComplex() bool {
	return a.v != nil && a.v.IsComplex()
}

// Bytes returns the raw real-part buffer without copying.
func (a Accessor) Bytes() []byte {
	if a.v == nil {
		return nil
	}
	return a.v.Data()
}

// ByteCount returns len(Bytes()).
func (a Accessor) ByteCount() int {
	return len(a.Bytes())
}

// IsEmpty reports whether the value is the [] placeholder: a double with no elements.
func (a Accessor) IsEmpty() bool {
	return a.Class() == Double && a.NumElements() == 0
}

// Field looks up name in the first element of a struct value. An absent or
// empty field fails with *MissingFieldError unless optional is set, in which
// case Field returns ok == false and a nil error.
//
// A required field is empty only when it holds the [] placeholder, so a
// zero-length integer list is present. An optional field is empty when it
// has no elements at all, whatever its class, e.g. children = {}.
func (a Accessor) Field(name string, optional bool) (field Accessor, ok bool, err error) {
	if err := a.RequireClass(Struct, "expected a struct"); err != nil {
		return Accessor{}, false, err
	}
	fieldPath := a.path + "." + name
	v, found := a.v.Field(0, name)
	if found {
		field = WrapPath(v, fieldPath)
		empty := field.IsEmpty() || (optional && field.NumElements() == 0)
		if !empty {
			return field, true, nil
		}
	}
	if optional {
		return Accessor{}, false, nil
	}
	return Accessor{}, false, &MissingFieldError{Path: a.path, Field: name}
}

// Cells returns the elements of a cell value in linear order. Element paths
// use MATLAB's one-based brace indexing.
func (a Accessor) Cells() ([]Accessor, error) {
	if err := a.RequireClass(Cell, "expected a cell array"); err != nil {
		return nil, err
	}
	cells := a.v.Cells()
	out := make([]Accessor, len(cells))
	for i, c := range cells {
		out[i] = WrapPath(c, a.path+"{"+strconv.Itoa(i+1)+"}")
	}
	return out, nil
}

// shapeError builds an *InvalidShapeError describing a.
func (a Accessor) shapeError(reason string) error {
	return &InvalidShapeError{
		Path:   a.path,
		Reason: reason,
		Class:  a.Class(),
		Dims:   slices.Clone(a.Dims()),
	}
}

// RequireClass fails with *InvalidShapeError unless the value is of class c.
func (a Accessor) RequireClass(c Class, reason string) error {
	if a.v == nil {
		return a.shapeError("no value")
	}
	if a.v.Class() != c {
		return a.shapeError(reason)
	}
	return nil
}

// RequireReal fails with *InvalidShapeError for missing or complex values.
func (a Accessor) RequireReal() error {
	if a.v == nil {
		return a.shapeError("no value")
	}
	if a.v.IsComplex() {
		return a.shapeError("expected real data")
	}
	return nil
}

// RequireRank fails with *InvalidShapeError unless the value has rank n.
func (a Accessor) RequireRank(n int) error {
	if a.v == nil {
		return a.shapeError("no value")
	}
	if a.Rank() != n {
		return a.shapeError("expected rank " + strconv.Itoa(n))
	}
	return nil
}

// RequireDims fails with *InvalidShapeError unless the value has exactly
// len(dims) dimensions matching dims. A negative entry matches any size.
func (a Accessor) RequireDims(dims ...int) error {
	if err := a.RequireRank(len(dims)); err != nil {
		return err
	}
	got := a.Dims()
	for i, want := range dims {
		if want >= 0 && got[i] != want {
			return a.shapeError("expected dims " + formatPattern(dims))
		}
	}
	return nil
}

// requireAccepted fails with *UnsupportedTypeError unless the class is accepted.
func (a Accessor) requireAccepted(accepted []Class) error {
	if a.v == nil {
		return a.shapeError("no value")
	}
	if !slices.Contains(accepted, a.v.Class()) {
		return &UnsupportedTypeError{Path: a.path, Class: a.v.Class(), Accepted: accepted}
	}
	return nil
}

// Ints decodes every element as int64. The element count is
// ByteCount / Class().Size(). Classes outside accepted fail with
// *UnsupportedTypeError; accepted must contain only integer classes.
func (a Accessor) Ints(accepted ...Class) ([]int64, error) {
	if err := a.requireAccepted(accepted); err != nil {
		return nil, err
	}
	c := a.v.Class()
	if !c.IsInteger() {
		return nil, &UnsupportedTypeError{Path: a.path, Class: c, Accepted: accepted}
	}
	data := a.v.Data()
	size := c.Size()
	out := make([]int64, len(data)/size)
	for i := range out {
		out[i] = decodeInt(c, data[i*size:])
	}
	return out, nil
}

// Float32 decodes the first element narrowed to float32. Classes outside
// accepted fail with *UnsupportedTypeError; a value without elements fails
// with *InvalidShapeError.
func (a Accessor) Float32(accepted ...Class) (float32, error) {
	if err := a.requireAccepted(accepted); err != nil {
		return 0, err
	}
	c := a.v.Class()
	data := a.v.Data()
	if !c.IsNumeric() {
		return 0, &UnsupportedTypeError{Path: a.path, Class: c, Accepted: accepted}
	}
	if len(data) < c.Size() {
		return 0, a.shapeError("expected at least one element")
	}
	switch c {
	case Single:
		return math.Float32frombits(binary.LittleEndian.Uint32(data)), nil
	case Double:
		return float32(math.Float64frombits(binary.LittleEndian.Uint64(data))), nil
	default:
		return float32(decodeInt(c, data)), nil
	}
}

// decodeInt decodes one little-endian integer of class c from the front of b.
func decodeInt(c Class, b []byte) int64 {
	switch c {
	case Int8:
		return int64(int8(b[0]))
	case Uint8:
		return int64(b[0])
	case Int16:
		return int64(int16(binary.LittleEndian.Uint16(b)))
	case Uint16:
		return int64(binary.LittleEndian.Uint16(b))
	case Int32:
		return int64(int32(binary.LittleEndian.Uint32(b)))
	case Uint32:
		return int64(binary.LittleEndian.Uint32(b))
	case Int64:
		return int64(binary.LittleEndian.Uint64(b))
	case Uint64:
		return int64(binary.LittleEndian.Uint64(b))
	default:
		return 0
	}
}

func formatPattern(dims []int) string {
	s := ""
	for i, d := range dims {
		if i > 0 {
			s += "x"
		}
		if d < 0 {
			s += "N"
		} else {
			s += strconv.Itoa(d)
		}
	}
	return s
}
