package matvar

import (
	"encoding/binary"
	"math"
	"math/bits"
	"slices"
	"unicode/utf16"
)

// Value is a decoded, self-describing container value.
type Value interface {
	// Name returns the variable name, or "" for nested values.
	Name() string

	// Class returns the element type tag.
	Class() Class

	// Dims returns the dimension vector. MAT values always have rank >= 2.
	Dims() []int

	// IsComplex reports whether the value carries an imaginary part.
	IsComplex() bool

	// Data returns the real part as little-endian elements of Class().Size() bytes.
	Data() []byte

	// Imag returns the imaginary part, or nil for real values.
	Imag() []byte

	// FieldNames returns the field names of a struct value in declaration order.
	FieldNames() []string

	// Field returns field name of struct element index (linear, column-major).
	Field(index int, name string) (Value, bool)

	// Cells returns the elements of a cell value in linear (column-major) order.
	Cells() []Value
}

// Array is the in-memory Value implementation. It is immutable once built.
type Array struct {
	name    string
	class   Class
	dims    []int
	complex bool
	real    []byte
	imag    []byte

	fields []string
	// elems holds one entry per struct element, each with one value per field.
	elems [][]Value
	cells []Value
}

var _ Value = (*Array)(nil)

func (a *Array) Name() string         { return a.name }
func (a *Array) Class() Class         { return a.class }
func (a *Array) Dims() []int          { return a.dims }
func (a *Array) IsComplex() bool      { return a.complex }
func (a *Array) Data() []byte         { return a.real }
func (a *Array) Imag() []byte         { return a.imag }
func (a *Array) FieldNames() []string { return a.fields }
func (a *Array) Cells() []Value       { return a.cells }

func (a *Array) Field(index int, name string) (Value, bool) {
	if a.class != Struct || index < 0 || index >= len(a.elems) {
		return nil, false
	}
	for i, f := range a.fields {
		if f == name {
			if i >= len(a.elems[index]) {
				return nil, false
			}
			v := a.elems[index][i]
			return v, v != nil
		}
	}
	return nil, false
}

// WithName returns a shallow copy of a carrying the given variable name.
func (a *Array) WithName(name string) *Array {
	c := *a
	c.name = name
	return &c
}

// Reshape returns a shallow copy of a with the given dimensions. The element
// count is not checked, so it can build deliberately malformed values.
func (a *Array) Reshape(dims ...int) *Array {
	c := *a
	c.dims = slices.Clone(dims)
	return &c
}

// NewNumeric builds a real numeric, char or logical value over data, which
// must already be in the class's little-endian layout. data is not copied.
func NewNumeric(class Class, dims []int, data []byte) *Array {
	return &Array{
		class: class,
		dims:  slices.Clone(dims),
		real:  data,
	}
}

// NewComplex builds a complex numeric value.
func NewComplex(class Class, dims []int, re, im []byte) *Array {
	a := NewNumeric(class, dims, re)
	a.complex = true
	a.imag = im
	return a
}

// NewInt32 builds a 1xN int32 row vector.
func NewInt32(values ...int32) *Array {
	return NewNumeric(Int32, row(len(values)), encodeInts(values, 4))
}

// NewInt64 builds a 1xN int64 row vector.
func NewInt64(values ...int64) *Array {
	return NewNumeric(Int64, row(len(values)), encodeInts(values, 8))
}

// NewUint8 builds a 1xN uint8 row vector.
func NewUint8(values ...uint8) *Array {
	return NewNumeric(Uint8, row(len(values)), slices.Clone(values))
}

// NewSingle builds a 1xN single-precision row vector.
func NewSingle(values ...float32) *Array {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return NewNumeric(Single, row(len(values)), buf)
}

// NewDouble builds a 1xN double-precision row vector.
func NewDouble(values ...float64) *Array {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return NewNumeric(Double, row(len(values)), buf)
}

// NewChar builds a 1xN char row vector of the UTF-16 code units of s.
func NewChar(s string) *Array {
	units := utf16.Encode([]rune(s))
	buf := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[2*i:], u)
	}
	return NewNumeric(Char, row(len(units)), buf)
}

// Text decodes the UTF-16 code units of a char value.
func Text(v Value) string {
	data := v.Data()
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	return string(utf16.Decode(units))
}

// NewLogical builds a 1xN logical row vector.
func NewLogical(values ...bool) *Array {
	buf := make([]byte, len(values))
	for i, v := range values {
		if v {
			buf[i] = 1
		}
	}
	return NewNumeric(Logical, row(len(values)), buf)
}

// Empty returns the 0x0 double placeholder MATLAB stores for unassigned fields.
func Empty() *Array {
	return NewNumeric(Double, []int{0, 0}, nil)
}

// FieldValue is one named field passed to NewStruct.
type FieldValue struct {
	Name  string
	Value Value
}

// F is shorthand for a FieldValue.
func F(name string, v Value) FieldValue {
	return FieldValue{Name: name, Value: v}
}

// NewStruct builds a 1x1 struct with the given fields in order.
func NewStruct(fields ...FieldValue) *Array {
	names := make([]string, len(fields))
	values := make([]Value, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		values[i] = f.Value
	}
	return NewStructArray([]int{1, 1}, names, [][]Value{values})
}

// NewStructArray builds a struct array. elems holds one row per element
// (column-major) with one value per field name.
func NewStructArray(dims []int, names []string, elems [][]Value) *Array {
	return &Array{
		class:  Struct,
		dims:   slices.Clone(dims),
		fields: names,
		elems:  elems,
	}
}

// NewCell builds a 1xN cell row vector.
func NewCell(values ...Value) *Array {
	return NewCellArray(row(len(values)), values)
}

// NewCellArray builds a cell array whose elements are given in column-major order.
func NewCellArray(dims []int, values []Value) *Array {
	return &Array{
		class: Cell,
		dims:  slices.Clone(dims),
		cells: values,
	}
}

func row(n int) []int {
	return []int{1, n}
}

func encodeInts[T int32 | int64](values []T, size int) []byte {
	buf := make([]byte, size*len(values))
	for i, v := range values {
		switch size {
		case 4:
			binary.LittleEndian.PutUint32(buf[4*i:], uint32(v))
		case 8:
			binary.LittleEndian.PutUint64(buf[8*i:], uint64(v))
		}
	}
	return buf
}

// NumElements returns the product of dims, or -1 when a dimension is
// negative or the product overflows an int.
func NumElements(dims []int) int {
	if len(dims) == 0 {
		return 0
	}
	for _, d := range dims {
		if d < 0 {
			return -1
		}
	}
	n := 1
	for _, d := range dims {
		hi, lo := bits.Mul64(uint64(n), uint64(d))
		if hi != 0 || lo > math.MaxInt {
			return -1
		}
		n = int(lo)
	}
	return n
}
