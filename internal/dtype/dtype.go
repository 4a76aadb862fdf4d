package dtype

import (
	"fmt"

	"github.com/robert-malhotra/go-regionmap/matvar"
)

// Type is a MAT data element storage type.
type Type uint32

const (
	Int8       Type = 1
	Uint8      Type = 2
	Int16      Type = 3
	Uint16     Type = 4
	Int32      Type = 5
	Uint32     Type = 6
	Single     Type = 7
	Double     Type = 9
	Int64      Type = 12
	Uint64     Type = 13
	Matrix     Type = 14
	Compressed Type = 15
	UTF8       Type = 16
	UTF16      Type = 17
	UTF32      Type = 18
)

var typeNames = map[Type]string{
	Int8:       "miINT8",
	Uint8:      "miUINT8",
	Int16:      "miINT16",
	Uint16:     "miUINT16",
	Int32:      "miINT32",
	Uint32:     "miUINT32",
	Single:     "miSINGLE",
	Double:     "miDOUBLE",
	Int64:      "miINT64",
	Uint64:     "miUINT64",
	Matrix:     "miMATRIX",
	Compressed: "miCOMPRESSED",
	UTF8:       "miUTF8",
	UTF16:      "miUTF16",
	UTF32:      "miUTF32",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("mi(%d)", uint32(t))
}

// Size returns the width of one stored element, or 0 for container types.
func (t Type) Size() int {
	switch t {
	case Int8, Uint8, UTF8:
		return 1
	case Int16, Uint16, UTF16:
		return 2
	case Int32, Uint32, Single, UTF32:
		return 4
	case Double, Int64, Uint64:
		return 8
	default:
		return 0
	}
}

// IsNumeric reports whether t stores plain numbers.
func (t Type) IsNumeric() bool {
	switch t {
	case Int8, Uint8, Int16, Uint16, Int32, Uint32, Single, Double, Int64, Uint64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t stores IEEE 754 values.
func (t Type) IsFloat() bool {
	return t == Single || t == Double
}

// IsUnsigned reports whether t stores unsigned integers.
func (t Type) IsUnsigned() bool {
	switch t {
	case Uint8, Uint16, Uint32, Uint64:
		return true
	default:
		return false
	}
}

// numericClass returns the matvar.Class with the same layout as t.
func (t Type) numericClass() matvar.Class {
	switch t {
	case Int8:
		return matvar.Int8
	case Uint8:
		return matvar.Uint8
	case Int16:
		return matvar.Int16
	case Uint16:
		return matvar.Uint16
	case Int32:
		return matvar.Int32
	case Uint32:
		return matvar.Uint32
	case Int64:
		return matvar.Int64
	case Uint64:
		return matvar.Uint64
	case Single:
		return matvar.Single
	case Double:
		return matvar.Double
	default:
		return matvar.Unknown
	}
}

// ArrayClass is the class byte from a matrix's array flags.
type ArrayClass uint8

const (
	ClassCell     ArrayClass = 1
	ClassStruct   ArrayClass = 2
	ClassObject   ArrayClass = 3
	ClassChar     ArrayClass = 4
	ClassSparse   ArrayClass = 5
	ClassDouble   ArrayClass = 6
	ClassSingle   ArrayClass = 7
	ClassInt8     ArrayClass = 8
	ClassUint8    ArrayClass = 9
	ClassInt16    ArrayClass = 10
	ClassUint16   ArrayClass = 11
	ClassInt32    ArrayClass = 12
	ClassUint32   ArrayClass = 13
	ClassInt64    ArrayClass = 14
	ClassUint64   ArrayClass = 15
	ClassFunction ArrayClass = 16
	ClassOpaque   ArrayClass = 17
)

var arrayClasses = map[ArrayClass]matvar.Class{
	ClassCell:     matvar.Cell,
	ClassStruct:   matvar.Struct,
	ClassObject:   matvar.Object,
	ClassChar:     matvar.Char,
	ClassSparse:   matvar.Sparse,
	ClassDouble:   matvar.Double,
	ClassSingle:   matvar.Single,
	ClassInt8:     matvar.Int8,
	ClassUint8:    matvar.Uint8,
	ClassInt16:    matvar.Int16,
	ClassUint16:   matvar.Uint16,
	ClassInt32:    matvar.Int32,
	ClassUint32:   matvar.Uint32,
	ClassInt64:    matvar.Int64,
	ClassUint64:   matvar.Uint64,
	ClassFunction: matvar.Function,
	ClassOpaque:   matvar.Opaque,
}

// Class maps the array class to a matvar.Class. Logical arrays are stored
// as uint8 (or double for old writers) with the logical flag set.
func (c ArrayClass) Class(logical bool) matvar.Class {
	if logical && (c == ClassUint8 || c == ClassDouble) {
		return matvar.Logical
	}
	if mc, ok := arrayClasses[c]; ok {
		return mc
	}
	return matvar.Unknown
}

func (c ArrayClass) String() string {
	return c.Class(false).String()
}

// FromClass maps a matvar.Class back to its array class and reports whether
// the logical flag must be set.
func FromClass(c matvar.Class) (ac ArrayClass, logical bool, err error) {
	if c == matvar.Logical {
		return ClassUint8, true, nil
	}
	for k, v := range arrayClasses {
		if v == c {
			return k, false, nil
		}
	}
	return 0, false, fmt.Errorf("no array class for %s", c)
}
