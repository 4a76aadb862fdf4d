package matvar

// Class is the element type tag of a Value.
type Class uint8

const (
	Unknown Class = iota
	Double
	Single
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Char
	Logical
	Struct
	Cell
	Object
	Sparse
	Function
	Opaque
)

var classNames = [...]string{
	Unknown:  "unknown",
	Double:   "double",
	Single:   "single",
	Int8:     "int8",
	Uint8:    "uint8",
	Int16:    "int16",
	Uint16:   "uint16",
	Int32:    "int32",
	Uint32:   "uint32",
	Int64:    "int64",
	Uint64:   "uint64",
	Char:     "char",
	Logical:  "logical",
	Struct:   "struct",
	Cell:     "cell",
	Object:   "object",
	Sparse:   "sparse",
	Function: "function_handle",
	Opaque:   "opaque",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// Size returns the width in bytes of one element of Data(), or 0 for classes
// without a flat element buffer.
func (c Class) Size() int {
	switch c {
	case Double, Int64, Uint64:
		return 8
	case Single, Int32, Uint32:
		return 4
	case Int16, Uint16, Char:
		return 2
	case Int8, Uint8, Logical:
		return 1
	default:
		return 0
	}
}

// IsNumeric reports whether c is a real or integer numeric class.
func (c Class) IsNumeric() bool {
	return c >= Double && c <= Uint64
}

// IsInteger reports whether c is one of the integer classes.
func (c Class) IsInteger() bool {
	return c >= Int8 && c <= Uint64
}

// IsFloat reports whether c is Single or Double.
func (c Class) IsFloat() bool {
	return c == Single || c == Double
}

// IsSigned reports whether c is a signed integer or float class.
func (c Class) IsSigned() bool {
	switch c {
	case Double, Single, Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}
