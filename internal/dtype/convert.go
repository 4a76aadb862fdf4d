package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/robert-malhotra/go-regionmap/matvar"
)

// Convert converts numeric elements stored as src in the given byte order to
// the little-endian layout of class dst. Integers are truncated to the target
// width and floats converted toward zero when narrowing to an integer class.
// When no conversion is needed and order is little-endian, data is returned
// as is.
//
// Conversion table:
//
//	src \ dst | integer class          | float class
//	----------|------------------------|-------------------
//	signed    | two's complement, LE   | float(v)
//	unsigned  | zero-extended, LE      | float(v)
//	float     | int64(v), truncated    | float32 or float64
func Convert(src Type, order binary.ByteOrder, data []byte, dst matvar.Class) ([]byte, error) {
	if !src.IsNumeric() {
		return nil, fmt.Errorf("cannot convert %s to %s", src, dst)
	}
	ds := dst.Size()
	if ds == 0 || !(dst.IsNumeric() || dst == matvar.Logical) {
		return nil, fmt.Errorf("cannot convert %s to %s", src, dst)
	}
	ss := src.Size()
	if len(data)%ss != 0 {
		return nil, fmt.Errorf("%s data length %d is not a multiple of %d", src, len(data), ss)
	}
	n := len(data) / ss

	if src.numericClass() == dst || (src == Uint8 && dst == matvar.Logical) {
		if order == binary.LittleEndian || ss == 1 {
			return data, nil
		}
		return Swap(data, ss), nil
	}

	out := make([]byte, n*ds)
	for i := 0; i < n; i++ {
		e := data[i*ss : (i+1)*ss]
		o := out[i*ds : (i+1)*ds]
		switch {
		case src.IsFloat():
			putFloat(dst, o, readFloat(src, order, e))
		case src.IsUnsigned():
			putUint(dst, o, readUint(order, e))
		default:
			putInt(dst, o, readInt(order, e))
		}
	}
	return out, nil
}

// Swap reverses the byte order of every size-byte element into a new buffer.
func Swap(data []byte, size int) []byte {
	out := make([]byte, len(data))
	for i := 0; i+size <= len(data); i += size {
		for j := 0; j < size; j++ {
			out[i+j] = data[i+size-1-j]
		}
	}
	return out
}

// DecodeText converts char data stored as t to little-endian UTF-16 code
// units, the layout of matvar.Char.
func DecodeText(t Type, order binary.ByteOrder, data []byte) ([]byte, error) {
	var runes []rune
	switch t {
	case UTF8, Int8, Uint8:
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("invalid UTF-8 in char data")
		}
		runes = []rune(string(data))
	case UTF16, Uint16, Int16:
		if len(data)%2 != 0 {
			return nil, fmt.Errorf("odd %s char data length %d", t, len(data))
		}
		if order == binary.LittleEndian {
			return data, nil
		}
		return Swap(data, 2), nil
	case UTF32, Uint32, Int32:
		if len(data)%4 != 0 {
			return nil, fmt.Errorf("odd %s char data length %d", t, len(data))
		}
		runes = make([]rune, len(data)/4)
		for i := range runes {
			runes[i] = rune(order.Uint32(data[4*i:]))
		}
	default:
		return nil, fmt.Errorf("unsupported char storage type %s", t)
	}
	units := utf16.Encode(runes)
	out := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(out[2*i:], u)
	}
	return out, nil
}

func readUint(order binary.ByteOrder, b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(order.Uint16(b))
	case 4:
		return uint64(order.Uint32(b))
	default:
		return order.Uint64(b)
	}
}

func readInt(order binary.ByteOrder, b []byte) int64 {
	switch len(b) {
	case 1:
		return int64(int8(b[0]))
	case 2:
		return int64(int16(order.Uint16(b)))
	case 4:
		return int64(int32(order.Uint32(b)))
	default:
		return int64(order.Uint64(b))
	}
}

func readFloat(t Type, order binary.ByteOrder, b []byte) float64 {
	if t == Single {
		return float64(math.Float32frombits(order.Uint32(b)))
	}
	return math.Float64frombits(order.Uint64(b))
}

// putBits writes the low len(o) bytes of v little-endian.
func putBits(o []byte, v uint64) {
	for i := range o {
		o[i] = byte(v >> (8 * i))
	}
}

func putFloat(dst matvar.Class, o []byte, f float64) {
	switch dst {
	case matvar.Single:
		binary.LittleEndian.PutUint32(o, math.Float32bits(float32(f)))
	case matvar.Double:
		binary.LittleEndian.PutUint64(o, math.Float64bits(f))
	default:
		if dst.IsSigned() || dst == matvar.Logical {
			putBits(o, uint64(int64(f)))
		} else {
			putBits(o, uint64(f))
		}
	}
}

func putInt(dst matvar.Class, o []byte, v int64) {
	if dst.IsFloat() {
		putFloat(dst, o, float64(v))
		return
	}
	putBits(o, uint64(v))
}

func putUint(dst matvar.Class, o []byte, v uint64) {
	if dst.IsFloat() {
		putFloat(dst, o, float64(v))
		return
	}
	putBits(o, v)
}
