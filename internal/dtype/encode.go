package dtype

import (
	"encoding/binary"
	"fmt"

	"github.com/robert-malhotra/go-regionmap/matvar"
)

// StorageType returns the natural storage type for elements of class c.
func StorageType(c matvar.Class) (Type, error) {
	switch c {
	case matvar.Double:
		return Double, nil
	case matvar.Single:
		return Single, nil
	case matvar.Int8:
		return Int8, nil
	case matvar.Uint8, matvar.Logical:
		return Uint8, nil
	case matvar.Int16:
		return Int16, nil
	case matvar.Uint16:
		return Uint16, nil
	case matvar.Int32:
		return Int32, nil
	case matvar.Uint32:
		return Uint32, nil
	case matvar.Int64:
		return Int64, nil
	case matvar.Uint64:
		return Uint64, nil
	case matvar.Char:
		return Uint16, nil
	default:
		return 0, fmt.Errorf("class %s has no element storage", c)
	}
}

// Encode returns the storage type for class c and data (little-endian, class
// layout) rearranged for the given byte order. Char data is written as
// miUINT16 code units.
func Encode(c matvar.Class, data []byte, order binary.ByteOrder) (Type, []byte, error) {
	t, err := StorageType(c)
	if err != nil {
		return 0, nil, err
	}
	size := t.Size()
	if len(data)%size != 0 {
		return 0, nil, fmt.Errorf("%s data length %d is not a multiple of %d", c, len(data), size)
	}
	if order == binary.LittleEndian || size == 1 {
		return t, data, nil
	}
	return t, Swap(data, size), nil
}
