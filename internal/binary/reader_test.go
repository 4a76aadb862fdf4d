package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// tagBytes lays out a data element tag followed by its payload.
func tagBytes(order binary.ByteOrder, typ uint32, payload ...byte) []byte {
	buf := make([]byte, 8, 8+len(payload))
	order.PutUint32(buf, typ)
	order.PutUint32(buf[4:], uint32(len(payload)))
	return append(buf, payload...)
}

func TestReaderIntegers(t *testing.T) {
	tests := []struct {
		name  string
		order binary.ByteOrder
		data  []byte
	}{
		{"little endian", binary.LittleEndian, []byte{
			0x34, 0x12,
			0x78, 0x56, 0x34, 0x12,
			0xf9, 0xff, 0xff, 0xff,
			0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
		}},
		{"big endian", binary.BigEndian, []byte{
			0x12, 0x34,
			0x12, 0x34, 0x56, 0x78,
			0xff, 0xff, 0xff, 0xf9,
			0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromBytes(tt.data, tt.order)
			if r.ByteOrder() != tt.order {
				t.Errorf("ByteOrder: got %v", r.ByteOrder())
			}
			if v, err := r.ReadUint16(); err != nil || v != 0x1234 {
				t.Errorf("ReadUint16 = %#x, %v", v, err)
			}
			if v, err := r.ReadUint32(); err != nil || v != 0x12345678 {
				t.Errorf("ReadUint32 = %#x, %v", v, err)
			}
			if v, err := r.ReadInt32(); err != nil || v != -7 {
				t.Errorf("ReadInt32 = %d, %v", v, err)
			}
			if v, err := r.ReadUint64(); err != nil || v != 0x0102030405060708 {
				t.Errorf("ReadUint64 = %#x, %v", v, err)
			}
			if r.Len() != 0 {
				t.Errorf("Len after reading everything: %d", r.Len())
			}
		})
	}
}

func TestReaderAtAndSkip(t *testing.T) {
	r := FromBytes([]byte{0, 1, 2, 3, 4, 5, 6, 7}, binary.LittleEndian)

	c := r.At(4)
	got, err := c.ReadBytes(2)
	if err != nil || !bytes.Equal(got, []byte{4, 5}) {
		t.Fatalf("At(4).ReadBytes(2) = %v, %v", got, err)
	}
	if r.Pos() != 0 {
		t.Errorf("At moved the original reader to %d", r.Pos())
	}

	r.Skip(6)
	if r.Pos() != 6 || r.Len() != 2 {
		t.Errorf("after Skip(6): pos %d, len %d", r.Pos(), r.Len())
	}
}

func TestReaderElementSections(t *testing.T) {
	// Two elements back to back, the first padded to 8 bytes.
	var data []byte
	data = append(data, tagBytes(binary.LittleEndian, 5, 1, 2, 3)...)
	data = append(data, 0, 0, 0, 0, 0)
	data = append(data, tagBytes(binary.LittleEndian, 9, 9, 9)...)
	r := FromBytes(data, binary.LittleEndian)

	var payloads [][]byte
	for r.Len() > 0 {
		if _, err := r.ReadUint32(); err != nil {
			t.Fatal(err)
		}
		n, err := r.ReadUint32()
		if err != nil {
			t.Fatal(err)
		}
		s, err := r.Section(int64(n))
		if err != nil {
			t.Fatalf("Section(%d): %v", n, err)
		}
		p, err := s.ReadBytes(int(n))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.ReadUint16(); !errors.Is(err, ErrShortRead) {
			t.Errorf("read past section end: got %v", err)
		}
		payloads = append(payloads, p)
		r.Skip(min((8-int64(n)%8)%8, r.Len()))
	}
	if len(payloads) != 2 || !bytes.Equal(payloads[0], []byte{1, 2, 3}) || !bytes.Equal(payloads[1], []byte{9, 9}) {
		t.Errorf("payloads: %v", payloads)
	}
}

func TestReaderShortRead(t *testing.T) {
	r := FromBytes([]byte{1, 2, 3}, binary.LittleEndian)

	if _, err := r.ReadUint32(); !errors.Is(err, ErrShortRead) {
		t.Fatalf("expected ErrShortRead, got %v", err)
	}
	if r.Pos() != 0 {
		t.Errorf("failed read advanced to %d", r.Pos())
	}
	if _, err := r.Section(4); !errors.Is(err, ErrShortRead) {
		t.Errorf("oversized section: got %v", err)
	}
	if _, err := r.Section(-1); err == nil {
		t.Error("negative section length should fail")
	}
	if got, err := r.ReadBytes(0); got != nil || err != nil {
		t.Errorf("ReadBytes(0) = %v, %v", got, err)
	}
}

func TestReaderUnbounded(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2}), Config{Size: -1})
	if r.Len() != -1 {
		t.Errorf("Len: got %d, want -1", r.Len())
	}
	if r.ByteOrder() != binary.LittleEndian {
		t.Error("expected little-endian default")
	}
	// The window is open, so a short read comes from the underlying reader.
	if _, err := r.ReadUint32(); !errors.Is(err, ErrShortRead) {
		t.Errorf("expected ErrShortRead, got %v", err)
	}
}
