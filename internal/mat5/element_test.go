package mat5

import (
	"bytes"
	stdbinary "encoding/binary"
	"errors"
	"testing"

	"github.com/robert-malhotra/go-regionmap/internal/binary"
	"github.com/robert-malhotra/go-regionmap/internal/dtype"
)

func TestPadding(t *testing.T) {
	tests := []struct{ n, want int64 }{
		{0, 0}, {1, 7}, {4, 4}, {7, 1}, {8, 0}, {9, 7}, {16, 0},
	}
	for _, tt := range tests {
		if got := padding(tt.n); got != tt.want {
			t.Errorf("padding(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestWriteElement(t *testing.T) {
	tests := []struct {
		name string
		typ  dtype.Type
		data []byte
		want []byte
	}{
		{"small", dtype.Int8, []byte("ab"), []byte{1, 0, 2, 0, 'a', 'b', 0, 0}},
		{"empty", dtype.Int8, nil, []byte{1, 0, 0, 0, 0, 0, 0, 0}},
		{"padded", dtype.Uint8, []byte{1, 2, 3, 4, 5}, []byte{2, 0, 0, 0, 5, 0, 0, 0, 1, 2, 3, 4, 5, 0, 0, 0}},
		{"compressed", dtype.Compressed, []byte{9, 9}, []byte{15, 0, 0, 0, 2, 0, 0, 0, 9, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := binary.NewWriter(&buf, binary.Config{ByteOrder: stdbinary.LittleEndian})
			if err := writeElement(w, tt.typ, tt.data); err != nil {
				t.Fatalf("writeElement failed: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tt.want) {
				t.Errorf("got %v, want %v", buf.Bytes(), tt.want)
			}

			r := binary.FromBytes(buf.Bytes(), stdbinary.LittleEndian)
			e, err := readElement(r)
			if err != nil {
				t.Fatalf("readElement failed: %v", err)
			}
			got, err := e.bytes()
			if err != nil {
				t.Fatalf("bytes failed: %v", err)
			}
			if e.typ != tt.typ || !bytes.Equal(got, tt.data) {
				t.Errorf("read back %v %v, want %v %v", e.typ, got, tt.typ, tt.data)
			}
			if r.Len() != 0 {
				t.Errorf("%d bytes left after element", r.Len())
			}
		})
	}
}

func TestReadElementBigEndian(t *testing.T) {
	// Small element: type miINT8, 3 bytes.
	data := []byte{0, 3, 0, 1, 'a', 'b', 'c', 0}
	e, err := readElement(binary.FromBytes(data, stdbinary.BigEndian))
	if err != nil {
		t.Fatalf("readElement failed: %v", err)
	}
	if !e.small || e.typ != dtype.Int8 || e.size() != 3 {
		t.Errorf("got small=%v type=%v size=%d", e.small, e.typ, e.size())
	}
}

func TestReadElementErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short tag", []byte{1, 0}, ErrTruncated},
		{"short length", []byte{9, 0, 0, 0}, ErrTruncated},
		{"short payload", []byte{9, 0, 0, 0, 16, 0, 0, 0, 1, 2, 3}, ErrTruncated},
		{"oversized small element", []byte{1, 0, 5, 0, 1, 2, 3, 4}, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readElement(binary.FromBytes(tt.data, stdbinary.LittleEndian))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestExpectElement(t *testing.T) {
	data := []byte{1, 0, 1, 0, 'x', 0, 0, 0}
	if _, err := expectElement(binary.FromBytes(data, stdbinary.LittleEndian), "name", dtype.Int32); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
	if _, err := expectElement(binary.FromBytes(data, stdbinary.LittleEndian), "name", dtype.Int8); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
