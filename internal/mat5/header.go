package mat5

import (
	"bytes"
	stdbinary "encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/robert-malhotra/go-regionmap/internal/binary"
)

// HeaderSize is the size of the fixed file header.
const HeaderSize = 128

const (
	textSize   = 116
	version5   = 0x0100
	version73  = 0x0200
	defaultTxt = "MATLAB 5.0 MAT-file, Platform: GLNXA64, Created by: go-regionmap"
)

// Header is the parsed 128-byte MAT-file header.
type Header struct {
	// Text is the descriptive text with trailing padding removed.
	Text string

	// SubsysOffset is the offset of subsystem-specific data, 0 if absent.
	SubsysOffset uint64

	Version   uint16
	ByteOrder stdbinary.ByteOrder
}

// ReadHeader parses the file header at offset 0 of r.
func ReadHeader(r io.ReaderAt) (*Header, error) {
	buf := make([]byte, HeaderSize)
	n, err := r.ReadAt(buf, 0)
	if n < HeaderSize {
		if err == nil || err == io.EOF {
			return nil, fmt.Errorf("%w: file shorter than %d-byte header", ErrNotMAT, HeaderSize)
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	h := &Header{}
	switch string(buf[126:128]) {
	case "IM":
		h.ByteOrder = stdbinary.LittleEndian
	case "MI":
		h.ByteOrder = stdbinary.BigEndian
	default:
		if bytes.HasPrefix(buf, []byte("\x89HDF")) {
			return nil, fmt.Errorf("%w: bare HDF5 file", ErrNotMAT)
		}
		return nil, fmt.Errorf("%w: bad endian indicator %q", ErrNotMAT, buf[126:128])
	}

	// The buffer holds all 128 bytes, so these reads cannot fail.
	hr := binary.FromBytes(buf, h.ByteOrder)
	text, _ := hr.ReadBytes(textSize)
	h.Text = strings.TrimRight(string(text), " \x00")
	h.SubsysOffset, _ = hr.ReadUint64()
	h.Version, _ = hr.ReadUint16()

	switch h.Version {
	case version5:
	case version73:
		return nil, fmt.Errorf("%w: version 7.3 (HDF5-based) MAT-file", ErrUnsupported)
	default:
		return nil, fmt.Errorf("%w: header version 0x%04x", ErrNotMAT, h.Version)
	}

	// Unused subsystem offsets are written as all spaces or all zeros.
	if h.SubsysOffset == 0x2020202020202020 {
		h.SubsysOffset = 0
	}
	return h, nil
}

// write writes the header in its byte order.
func (h *Header) write(w *binary.Writer) error {
	text := bytes.Repeat([]byte{' '}, textSize)
	copy(text, h.Text)
	w.WriteBytes(text)
	w.WriteUint64(h.SubsysOffset)
	w.WriteUint16(version5)
	if h.ByteOrder == stdbinary.BigEndian {
		w.WriteBytes([]byte("MI"))
	} else {
		w.WriteBytes([]byte("IM"))
	}
	return w.Err()
}

// encode returns the header bytes.
func (h *Header) encode() []byte {
	var buf bytes.Buffer
	h.write(binary.NewWriter(&buf, binary.Config{ByteOrder: h.ByteOrder}))
	return buf.Bytes()
}
