package binary

import (
	"encoding/binary"
	"io"
)

// Writer is a byte-order aware writer over an io.Writer with a sticky error.
type Writer struct {
	w     io.Writer
	order binary.ByteOrder
	err   error
}

// NewWriter creates a binary writer with the given configuration.
// Config.Size is ignored.
func NewWriter(w io.Writer, cfg Config) *Writer {
	order := cfg.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}
	return &Writer{
		w:     w,
		order: order,
	}
}

// Err returns the first write error, if any. Once a write fails every later
// write is a no-op returning the same error.
func (w *Writer) Err() error {
	return w.err
}

// WriteBytes writes the given bytes at the current position.
func (w *Writer) WriteBytes(data []byte) error {
	if w.err != nil {
		return w.err
	}
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	w.err = err
	return err
}

// WriteUint16 writes an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) error {
	buf := make([]byte, 2)
	w.order.PutUint16(buf, v)
	return w.WriteBytes(buf)
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	buf := make([]byte, 4)
	w.order.PutUint32(buf, v)
	return w.WriteBytes(buf)
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) error {
	buf := make([]byte, 8)
	w.order.PutUint64(buf, v)
	return w.WriteBytes(buf)
}

// WriteZeros writes n zero bytes.
func (w *Writer) WriteZeros(n int) error {
	if n <= 0 {
		return nil
	}
	return w.WriteBytes(make([]byte, n))
}
