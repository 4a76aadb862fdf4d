package mat5

import (
	"fmt"
	"io"
	"os"

	"github.com/robert-malhotra/go-regionmap/internal/binary"
	"github.com/robert-malhotra/go-regionmap/internal/dtype"
	"github.com/robert-malhotra/go-regionmap/internal/filter"
	"github.com/robert-malhotra/go-regionmap/matvar"
)

// peekSize is how much of a compressed variable is inflated to read its
// matrix header while indexing.
const peekSize = 1024

// VarInfo describes a top-level variable without decoding its data.
type VarInfo struct {
	Name       string
	Class      matvar.Class
	Dims       []int
	Complex    bool
	Global     bool
	Compressed bool

	offset int64 // offset of the element tag in the file
}

// File represents an open MAT-file.
type File struct {
	path    string
	file    *os.File
	header  *Header
	reader  *binary.Reader
	inflate *filter.Deflate
	decoder *decoder
	vars    []VarInfo
	closed  bool
}

// Open opens a MAT-file for reading.
func Open(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	mf, err := NewReader(f, info.Size(), opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	mf.path = path
	mf.file = f
	return mf, nil
}

// NewReader reads a MAT-file of the given size from r. The returned File
// does not own r; Close only marks it closed.
func NewReader(r io.ReaderAt, size int64, opts ...Option) (*File, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	mf := &File{
		header:  h,
		reader:  binary.NewReader(r, binary.Config{ByteOrder: h.ByteOrder, Size: size}),
		inflate: &filter.Deflate{MaxSize: o.maxInflate},
		decoder: &decoder{maxNesting: o.maxNesting},
	}
	if err := mf.index(); err != nil {
		return nil, err
	}
	return mf, nil
}

// index scans the top-level elements and records one VarInfo per variable.
func (f *File) index() error {
	r := f.reader.At(HeaderSize)
	for r.Len() > 0 {
		e, err := readElement(r)
		if err != nil {
			return fmt.Errorf("variable %d: %w", len(f.vars)+1, err)
		}
		if f.header.SubsysOffset != 0 && uint64(e.offset) == f.header.SubsysOffset {
			continue
		}

		var info VarInfo
		switch e.typ {
		case dtype.Matrix:
			info, err = f.peekMatrix(e.data.At(0))
		case dtype.Compressed:
			info, err = f.peekCompressed(e)
		default:
			// Only matrices are variables; anything else is skipped.
			continue
		}
		if err != nil {
			return fmt.Errorf("variable %d at offset %d: %w", len(f.vars)+1, e.offset, err)
		}
		info.offset = e.offset
		f.vars = append(f.vars, info)
	}
	return nil
}

func (f *File) peekMatrix(r *binary.Reader) (VarInfo, error) {
	if r.Len() == 0 {
		return VarInfo{Class: matvar.Double, Dims: []int{0, 0}}, nil
	}
	h, err := readMatrixHeader(r)
	if err != nil {
		return VarInfo{}, err
	}
	return VarInfo{
		Name:    h.name,
		Class:   h.class,
		Dims:    h.dims,
		Complex: h.complex,
		Global:  h.global,
	}, nil
}

func (f *File) peekCompressed(e element) (VarInfo, error) {
	raw, err := e.bytes()
	if err != nil {
		return VarInfo{}, truncated(err)
	}
	prefix, err := f.inflate.DecodePrefix(raw, peekSize)
	if err != nil {
		return VarInfo{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	// The inflated stream is one miMATRIX element, usually longer than the
	// prefix, so the tag is read by hand and the header parsed from what we have.
	r := binary.FromBytes(prefix, f.header.ByteOrder)
	typ, err := r.ReadUint32()
	if err != nil {
		return VarInfo{}, truncated(err)
	}
	if dtype.Type(typ) != dtype.Matrix {
		return VarInfo{}, fmt.Errorf("%w: compressed payload holds %s", ErrMalformed, dtype.Type(typ))
	}
	n, err := r.ReadUint32()
	if err != nil {
		return VarInfo{}, truncated(err)
	}
	body, _ := r.Section(min(int64(n), r.Len()))
	info, err := f.peekMatrix(body)
	if err != nil {
		return VarInfo{}, err
	}
	info.Compressed = true
	return info, nil
}

// Header returns the parsed file header.
func (f *File) Header() *Header {
	return f.header
}

// Path returns the file path, or "" for files opened with NewReader.
func (f *File) Path() string {
	return f.path
}

// Variables returns the index of top-level variables in file order.
func (f *File) Variables() []VarInfo {
	return f.vars
}

// Names returns the names of the top-level variables in file order.
func (f *File) Names() []string {
	var names []string
	for _, v := range f.vars {
		if v.Name != "" {
			names = append(names, v.Name)
		}
	}
	return names
}

// Lookup returns the index entry for a variable.
func (f *File) Lookup(name string) (VarInfo, bool) {
	for _, v := range f.vars {
		if v.Name == name {
			return v, true
		}
	}
	return VarInfo{}, false
}

// Var decodes the named top-level variable.
func (f *File) Var(name string) (*matvar.Array, error) {
	if f.closed {
		return nil, ErrClosed
	}
	info, ok := f.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	e, err := readElement(f.reader.At(info.offset))
	if err != nil {
		return nil, err
	}
	body := e.data
	if e.typ == dtype.Compressed {
		raw, err := e.bytes()
		if err != nil {
			return nil, truncated(err)
		}
		inflated, err := f.inflate.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: variable %q: %w", ErrMalformed, name, err)
		}
		inner, err := expectElement(binary.FromBytes(inflated, f.header.ByteOrder), "compressed matrix", dtype.Matrix)
		if err != nil {
			return nil, err
		}
		body = inner.data
	}
	return f.decoder.readMatrix(body, 0)
}

// Close closes the file. It is safe to call more than once.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}
