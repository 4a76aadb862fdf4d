package regionmap

import (
	"errors"
	"fmt"
	"io"

	"github.com/robert-malhotra/go-regionmap/internal/mat5"
	"github.com/robert-malhotra/go-regionmap/matvar"
)

// VariableInfo describes a top-level variable of a region map file.
type VariableInfo struct {
	Name       string
	Class      matvar.Class
	Dims       []int
	Compressed bool
}

// File is an open region map file.
type File struct {
	mf     *mat5.File
	opts   *options
	closed bool
}

// Open opens a region map stored as a level-5 MAT-file.
func Open(path string, opts ...Option) (*File, error) {
	o := newOptions(opts)
	mf, err := mat5.Open(path, o.containerOptions()...)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	o.logger.Debug("opened region map", "path", path, "variables", len(mf.Variables()))
	return &File{mf: mf, opts: o}, nil
}

// NewReader reads a region map of the given size from r.
func NewReader(r io.ReaderAt, size int64, opts ...Option) (*File, error) {
	o := newOptions(opts)
	mf, err := mat5.NewReader(r, size, o.containerOptions()...)
	if err != nil {
		return nil, err
	}
	return &File{mf: mf, opts: o}, nil
}

// Close closes the file. It is safe to call more than once.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.mf.Close()
}

// Variables lists the named top-level variables in file order.
func (f *File) Variables() []VariableInfo {
	var out []VariableInfo
	for _, v := range f.mf.Variables() {
		if v.Name == "" {
			continue
		}
		out = append(out, VariableInfo{
			Name:       v.Name,
			Class:      v.Class,
			Dims:       v.Dims,
			Compressed: v.Compressed,
		})
	}
	return out
}

// Variable decodes a top-level variable.
func (f *File) Variable(name string) (matvar.Value, error) {
	if f.closed {
		return nil, ErrClosed
	}
	v, err := f.mf.Var(name)
	if errors.Is(err, mat5.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrVariableNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	f.opts.logger.Debug("decoded variable", "name", name, "class", v.Class(), "dims", matvar.FormatDims(v.Dims()))
	return v, nil
}

// Regions loads the region tree variable.
func (f *File) Regions() ([]HierarchicalRegion, error) {
	name := f.opts.treeVar
	v, err := f.Variable(name)
	if errors.Is(err, mat5.ErrNesting) {
		deep := &TreeTooDeepError{Path: name, MaxDepth: f.opts.maxDepth}
		return nil, fmt.Errorf("loading %s: %w: %w", name, deep, err)
	}
	if err != nil {
		return nil, err
	}
	regions, err := loadTree(matvar.Wrap(v), 1, f.opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return regions, nil
}

// ImageSize loads the image shape variable.
func (f *File) ImageSize() (ImageSize, error) {
	name := f.opts.shapeVar
	v, err := f.Variable(name)
	if err != nil {
		return ImageSize{}, err
	}
	size, err := LoadImageSize(v)
	if err != nil {
		return ImageSize{}, fmt.Errorf("loading %s: %w", name, err)
	}
	return size, nil
}

// Labels loads the run-length encoded label map for an image of the given size.
func (f *File) Labels(size ImageSize) (LabelMap, error) {
	name := f.opts.rleVar
	v, err := f.Variable(name)
	if err != nil {
		return nil, err
	}
	labels, err := loadRLE(matvar.Wrap(v), size, f.opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return labels, nil
}

// Load reads the region tree, the image shape and the label map.
func (f *File) Load() (*Hierarchy, error) {
	regions, err := f.Regions()
	if err != nil {
		return nil, err
	}
	size, err := f.ImageSize()
	if err != nil {
		return nil, err
	}
	labels, err := f.Labels(size)
	if err != nil {
		return nil, err
	}
	n, depth := Count(regions)
	f.opts.logger.Debug("loaded hierarchy", "regions", n, "depth", depth, "size", size.String())
	return &Hierarchy{Regions: regions, Size: size, Labels: labels}, nil
}
