package regionmap

import (
	"slices"

	"github.com/robert-malhotra/go-regionmap/matvar"
)

// Field names of a region struct.
const (
	fieldSuperpixels = "list_of_atomic_superpixels"
	fieldScale       = "scale"
	fieldChildren    = "children"
)

// Accepted element classes.
var (
	intClasses   = []matvar.Class{matvar.Int32, matvar.Int64}
	floatClasses = []matvar.Class{matvar.Single, matvar.Double}
)

// LoadRegion reads a region struct's list_of_atomic_superpixels field.
func LoadRegion(v matvar.Value) (Region, error) {
	return loadRegion(matvar.Wrap(v))
}

func loadRegion(a matvar.Accessor) (Region, error) {
	if err := a.RequireClass(matvar.Struct, "expected a region struct"); err != nil {
		return Region{}, err
	}
	f, _, err := a.Field(fieldSuperpixels, false)
	if err != nil {
		return Region{}, err
	}
	ids, err := f.Ints(intClasses...)
	if err != nil {
		return Region{}, err
	}
	return Region{AtomicSuperpixels: ids}, nil
}

// LoadRegionTree reads a cell array of region structs, following each
// region's optional children field recursively. Errors are returned as
// produced, carrying the path of the offending value.
func LoadRegionTree(v matvar.Value, opts ...Option) ([]HierarchicalRegion, error) {
	o := newOptions(opts)
	return loadTree(matvar.Wrap(v), 1, o)
}

// loadTree loads one level of siblings. depth is 1 for the root level.
func loadTree(a matvar.Accessor, depth int, o *options) ([]HierarchicalRegion, error) {
	if depth > o.maxDepth {
		return nil, &TreeTooDeepError{Path: a.Path(), MaxDepth: o.maxDepth}
	}
	cells, err := a.Cells()
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, shapeError(a, "expected at least one region")
	}

	// The level is attached to its parent only once every sibling loaded.
	level := make([]HierarchicalRegion, 0, len(cells))
	for _, c := range cells {
		node, err := loadNode(c, depth, o)
		if err != nil {
			return nil, err
		}
		level = append(level, node)
	}
	return level, nil
}

func loadNode(a matvar.Accessor, depth int, o *options) (HierarchicalRegion, error) {
	region, err := loadRegion(a)
	if err != nil {
		return HierarchicalRegion{}, err
	}
	node := HierarchicalRegion{Region: region}

	scale, _, err := a.Field(fieldScale, false)
	if err != nil {
		return HierarchicalRegion{}, err
	}
	if node.Scale, err = scale.Float32(floatClasses...); err != nil {
		return HierarchicalRegion{}, err
	}

	children, ok, err := a.Field(fieldChildren, true)
	if err != nil {
		return HierarchicalRegion{}, err
	}
	if ok {
		if node.Children, err = loadTree(children, depth+1, o); err != nil {
			return HierarchicalRegion{}, err
		}
	}
	return node, nil
}

// LoadImageSize reads a 1x3 integer vector as rows, cols and stride.
func LoadImageSize(v matvar.Value) (ImageSize, error) {
	a := matvar.Wrap(v)
	if err := a.RequireDims(1, 3); err != nil {
		return ImageSize{}, err
	}
	if err := a.RequireReal(); err != nil {
		return ImageSize{}, err
	}
	vals, err := a.Ints(intClasses...)
	if err != nil {
		return ImageSize{}, err
	}
	if len(vals) != 3 {
		return ImageSize{}, shapeError(a, "expected 3 elements")
	}
	for _, x := range vals {
		if x < 0 {
			return ImageSize{}, shapeError(a, "negative image dimension")
		}
	}
	return ImageSize{Rows: int(vals[0]), Cols: int(vals[1]), Stride: int(vals[2])}, nil
}

func shapeError(a matvar.Accessor, reason string) error {
	return &matvar.InvalidShapeError{
		Path:   a.Path(),
		Reason: reason,
		Class:  a.Class(),
		Dims:   slices.Clone(a.Dims()),
	}
}
