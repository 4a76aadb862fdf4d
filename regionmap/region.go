package regionmap

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Region is a set of atomic superpixels, in source order.
type Region struct {
	AtomicSuperpixels []int64
}

// Len returns the number of atomic superpixels.
func (r Region) Len() int {
	return len(r.AtomicSuperpixels)
}

// HierarchicalRegion is a region with a scale and its child regions.
type HierarchicalRegion struct {
	Region
	Scale float32

	// Children is nil for a leaf, i.e. when the children field is absent.
	Children []HierarchicalRegion
}

// IsLeaf reports whether the region has no children field.
func (r *HierarchicalRegion) IsLeaf() bool {
	return r.Children == nil
}

// ImageSize is the geometry of the segmented image.
type ImageSize struct {
	Rows   int
	Cols   int
	Stride int
}

// Pixels returns Rows*Cols.
func (s ImageSize) Pixels() int {
	return s.Rows * s.Cols
}

func (s ImageSize) String() string {
	return fmt.Sprintf("%dx%d (stride %d)", s.Rows, s.Cols, s.Stride)
}

// LabelMap holds one atomic region label per pixel.
type LabelMap []int64

// maxExactLabel is the largest magnitude a float64 holds exactly.
const maxExactLabel = 1 << 53

// Dense reshapes the labels row-major into a size.Rows x size.Cols matrix.
// Labels beyond ±2^53 have no exact float64 form and fail.
func (m LabelMap) Dense(size ImageSize) (*mat.Dense, error) {
	if size.Rows <= 0 || size.Cols <= 0 {
		return nil, fmt.Errorf("cannot reshape into %s", size)
	}
	if len(m) != size.Pixels() {
		return nil, fmt.Errorf("%d labels do not fill %s", len(m), size)
	}
	data := make([]float64, len(m))
	for i, l := range m {
		if l > maxExactLabel || l < -maxExactLabel {
			return nil, fmt.Errorf("label %d at pixel %d has no exact float64 form", l, i)
		}
		data[i] = float64(l)
	}
	return mat.NewDense(size.Rows, size.Cols, data), nil
}

// LabelCount is the number of pixels carrying one label.
type LabelCount struct {
	Label  int64
	Pixels int
}

// Histogram counts pixels per label, most frequent first. Ties are ordered
// by label.
func (m LabelMap) Histogram() []LabelCount {
	counts := make(map[int64]int)
	for _, l := range m {
		counts[l]++
	}
	out := make([]LabelCount, 0, len(counts))
	for l, n := range counts {
		out = append(out, LabelCount{Label: l, Pixels: n})
	}
	slices.SortFunc(out, func(a, b LabelCount) int {
		if a.Pixels != b.Pixels {
			return b.Pixels - a.Pixels
		}
		switch {
		case a.Label < b.Label:
			return -1
		case a.Label > b.Label:
			return 1
		}
		return 0
	})
	return out
}

// Hierarchy is everything File.Load reads from a region map file.
type Hierarchy struct {
	Regions []HierarchicalRegion
	Size    ImageSize
	Labels  LabelMap
}
