package regionmap

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

// Path locates a region in a tree by its zero-based sibling index at each
// level, starting from the root level.
type Path []int

// Depth returns the level of the region, 1 for root regions.
func (p Path) Depth() int {
	return len(p)
}

// String renders the path with one-based indexes, e.g. "2.1.3".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx + 1)
	}
	return strings.Join(parts, ".")
}

// WalkFunc is called for each region during traversal.
// Return nil to continue, ErrSkipChildren to skip the region's subtree,
// ErrStopWalk to end the walk, or any other error to abort with it.
type WalkFunc func(path Path, r *HierarchicalRegion) error

// ErrSkipChildren can be returned from WalkFunc to skip a region's children.
var ErrSkipChildren = errors.New("skip children")

// ErrStopWalk can be returned from WalkFunc to stop walking without an error.
var ErrStopWalk = &walkStopError{}

type walkStopError struct{}

func (e *walkStopError) Error() string { return "walk stopped" }

// IsStopWalk returns true if the error is ErrStopWalk.
func IsStopWalk(err error) bool {
	var stop *walkStopError
	return errors.As(err, &stop)
}

// Walk visits every region depth-first in pre-order, siblings in order.
//
// Example:
//
//	regionmap.Walk(h.Regions, func(p regionmap.Path, r *regionmap.HierarchicalRegion) error {
//	    fmt.Println(p, r.Scale, r.Len())
//	    return nil
//	})
func Walk(regions []HierarchicalRegion, fn WalkFunc) error {
	err := walkLevel(regions, nil, fn)
	if IsStopWalk(err) {
		return nil
	}
	return err
}

func walkLevel(regions []HierarchicalRegion, parent Path, fn WalkFunc) error {
	for i := range regions {
		p := append(slices.Clone(parent), i)
		err := fn(p, &regions[i])
		if err == ErrSkipChildren {
			continue
		}
		if err != nil {
			return err
		}
		if err := walkLevel(regions[i].Children, p, fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of regions in the tree and its depth.
func Count(regions []HierarchicalRegion) (n, depth int) {
	Walk(regions, func(p Path, _ *HierarchicalRegion) error {
		n++
		depth = max(depth, p.Depth())
		return nil
	})
	return n, depth
}
