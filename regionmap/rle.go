package regionmap

import (
	"fmt"

	"github.com/robert-malhotra/go-regionmap/matvar"
)

// LoadAtomicRegionsFromRLE expands an Nx2 table of (run_length, value) pairs
// into one label per pixel of size. The table is column-major: the first N
// elements are run lengths and the next N their values.
//
// A run that would write past Rows*Cols fails with *RLEOverrunError. When
// the runs cover fewer pixels, the remaining labels are zero, or the call
// fails with *RLEUnderrunError under WithStrictRLE.
func LoadAtomicRegionsFromRLE(v matvar.Value, size ImageSize, opts ...Option) (LabelMap, error) {
	return loadRLE(matvar.Wrap(v), size, newOptions(opts))
}

func loadRLE(a matvar.Accessor, size ImageSize, o *options) (LabelMap, error) {
	if err := a.RequireDims(-1, 2); err != nil {
		return nil, err
	}
	if err := a.RequireReal(); err != nil {
		return nil, err
	}
	data, err := a.Ints(intClasses...)
	if err != nil {
		return nil, err
	}
	n := a.Dims()[0]
	if len(data) != 2*n {
		return nil, shapeError(a, fmt.Sprintf("expected %d elements", 2*n))
	}

	if size.Rows < 0 || size.Cols < 0 {
		return nil, shapeError(a, fmt.Sprintf("image size %s is negative", size))
	}
	if size.Cols != 0 && size.Rows > o.maxPixels/size.Cols {
		return nil, shapeError(a, fmt.Sprintf("image size %s exceeds %d pixels", size, o.maxPixels))
	}

	pixels := size.Pixels()
	labels := make(LabelMap, pixels)
	cursor := 0
	for i := range n {
		run, value := data[i], data[n+i]
		if run < 0 {
			return nil, &RLERunError{Run: i, Length: run}
		}
		if run > int64(pixels-cursor) {
			return nil, &RLEOverrunError{Run: i, Cursor: cursor, Length: run, Capacity: pixels}
		}
		end := cursor + int(run)
		for j := cursor; j < end; j++ {
			labels[j] = value
		}
		cursor = end
	}

	if cursor < pixels {
		if o.strictRLE {
			return nil, &RLEUnderrunError{Covered: cursor, Capacity: pixels}
		}
		o.logger.Debug("short run-length fill", "path", a.Path(), "covered", cursor, "pixels", pixels)
	}
	return labels, nil
}
