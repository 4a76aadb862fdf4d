package regionmap

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/robert-malhotra/go-regionmap/matvar"
)

// rle builds an Nx2 int32 run-length table from (run, value) pairs.
func rle(pairs ...[2]int32) *matvar.Array {
	col := make([]int32, 2*len(pairs))
	for i, p := range pairs {
		col[i] = p[0]
		col[len(pairs)+i] = p[1]
	}
	return matvar.NewInt32(col...).Reshape(len(pairs), 2)
}

func TestLoadAtomicRegionsFromRLE(t *testing.T) {
	got, err := LoadAtomicRegionsFromRLE(rle([2]int32{3, 7}, [2]int32{2, 9}), ImageSize{Rows: 1, Cols: 5})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff(LabelMap{7, 7, 7, 9, 9}, got); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAtomicRegionsFromRLEInt64(t *testing.T) {
	v := matvar.NewInt64(2, 0, 4, 1<<40, 5, -3).Reshape(3, 2)
	got, err := LoadAtomicRegionsFromRLE(v, ImageSize{Rows: 2, Cols: 3, Stride: 3})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	want := LabelMap{1 << 40, 1 << 40, -3, -3, -3, -3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAtomicRegionsFromRLEShortFill(t *testing.T) {
	v := rle([2]int32{2, 4}, [2]int32{1, 5})
	size := ImageSize{Rows: 2, Cols: 3}

	// By default the uncovered tail keeps the zero label.
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	got, err := LoadAtomicRegionsFromRLE(v, size, WithLogger(logger))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff(LabelMap{4, 4, 5, 0, 0, 0}, got); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(logs.String(), "short run-length fill") {
		t.Errorf("expected debug log, got %q", logs.String())
	}

	_, err = LoadAtomicRegionsFromRLE(v, size, WithStrictRLE())
	var under *RLEUnderrunError
	if !errors.As(err, &under) {
		t.Fatalf("expected *RLEUnderrunError, got %v", err)
	}
	if under.Covered != 3 || under.Capacity != 6 || !errors.Is(err, ErrRLE) {
		t.Errorf("got %+v", under)
	}
}

func TestLoadAtomicRegionsFromRLEEmpty(t *testing.T) {
	got, err := LoadAtomicRegionsFromRLE(rle(), ImageSize{}, WithStrictRLE())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no labels, got %v", got)
	}
}

func TestLoadAtomicRegionsFromRLEOverrun(t *testing.T) {
	_, err := LoadAtomicRegionsFromRLE(rle([2]int32{3, 1}, [2]int32{3, 2}), ImageSize{Rows: 1, Cols: 5})
	var over *RLEOverrunError
	if !errors.As(err, &over) {
		t.Fatalf("expected *RLEOverrunError, got %v", err)
	}
	want := RLEOverrunError{Run: 1, Cursor: 3, Length: 3, Capacity: 5}
	if *over != want {
		t.Errorf("got %+v, want %+v", *over, want)
	}
	if !errors.Is(err, ErrRLE) {
		t.Error("expected errors.Is(err, ErrRLE)")
	}
}

func TestLoadAtomicRegionsFromRLEErrors(t *testing.T) {
	size := ImageSize{Rows: 2, Cols: 2}
	tests := []struct {
		name  string
		value matvar.Value
		size  ImageSize
		opts  []Option
		want  error
	}{
		{"three columns", matvar.NewInt32(1, 2, 3, 4, 5, 6).Reshape(2, 3), size, nil, matvar.ErrInvalidShape},
		{"rank 3", matvar.NewInt32(4, 1).Reshape(1, 2, 1), size, nil, matvar.ErrInvalidShape},
		{"complex", matvar.NewComplex(matvar.Int32, []int{1, 2}, rle([2]int32{4, 1}).Data(), make([]byte, 8)), size, nil, matvar.ErrInvalidShape},
		{"ragged data", matvar.NewInt32(4, 1, 2).Reshape(2, 2), size, nil, matvar.ErrInvalidShape},
		{"double", matvar.NewDouble(4, 1).Reshape(1, 2), size, nil, matvar.ErrUnsupportedType},
		{"uint8", matvar.NewUint8(4, 1).Reshape(1, 2), size, nil, matvar.ErrUnsupportedType},
		{"logical", matvar.NewLogical(true, true).Reshape(1, 2), size, nil, matvar.ErrUnsupportedType},
		{"negative run", rle([2]int32{-1, 3}), size, nil, ErrRLE},
		{"negative size", rle([2]int32{1, 3}), ImageSize{Rows: -1, Cols: 2}, nil, matvar.ErrInvalidShape},
		{"too many pixels", rle([2]int32{1, 3}), ImageSize{Rows: 100, Cols: 100}, []Option{WithMaxPixels(9999)}, matvar.ErrInvalidShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadAtomicRegionsFromRLE(tt.value, tt.size, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRLERunError(t *testing.T) {
	_, err := LoadAtomicRegionsFromRLE(rle([2]int32{1, 3}, [2]int32{-2, 3}), ImageSize{Rows: 1, Cols: 4})
	var run *RLERunError
	if !errors.As(err, &run) {
		t.Fatalf("expected *RLERunError, got %v", err)
	}
	if run.Run != 1 || run.Length != -2 {
		t.Errorf("got %+v", run)
	}
}

func TestMaxPixelsBoundary(t *testing.T) {
	v := rle([2]int32{100, 1})
	if _, err := LoadAtomicRegionsFromRLE(v, ImageSize{Rows: 10, Cols: 10}, WithMaxPixels(100)); err != nil {
		t.Errorf("100 pixels at limit 100: %v", err)
	}
	if _, err := LoadAtomicRegionsFromRLE(v, ImageSize{Rows: 10, Cols: 11}, WithMaxPixels(100)); !errors.Is(err, matvar.ErrInvalidShape) {
		t.Errorf("110 pixels at limit 100: got %v", err)
	}
}
