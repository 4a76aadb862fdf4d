package regionmap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/robert-malhotra/go-regionmap/internal/mat5"
	"github.com/robert-malhotra/go-regionmap/matvar"
)

type variable struct {
	name  string
	value matvar.Value
}

func sampleFileVars() []variable {
	tree := matvar.NewCell(
		node(1, []int32{1, 2, 3},
			leaf(0.5, 1),
			leaf(0.5, 2, 3),
		),
	)
	return []variable{
		{DefaultTreeVar, tree},
		{DefaultShapeVar, matvar.NewInt32(2, 3, 3)},
		{DefaultRLEVar, rle([2]int32{2, 1}, [2]int32{4, 2})},
	}
}

func writeMAT(t *testing.T, vars []variable, opts ...mat5.EncoderOption) string {
	t.Helper()
	var buf bytes.Buffer
	enc := mat5.NewEncoder(&buf, opts...)
	for _, v := range vars {
		if err := enc.Encode(v.name, v.value); err != nil {
			t.Fatalf("Encode(%q) failed: %v", v.name, err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "regions.mat")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileLoad(t *testing.T) {
	want := &Hierarchy{
		Regions: []HierarchicalRegion{{
			Region: Region{AtomicSuperpixels: []int64{1, 2, 3}},
			Scale:  1,
			Children: []HierarchicalRegion{
				{Region: Region{AtomicSuperpixels: []int64{1}}, Scale: 0.5},
				{Region: Region{AtomicSuperpixels: []int64{2, 3}}, Scale: 0.5},
			},
		}},
		Size:   ImageSize{Rows: 2, Cols: 3, Stride: 3},
		Labels: LabelMap{1, 1, 2, 2, 2, 2},
	}

	tests := []struct {
		name string
		opts []mat5.EncoderOption
	}{
		{"plain", nil},
		{"big endian", []mat5.EncoderOption{mat5.BigEndian()}},
		{"compressed", []mat5.EncoderOption{mat5.Compressed()}},
		{"compressed big endian", []mat5.EncoderOption{mat5.Compressed(), mat5.BigEndian()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Open(writeMAT(t, sampleFileVars(), tt.opts...))
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer f.Close()

			got, err := f.Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("hierarchy mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileVariables(t *testing.T) {
	f, err := Open(writeMAT(t, sampleFileVars(), mat5.Compressed()))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	want := []VariableInfo{
		{Name: DefaultTreeVar, Class: matvar.Cell, Dims: []int{1, 1}, Compressed: true},
		{Name: DefaultShapeVar, Class: matvar.Int32, Dims: []int{1, 3}, Compressed: true},
		{Name: DefaultRLEVar, Class: matvar.Int32, Dims: []int{2, 2}, Compressed: true},
	}
	if diff := cmp.Diff(want, f.Variables()); diff != "" {
		t.Errorf("variables mismatch (-want +got):\n%s", diff)
	}

	v, err := f.Variable(DefaultShapeVar)
	if err != nil {
		t.Fatalf("Variable failed: %v", err)
	}
	if v.Name() != DefaultShapeVar || v.Class() != matvar.Int32 {
		t.Errorf("got %q %v", v.Name(), v.Class())
	}

	if _, err := f.Variable("missing"); !errors.Is(err, ErrVariableNotFound) {
		t.Errorf("expected ErrVariableNotFound, got %v", err)
	}
}

func TestFileClosed(t *testing.T) {
	f, err := Open(writeMAT(t, sampleFileVars()))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := f.Variable(DefaultTreeVar); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if _, err := f.Load(); !errors.Is(err, ErrClosed) {
		t.Errorf("Load: expected ErrClosed, got %v", err)
	}
}

func TestFileEmptyChildrenCell(t *testing.T) {
	region := matvar.NewStruct(
		matvar.F(fieldSuperpixels, matvar.NewInt32(7, 8)),
		matvar.F(fieldScale, matvar.NewDouble(0.5)),
		matvar.F(fieldChildren, matvar.NewCellArray([]int{0, 0}, nil)),
	)
	for _, opts := range [][]mat5.EncoderOption{nil, {mat5.Compressed()}} {
		f, err := Open(writeMAT(t, []variable{{DefaultTreeVar, matvar.NewCell(region)}}, opts...))
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		got, err := f.Regions()
		f.Close()
		if err != nil {
			t.Fatalf("Regions failed: %v", err)
		}
		want := []HierarchicalRegion{{Region: Region{AtomicSuperpixels: []int64{7, 8}}, Scale: 0.5}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("regions mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestFileLoadErrors(t *testing.T) {
	vars := sampleFileVars()
	vars[1] = variable{DefaultShapeVar, matvar.NewInt32(2, 3)}

	f, err := Open(writeMAT(t, vars))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	_, err = f.Load()
	var shape *matvar.InvalidShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("expected *InvalidShapeError, got %v", err)
	}
	if shape.Path != DefaultShapeVar {
		t.Errorf("path: got %q", shape.Path)
	}
	if !strings.HasPrefix(err.Error(), "loading image_shape: ") {
		t.Errorf("expected one layer of context, got %q", err)
	}
}

func TestFileLoadMissingVariable(t *testing.T) {
	f, err := Open(writeMAT(t, sampleFileVars()[:2]))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	if _, err := f.Load(); !errors.Is(err, ErrVariableNotFound) {
		t.Errorf("expected ErrVariableNotFound, got %v", err)
	}
}

func TestFileVariableNames(t *testing.T) {
	vars := []variable{
		{"tree", sampleFileVars()[0].value},
		{"shape", matvar.NewInt64(1, 2, 2)},
		{DefaultRLEVar, rle([2]int32{2, 9})},
	}
	f, err := Open(writeMAT(t, vars), WithVariableNames("tree", "shape", ""), WithStrictRLE())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	h, err := f.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(LabelMap{9, 9}, h.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStrictRLE(t *testing.T) {
	vars := sampleFileVars()
	vars[2] = variable{DefaultRLEVar, rle([2]int32{2, 1})}
	path := writeMAT(t, vars)

	f, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	h, err := f.Load()
	f.Close()
	if err != nil {
		t.Fatalf("lenient Load failed: %v", err)
	}
	if diff := cmp.Diff(LabelMap{1, 1, 0, 0, 0, 0}, h.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	f, err = Open(path, WithStrictRLE())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.Load(); !errors.Is(err, ErrRLE) {
		t.Errorf("expected ErrRLE, got %v", err)
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	notMAT := filepath.Join(dir, "not.mat")
	if err := os.WriteFile(notMAT, bytes.Repeat([]byte("x"), 200), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(notMAT); !errors.Is(err, ErrNotMAT) {
		t.Errorf("expected ErrNotMAT, got %v", err)
	}
	if _, err := Open(filepath.Join(dir, "missing.mat")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewReader(t *testing.T) {
	data, err := os.ReadFile(writeMAT(t, sampleFileVars()))
	if err != nil {
		t.Fatal(err)
	}
	f, err := NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer f.Close()

	size, err := f.ImageSize()
	if err != nil {
		t.Fatalf("ImageSize failed: %v", err)
	}
	if size != (ImageSize{Rows: 2, Cols: 3, Stride: 3}) {
		t.Errorf("got %+v", size)
	}

	cut := data[:mat5.HeaderSize+12]
	_, err = NewReader(bytes.NewReader(cut), int64(len(cut)))
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestFileTreeDepthLimit(t *testing.T) {
	tests := []struct {
		name    string
		depth   int
		deep    bool
		nesting bool
	}{
		{"within limit", 3, false, false},
		{"one level too deep", 4, true, false},
		{"beyond container nesting", 6, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Open(writeMAT(t, []variable{{DefaultTreeVar, buildTree(tt.depth, 1, 1)}}), WithMaxDepth(3))
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer f.Close()

			regions, err := f.Regions()
			if !tt.deep {
				if err != nil {
					t.Fatalf("Regions failed: %v", err)
				}
				if n, depth := Count(regions); n != tt.depth || depth != tt.depth {
					t.Errorf("expected a chain of %d, got %d regions at depth %d", tt.depth, n, depth)
				}
				return
			}
			var deep *TreeTooDeepError
			if !errors.As(err, &deep) || deep.MaxDepth != 3 {
				t.Fatalf("expected *TreeTooDeepError with limit 3, got %v", err)
			}
			if got := errors.Is(err, mat5.ErrNesting); got != tt.nesting {
				t.Errorf("errors.Is(err, ErrNesting) = %v, want %v", got, tt.nesting)
			}
		})
	}
}

func TestFileMaxInflate(t *testing.T) {
	data, err := os.ReadFile(writeMAT(t, sampleFileVars(), mat5.Compressed()))
	if err != nil {
		t.Fatal(err)
	}

	f, err := NewReader(bytes.NewReader(data), int64(len(data)), WithMaxInflate(16))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if _, err := f.Regions(); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}

	f, err = NewReader(bytes.NewReader(data), int64(len(data)), WithMaxInflate(1<<20))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if _, err := f.Load(); err != nil {
		t.Errorf("Load under a generous limit failed: %v", err)
	}
}
