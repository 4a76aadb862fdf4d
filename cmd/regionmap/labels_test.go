package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/robert-malhotra/go-regionmap/regionmap"
)

// gridRows strips the matrix brackets and splits each row into cells.
func gridRows(s string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		line = strings.Map(func(r rune) rune {
			switch r {
			case '⎡', '⎤', '⎢', '⎥', '⎣', '⎦', '[', ']':
				return ' '
			}
			return r
		}, line)
		rows = append(rows, strings.Fields(line))
	}
	return rows
}

func TestPrintGrid(t *testing.T) {
	tests := []struct {
		name   string
		labels regionmap.LabelMap
		size   regionmap.ImageSize
		want   [][]string
	}{
		{
			name:   "two rows",
			labels: regionmap.LabelMap{1, 1, 2, 2, 2, 30},
			size:   regionmap.ImageSize{Rows: 2, Cols: 3, Stride: 3},
			want:   [][]string{{"1", "1", "2"}, {"2", "2", "30"}},
		},
		{
			name:   "one row",
			labels: regionmap.LabelMap{4, 5},
			size:   regionmap.ImageSize{Rows: 1, Cols: 2, Stride: 2},
			want:   [][]string{{"4", "5"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := printGrid(&buf, tt.labels, tt.size); err != nil {
				t.Fatalf("printGrid: %v", err)
			}
			if diff := cmp.Diff(tt.want, gridRows(buf.String())); diff != "" {
				t.Errorf("grid mismatch (-want +got):\n%s\noutput:\n%s", diff, buf.String())
			}
		})
	}

	var buf bytes.Buffer
	if err := printGrid(&buf, nil, regionmap.ImageSize{Rows: 0, Cols: 4}); err != nil {
		t.Fatalf("empty image: %v", err)
	}
	if buf.String() != "empty 0x4 image\n" {
		t.Errorf("empty image: got %q", buf.String())
	}

	if err := printGrid(&buf, regionmap.LabelMap{1}, regionmap.ImageSize{Rows: 2, Cols: 2}); err == nil {
		t.Error("expected error for a short label map")
	}
}

func TestPrintHistogram(t *testing.T) {
	var buf bytes.Buffer
	lm := regionmap.LabelMap{1, 1, 2, 2, 2, 3}
	if err := printHistogram(&buf, plainPalette(), lm, regionmap.ImageSize{Rows: 2, Cols: 3}, 2); err != nil {
		t.Fatalf("printHistogram: %v", err)
	}
	want := "2x3 pixels, 3 labels\n" +
		"         2 3\n" +
		"         1 2\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}
