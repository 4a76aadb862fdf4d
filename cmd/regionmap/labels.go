package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"gonum.org/v1/gonum/mat"

	"github.com/robert-malhotra/go-regionmap/regionmap"
)

func labels(cfg *LabelsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Labels.Parse(cc, args)
	if err != nil {
		return err
	}
	path, err := fileArg(args, "labels")
	if err != nil {
		return err
	}
	if cfg.Top < 0 {
		return fmt.Errorf("%w: -top must not be negative", cli.ErrUsage)
	}
	f, err := cfg.open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	size, err := f.ImageSize()
	if err != nil {
		return err
	}
	lm, err := f.Labels(size)
	if err != nil {
		return err
	}

	if cfg.Grid {
		return printGrid(cc.Out, lm, size)
	}
	return printHistogram(cc.Out, cfg.colors(cc.Out), lm, size, cfg.Top)
}

func printHistogram(w io.Writer, pal *palette, lm regionmap.LabelMap, size regionmap.ImageSize, top int) error {
	hist := lm.Histogram()
	if _, err := fmt.Fprintf(w, "%sx%s pixels, %s labels\n", pal.num(size.Rows), pal.num(size.Cols), pal.num(len(hist))); err != nil {
		return err
	}
	if top > 0 && top < len(hist) {
		hist = hist[:top]
	}
	for _, c := range hist {
		if _, err := fmt.Fprintf(w, "%10d %s\n", c.Label, pal.num(c.Pixels)); err != nil {
			return err
		}
	}
	return nil
}

// printGrid writes the label map as a rows x cols matrix.
func printGrid(w io.Writer, lm regionmap.LabelMap, size regionmap.ImageSize) error {
	if size.Pixels() == 0 {
		_, err := fmt.Fprintf(w, "empty %dx%d image\n", size.Rows, size.Cols)
		return err
	}
	dense, err := lm.Dense(size)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%v\n", mat.Formatted(dense, mat.Squeeze()))
	return err
}
