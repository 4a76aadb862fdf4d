package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func shape(cfg *ShapeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Shape.Parse(cc, args)
	if err != nil {
		return err
	}
	path, err := fileArg(args, "shape")
	if err != nil {
		return err
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
	pal := cfg.colors(cc.Out)
	_, err = fmt.Fprintf(cc.Out, "rows %s\ncols %s\nstride %s\npixels %s\n",
		pal.num(size.Rows), pal.num(size.Cols), pal.num(size.Stride), pal.num(size.Pixels()))
	return err
}
