package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/robert-malhotra/go-regionmap/matvar"
)

func vars(cfg *VarsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Vars.Parse(cc, args)
	if err != nil {
		return err
	}
	path, err := fileArg(args, "vars")
	if err != nil {
		return err
	}
	f, err := cfg.open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pal := cfg.colors(cc.Out)
	for _, v := range f.Variables() {
		line := fmt.Sprintf("%-20s %-8s %s", pal.name(v.Name), pal.class(v.Class), matvar.FormatDims(v.Dims))
		if v.Compressed {
			line += " (compressed)"
		}
		if _, err := fmt.Fprintln(cc.Out, line); err != nil {
			return err
		}
	}
	return nil
}
