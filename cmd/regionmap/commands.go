package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "regionmap").
		WithSynopsis("regionmap [-config file] [-v] command [opts] file").
		WithDescription("regionmap inspects region hierarchies stored in MAT-files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return regionmapMain(cfg, cc, args)
		}).
		WithSubs(
			VarsCommand(cfg),
			TreeCommand(cfg),
			ShapeCommand(cfg),
			LabelsCommand(cfg))
}

func VarsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &VarsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Vars, "vars").
		WithAliases("v").
		WithSynopsis("vars <file>").
		WithDescription("list the top-level variables of a MAT-file").
		WithRun(func(cc *cli.Context, args []string) error {
			return vars(cfg, cc, args)
		})
}

func TreeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TreeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Tree, "tree").
		WithAliases("t").
		WithSynopsis("tree [-depth n] [-where expr] [-yaml] <file>").
		WithDescription("print the region tree; -where filters regions with an expression over depth, scale, size, children, leaf and path").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tree(cfg, cc, args)
		})
}

func ShapeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ShapeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Shape, "shape").
		WithAliases("s").
		WithSynopsis("shape <file>").
		WithDescription("print the image rows, cols and stride").
		WithRun(func(cc *cli.Context, args []string) error {
			return shape(cfg, cc, args)
		})
}

func LabelsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LabelsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Labels, "labels").
		WithAliases("l").
		WithSynopsis("labels [-top n] [-grid] <file>").
		WithDescription("decode the atomic label map and print pixel counts per label").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return labels(cfg, cc, args)
		})
}
