package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/robert-malhotra/go-regionmap/internal/config"
	"github.com/robert-malhotra/go-regionmap/regionmap"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config desc='YAML configuration file'"`
	Verbose    bool   `cli:"name=v desc='log debug output to stderr'"`
	Color      bool   `cli:"name=color desc='color output even when not writing to a terminal'"`

	settings *config.Config
	logger   *slog.Logger

	Main *cli.Command
}

// setup loads the configuration file and builds the logger.
func (cfg *MainConfig) setup(stderr io.Writer) error {
	settings, err := config.Load(cfg.ConfigFile)
	if err != nil {
		return err
	}
	level, err := settings.LogLevel()
	if err != nil {
		return err
	}
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	cfg.settings = settings
	cfg.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// open opens a region map file with the configured options.
func (cfg *MainConfig) open(path string) (*regionmap.File, error) {
	if cfg.settings == nil {
		if err := cfg.setup(os.Stderr); err != nil {
			return nil, err
		}
	}
	opts := append(cfg.settings.Options(), regionmap.WithLogger(cfg.logger))
	f, err := regionmap.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// palette holds the formatting functions for one output stream.
type palette struct {
	name  func(a ...any) string
	class func(a ...any) string
	num   func(a ...any) string
	path  func(a ...any) string
}

func plainPalette() *palette {
	return &palette{name: fmt.Sprint, class: fmt.Sprint, num: fmt.Sprint, path: fmt.Sprint}
}

// colors returns a colored palette when forced or when w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) *palette {
	enabled := cfg.Color
	if !enabled {
		if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			enabled = true
		}
	}
	if !enabled {
		return plainPalette()
	}
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return &palette{
		name:  mk(color.FgCyan, color.Bold),
		class: mk(color.FgYellow),
		num:   mk(color.FgGreen),
		path:  mk(color.FgMagenta),
	}
}

type VarsConfig struct {
	*MainConfig

	Vars *cli.Command
}

type TreeConfig struct {
	*MainConfig
	Depth int    `cli:"name=depth desc='print at most this many levels (0 for all)'"`
	Where string `cli:"name=where desc='only print regions matching this expression'"`
	YAML  bool   `cli:"name=yaml desc='print the tree as YAML'"`

	Tree *cli.Command
}

type ShapeConfig struct {
	*MainConfig

	Shape *cli.Command
}

type LabelsConfig struct {
	*MainConfig
	Top  int  `cli:"name=top desc='print only the n most frequent labels (0 for all)'"`
	Grid bool `cli:"name=grid desc='print the label of every pixel as a matrix'"`

	Labels *cli.Command
}

// fileArg returns the single file argument of a subcommand.
func fileArg(args []string, name string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: %s requires exactly one file argument", cli.ErrUsage, name)
	}
	return args[0], nil
}
