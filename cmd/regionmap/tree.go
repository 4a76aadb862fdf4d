package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/robert-malhotra/go-regionmap/regionmap"
)

// yamlRegion is the YAML form of a region.
type yamlRegion struct {
	Path     string       `yaml:"path"`
	Scale    float32      `yaml:"scale"`
	Atomic   []int64      `yaml:"atomic,flow"`
	Children []yamlRegion `yaml:"children,omitempty"`
}

func tree(cfg *TreeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tree.Parse(cc, args)
	if err != nil {
		return err
	}
	path, err := fileArg(args, "tree")
	if err != nil {
		return err
	}
	if cfg.Depth < 0 {
		return fmt.Errorf("%w: -depth must not be negative", cli.ErrUsage)
	}
	filter, err := compileFilter(cfg.Where)
	if err != nil {
		return err
	}

	f, err := cfg.open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	regions, err := f.Regions()
	if err != nil {
		return err
	}

	if cfg.YAML {
		return printTreeYAML(cc.Out, regions, cfg.Depth, filter)
	}
	return printTree(cc.Out, cfg.colors(cc.Out), regions, cfg.Depth, filter)
}

// visit walks regions down to maxDepth (0 for all) and calls fn for each
// region the filter matches.
func visit(regions []regionmap.HierarchicalRegion, maxDepth int, filter *regionFilter, fn regionmap.WalkFunc) error {
	return regionmap.Walk(regions, func(p regionmap.Path, r *regionmap.HierarchicalRegion) error {
		ok, err := filter.match(p, r)
		if err != nil {
			return err
		}
		if ok {
			if err := fn(p, r); err != nil {
				return err
			}
		}
		if maxDepth > 0 && p.Depth() >= maxDepth {
			return regionmap.ErrSkipChildren
		}
		return nil
	})
}

func printTree(w io.Writer, pal *palette, regions []regionmap.HierarchicalRegion, maxDepth int, filter *regionFilter) error {
	err := visit(regions, maxDepth, filter, func(p regionmap.Path, r *regionmap.HierarchicalRegion) error {
		indent := ""
		if !filter.active() {
			indent = strings.Repeat("  ", p.Depth()-1)
		}
		_, err := fmt.Fprintf(w, "%s%s scale=%s size=%s children=%d\n",
			indent, pal.path(p.String()), pal.num(r.Scale), pal.num(r.Len()), len(r.Children))
		return err
	})
	if err != nil {
		return err
	}
	n, depth := regionmap.Count(regions)
	_, err = fmt.Fprintf(w, "%s regions, depth %s\n", pal.num(n), pal.num(depth))
	return err
}

func printTreeYAML(w io.Writer, regions []regionmap.HierarchicalRegion, maxDepth int, filter *regionFilter) error {
	var out []yamlRegion
	if filter.active() {
		// Matches come from any level, so they are listed flat.
		err := visit(regions, maxDepth, filter, func(p regionmap.Path, r *regionmap.HierarchicalRegion) error {
			out = append(out, yamlRegion{Path: p.String(), Scale: r.Scale, Atomic: r.AtomicSuperpixels})
			return nil
		})
		if err != nil {
			return err
		}
	} else {
		out = nestedYAML(regions, nil, maxDepth)
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func nestedYAML(regions []regionmap.HierarchicalRegion, parent regionmap.Path, maxDepth int) []yamlRegion {
	out := make([]yamlRegion, len(regions))
	for i := range regions {
		p := append(append(regionmap.Path{}, parent...), i)
		out[i] = yamlRegion{
			Path:   p.String(),
			Scale:  regions[i].Scale,
			Atomic: regions[i].AtomicSuperpixels,
		}
		if maxDepth == 0 || p.Depth() < maxDepth {
			out[i].Children = nestedYAML(regions[i].Children, p, maxDepth)
		}
	}
	return out
}
