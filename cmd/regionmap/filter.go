package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/robert-malhotra/go-regionmap/regionmap"
)

// nodeEnv is the environment a -where expression is evaluated in.
type nodeEnv struct {
	Depth    int     `expr:"depth"`
	Scale    float64 `expr:"scale"`
	Size     int     `expr:"size"`
	Children int     `expr:"children"`
	Leaf     bool    `expr:"leaf"`
	Path     string  `expr:"path"`
}

func newNodeEnv(p regionmap.Path, r *regionmap.HierarchicalRegion) nodeEnv {
	return nodeEnv{
		Depth:    p.Depth(),
		Scale:    float64(r.Scale),
		Size:     r.Len(),
		Children: len(r.Children),
		Leaf:     r.IsLeaf(),
		Path:     p.String(),
	}
}

// regionFilter selects regions by a boolean expression.
type regionFilter struct {
	src string
	prg *vm.Program
}

// compileFilter compiles src. An empty src matches every region.
func compileFilter(src string) (*regionFilter, error) {
	if src == "" {
		return &regionFilter{}, nil
	}
	prg, err := expr.Compile(src, expr.Env(nodeEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", src, err)
	}
	return &regionFilter{src: src, prg: prg}, nil
}

func (f *regionFilter) active() bool {
	return f.prg != nil
}

func (f *regionFilter) match(p regionmap.Path, r *regionmap.HierarchicalRegion) (bool, error) {
	if f.prg == nil {
		return true, nil
	}
	out, err := expr.Run(f.prg, newNodeEnv(p, r))
	if err != nil {
		return false, fmt.Errorf("evaluating filter %q at %s: %w", f.src, p, err)
	}
	return out.(bool), nil
}
