// Command regionmap inspects multi-scale region hierarchies stored in MAT-files.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
