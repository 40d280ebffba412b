// Command tetmesh is the tetrahedral mesh generator's CLI entry point,
// invoked as:
//
//	tetmesh <switches> <input_file>
//
// following the classic TetGen invocation convention (original_source's
// cli.py): switches is a string like "pq1.414a0.1" (see behavior.Parse),
// and input_file is a .node or .poly file. Output is written alongside
// the input as <basename>.1.node, .1.ele, and (if requested) .1.face /
// .1.edge. Exit codes are 0 success, 1 fatal error, 2 cancelled
// (spec.md §6).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/sunpia/tetgen/behavior"
	"github.com/sunpia/tetgen/meshlog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: tetmesh <switches> <input_file>")
		return 1
	}
	switches, inputPath := args[0], args[1]

	b, err := behavior.Parse(switches)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log := meshlog.Default("tetmesh")
	log.SetQuiet(b.Quiet)
	if b.Verbose {
		log.Info("switches: %s", b.String())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	in, err := readInput(inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log.Info("read %d points from %s", len(in.points), inputPath)
	if len(in.facets) > 0 {
		log.Info("read %d facets", len(in.facets))
	}

	res, err := tetrahedralize(ctx, in, b, log)
	if err != nil {
		var merr *meshlog.Error
		if errors.As(err, &merr) && merr.Kind == meshlog.Cancelled {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := writeOutputs(inputPath, b, res, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
