package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wildstyl3r/brentq/internal/config"
	"github.com/wildstyl3r/brentq/internal/objective"
	"github.com/wildstyl3r/brentq/internal/solver"
	"github.com/wildstyl3r/brentq/internal/utils"
)

var summaryColumns = []string{"problem", "f(x)", "lower", "upper", "root", "f(root)", "iterations", "status"}
var traceColumns = []string{"k", "x", "f(x)", "x0", "x1", "step"}

type outcome struct {
	name     string
	params   config.ProblemParameters
	result   solver.Result
	residual float64
	trace    utils.CSV
	err      error
}

func ff(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func summaryRow(out *outcome) []string {
	root, residual, status := ff(out.result.Root), ff(out.residual), "ok"
	if out.err != nil {
		root, residual, status = "", "", out.err.Error()
	}
	return []string{
		out.name,
		out.params.Function,
		ff(out.params.Lower),
		ff(out.params.Upper),
		root,
		residual,
		strconv.Itoa(out.result.Iterations),
		status,
	}
}

func solveProblem(name string, p config.ProblemParameters, saveTrace, verbose bool) *outcome {
	out := &outcome{name: name, params: p}
	f, err := objective.Parse(p.Function)
	if err != nil {
		out.err = err
		return out
	}

	var onIter func(solver.Iter) error
	if saveTrace || verbose {
		onIter = func(it solver.Iter) error {
			step := "interpolation"
			if it.Bisected {
				step = "bisection"
			}
			if verbose {
				fmt.Printf("%s step %d (%s): x = %v, f(x) = %v, bracket [%v, %v]\n",
					name, it.K, step, it.X, it.FX, it.X0, it.X1)
			}
			if saveTrace {
				out.trace = append(out.trace, []string{
					strconv.Itoa(it.K), ff(it.X), ff(it.FX), ff(it.X0), ff(it.X1), step,
				})
			}
			return nil
		}
	}

	out.result, out.err = solver.Brent(f, p.Lower, p.Upper, p.MaxIterations, p.Tolerance, onIter)
	if out.err == nil {
		out.residual, out.err = f.Eval(out.result.Root)
	}
	return out
}

func main() {
	var configFileNamePointer = flag.String("input", "problems", "problem set in toml format")
	var forceTrace = flag.Bool("trace", false, "save a per-iteration trace for every problem")
	var verbose = flag.Bool("v", false, "print every iteration")
	flag.Parse()

	startTime := time.Now()
	runID := uuid.NewString()
	fmt.Printf("Current time: %s\nRun id: %s\n", startTime.UTC().Format(time.UnixDate), runID)

	cfg, skipped, err := config.Load(strings.TrimSuffix(*configFileNamePointer, ".toml"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, name := range skipped {
		fmt.Println("Problem " + name + " lacks key parameters (Function, Lower or Upper)")
	}

	outputPath := ""
	if cfg.OutputDir != "" && cfg.OutputDir != "." {
		os.MkdirAll(cfg.OutputDir, 0750)
		outputPath += cfg.OutputDir + "/"
	}

	var chanWg sync.WaitGroup
	dataflow := make(chan *outcome)
	for name, problem := range cfg.Problems {
		name, problem := name, problem
		chanWg.Add(1)
		//worker
		go func() {
			defer chanWg.Done()
			dataflow <- solveProblem(name, problem, problem.Trace || *forceTrace, *verbose)
		}()
	}

	// chan killer
	go func() {
		chanWg.Wait()
		close(dataflow)
	}()

	var summary utils.CSV
	var names []string
	var iterations []int
	counter := 0
	fmt.Printf("\rDone:[0/%d]", len(cfg.Problems))
	for out := range dataflow {
		counter++
		fmt.Printf("\rDone:[%d/%d]", counter, len(cfg.Problems))

		if out.err == nil {
			names = append(names, out.name)
			iterations = append(iterations, out.result.Iterations)
		}
		summary = append(summary, summaryRow(out))

		if len(out.trace) > 0 {
			if err := utils.WriteAsCSV(out.trace, cfg.MakeDir, outputPath, "trace", out.name, traceColumns); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
	println()

	if err := utils.WriteAsCSV(summary, false, outputPath, "", runID[:8]+"_summary", summaryColumns); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("Summary saved")

	if len(iterations) > 0 {
		hardest := utils.Argmax(iterations)
		fmt.Printf("Mean iterations: %.1f, hardest problem: %s (%d)\n",
			utils.Average(iterations), names[hardest], iterations[hardest])
	}
	fmt.Printf("Elapsed time: %v\n", time.Since(startTime))
}
