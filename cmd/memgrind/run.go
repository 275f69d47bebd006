package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joshuapare/firstfit/arena"
	"github.com/joshuapare/firstfit/internal/workload"
	"github.com/spf13/cobra"
)

var (
	runIterations int
	runCapacity   int
	runMmap       bool
	runVerify     bool
	runSeed       int64
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().IntVarP(&runIterations, "iterations", "n", workload.DefaultIterations, "Runs per workload")
	cmd.Flags().IntVar(&runCapacity, "capacity", arena.DefaultCapacity, "Arena capacity in bytes")
	cmd.Flags().BoolVar(&runMmap, "mmap", false, "Back the arena with anonymous mmap memory")
	cmd.Flags().BoolVar(&runVerify, "verify", false, "Check invariants and leaks after every run")
	cmd.Flags().Int64Var(&runSeed, "seed", 0, "Seed for workload C (0 = time-based)")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [workload...]",
		Short: "Time the memgrind workloads",
		Long: `The run command executes workloads A-E (or the ones named) in batches
against a fresh arena and prints the average time per run.

Example:
  memgrind run
  memgrind run A C --iterations 500
  memgrind run E --capacity 8192 --verify
  memgrind run --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkloads(cmd.Context(), args)
		},
	}
	return cmd
}

// workloadResult is the JSON view of one batch.
type workloadResult struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Iterations  int     `json:"iterations"`
	AverageUS   float64 `json:"average_us"`
	MinUS       float64 `json:"min_us"`
	MaxUS       float64 `json:"max_us"`
	Allocs      int     `json:"allocs"`
	Frees       int     `json:"frees"`
}

func runWorkloads(ctx context.Context, names []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := workload.Options{
		Iterations: runIterations,
		Capacity:   runCapacity,
		Verify:     runVerify,
		Seed:       runSeed,
	}
	if runMmap {
		opts.Backing = arena.BackingMmap
	}

	printVerbose("Running %d iteration(s) per workload, capacity %d, backing %s\n",
		opts.Iterations, opts.Capacity, opts.Backing)

	results, err := workload.RunAll(ctx, names, opts)
	if err != nil {
		return err
	}

	if jsonOut {
		out := make([]workloadResult, 0, len(results))
		for _, r := range results {
			w, _ := workload.Lookup(r.Name)
			out = append(out, workloadResult{
				Name:        r.Name,
				Description: w.Description,
				Iterations:  r.Iterations,
				AverageUS:   float64(r.Average().Nanoseconds()) / 1e3,
				MinUS:       float64(r.Min.Nanoseconds()) / 1e3,
				MaxUS:       float64(r.Max.Nanoseconds()) / 1e3,
				Allocs:      r.Stats.AllocCalls,
				Frees:       r.Stats.FreeCalls,
			})
		}
		return printJSON(out)
	}

	if quiet {
		return nil
	}
	if err := workload.WriteReport(os.Stdout, results); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
