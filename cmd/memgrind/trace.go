package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joshuapare/firstfit/arena"
	"github.com/joshuapare/firstfit/arena/printer"
	"github.com/joshuapare/firstfit/internal/logger"
	"github.com/spf13/cobra"
)

var (
	traceCapacity int
	traceMap      bool
	traceStats    bool
	traceStrict   bool
)

func init() {
	cmd := newTraceCmd()
	cmd.Flags().IntVar(&traceCapacity, "capacity", arena.DefaultCapacity, "Arena capacity in bytes")
	cmd.Flags().BoolVar(&traceMap, "map", false, "Draw an occupancy map after each step")
	cmd.Flags().BoolVar(&traceStats, "stats", false, "Print allocator statistics after each step")
	cmd.Flags().BoolVar(&traceStrict, "strict", false, "Stop at the first failing step")
	rootCmd.AddCommand(cmd)
}

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <step>...",
		Short: "Replay an alloc/free script and dump the block chain",
		Long: `The trace command executes a scripted sequence of allocations and
frees and prints the block chain after every step.

Steps:
  aN   allocate N bytes
  fI   free the I-th allocation (0-based, in script order)

Example:
  memgrind trace a100 a100 f0 a99 f1 a100
  memgrind trace a4092 a1 --stats
  memgrind trace a10 f0 f0 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(args)
		},
	}
	return cmd
}

type stepOp byte

const (
	opAlloc stepOp = 'a'
	opFree  stepOp = 'f'
)

// step is one parsed trace instruction.
type step struct {
	raw string
	op  stepOp
	n   int // size for alloc, allocation index for free
}

// parseSteps validates the whole script before anything runs.
func parseSteps(args []string) ([]step, error) {
	steps := make([]step, 0, len(args))
	allocs := 0
	for _, raw := range args {
		if len(raw) < 2 {
			return nil, fmt.Errorf("invalid step %q: want aN or fI", raw)
		}
		n, err := strconv.Atoi(raw[1:])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid step %q: %q is not a non-negative number", raw, raw[1:])
		}

		s := step{raw: raw, op: stepOp(raw[0]), n: n}
		switch s.op {
		case opAlloc:
			allocs++
		case opFree:
			if n >= allocs {
				return nil, fmt.Errorf("invalid step %q: only %d allocation(s) precede it", raw, allocs)
			}
		default:
			return nil, fmt.Errorf("invalid step %q: unknown op %q", raw, raw[0])
		}
		steps = append(steps, s)
	}
	return steps, nil
}

// traceStep is the JSON view of one executed step.
type traceStep struct {
	Step  string          `json:"step"`
	Ref   string          `json:"ref,omitempty"`
	Error string          `json:"error,omitempty"`
	State json.RawMessage `json:"state"`
}

func runTrace(args []string) error {
	steps, err := parseSteps(args)
	if err != nil {
		return err
	}

	a, err := arena.New(&arena.Config{Capacity: traceCapacity, TrackCallers: verbose})
	if err != nil {
		return err
	}
	defer a.Close()

	opts := printer.DefaultOptions()
	opts.ShowMap = traceMap
	opts.ShowStats = traceStats
	if jsonOut {
		opts.Format = printer.FormatJSON
	}

	var (
		refs    []arena.Ref
		out     []traceStep
		failure error
		failed  int
	)
	for _, s := range steps {
		var (
			ref   = arena.NilRef
			opErr error
		)
		switch s.op {
		case opAlloc:
			ref, _, opErr = a.Alloc(s.n)
			refs = append(refs, ref)
		case opFree:
			ref = refs[s.n]
			opErr = a.Free(ref)
		}
		logger.Debug("trace step", "step", s.raw, "ref", ref.String(), "error", opErr)

		if opErr != nil {
			failed++
			failure = errors.Join(failure, fmt.Errorf("step %s: %w", s.raw, opErr))
		}

		if jsonOut {
			var buf bytes.Buffer
			if err := printer.New(a, &buf, opts).Print(); err != nil {
				return err
			}
			ts := traceStep{Step: s.raw, State: json.RawMessage(bytes.TrimSpace(buf.Bytes()))}
			if ref != arena.NilRef {
				ts.Ref = ref.String()
			}
			if opErr != nil {
				ts.Error = opErr.Error()
			}
			out = append(out, ts)
		} else if !quiet {
			label := s.raw
			switch {
			case opErr != nil:
				label += " -> " + opErr.Error()
			case s.op == opAlloc:
				label += " -> " + ref.String()
			}
			if err := printer.New(a, os.Stdout, opts).PrintLabeled(label); err != nil {
				return err
			}
		}

		if opErr != nil && traceStrict {
			break
		}
	}

	if err := a.Verify(); err != nil {
		return fmt.Errorf("arena inconsistent after trace: %w", err)
	}

	if jsonOut {
		if err := printJSON(out); err != nil {
			return err
		}
	}

	if traceStrict {
		return failure
	}
	if failed > 0 && !jsonOut {
		printInfo("%d of %d step(s) failed\n", failed, len(steps))
		printVerbose("%v\n", failure)
	}
	return nil
}
