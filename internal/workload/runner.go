package workload

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/joshuapare/firstfit/arena"
	"github.com/joshuapare/firstfit/internal/logger"
	"github.com/joshuapare/firstfit/internal/mmfile"
)

// DefaultIterations is how many times each workload runs per batch.
const DefaultIterations = 50

// Options configures a batch run.
type Options struct {
	// Iterations is the number of runs per workload.
	// Default: 50
	Iterations int

	// Capacity is the arena size used for every workload.
	// Default: arena.DefaultCapacity
	Capacity int

	// Backing selects heap or mmap arena memory.
	// Default: arena.BackingHeap
	Backing arena.Backing

	// Verify checks chain invariants and leaks after every iteration.
	// Default: false
	Verify bool

	// Seed drives workload C. Zero seeds from the clock.
	// Default: 0
	Seed int64
}

// Result is the timing and final arena state of one workload batch.
type Result struct {
	Name       string
	Iterations int
	Total      time.Duration
	Min        time.Duration
	Max        time.Duration
	Stats      arena.Stats
}

// Average returns the mean duration of one iteration.
func (r Result) Average() time.Duration {
	if r.Iterations == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Iterations)
}

func (o Options) withDefaults() Options {
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.Capacity == 0 {
		o.Capacity = arena.DefaultCapacity
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return o
}

// Run executes w opts.Iterations times against one arena, mirroring a
// process that keeps its static heap between runs.
func Run(ctx context.Context, w Workload, opts Options) (Result, error) {
	opts = opts.withDefaults()

	if opts.Capacity < w.MinCapacity {
		return Result{}, fmt.Errorf("workload %s needs capacity >= %d, got %d", w.Name, w.MinCapacity, opts.Capacity)
	}

	if opts.Backing == arena.BackingMmap && !mmfile.Supported() {
		logger.Warn("mmap backing unavailable, using heap", "name", w.Name)
	}

	a, err := arena.New(&arena.Config{Capacity: opts.Capacity, Backing: opts.Backing})
	if err != nil {
		return Result{}, err
	}
	defer a.Close()

	rng := rand.New(rand.NewSource(opts.Seed))
	res := Result{Name: w.Name}

	logger.Debug("workload start", "name", w.Name, "iterations", opts.Iterations,
		"capacity", opts.Capacity, "backing", opts.Backing.String(), "seed", opts.Seed)

	for i := range opts.Iterations {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		start := time.Now()
		err := w.Run(a, rng)
		elapsed := time.Since(start)
		if err != nil {
			logger.Error("workload failed", "name", w.Name, "iteration", i, "error", err)
			return res, fmt.Errorf("workload %s iteration %d: %w", w.Name, i, err)
		}

		if opts.Verify {
			if err := checkClean(a); err != nil {
				logger.Error("workload left arena inconsistent", "name", w.Name, "iteration", i, "error", err)
				return res, fmt.Errorf("workload %s iteration %d: %w", w.Name, i, err)
			}
		}

		res.Iterations++
		res.Total += elapsed
		if res.Iterations == 1 || elapsed < res.Min {
			res.Min = elapsed
		}
		res.Max = max(res.Max, elapsed)
	}

	res.Stats = a.Stats()
	logger.Info("workload done", "name", w.Name, "iterations", res.Iterations,
		"avg", res.Average(), "allocs", res.Stats.AllocCalls, "frees", res.Stats.FreeCalls)
	return res, nil
}

// RunAll runs the named workloads in order; no names means all of them.
func RunAll(ctx context.Context, names []string, opts Options) ([]Result, error) {
	todo := all
	if len(names) > 0 {
		todo = make([]Workload, 0, len(names))
		for _, n := range names {
			w, ok := Lookup(n)
			if !ok {
				return nil, fmt.Errorf("unknown workload %q", n)
			}
			todo = append(todo, w)
		}
	}

	opts = opts.withDefaults()
	results := make([]Result, 0, len(todo))
	for _, w := range todo {
		res, err := Run(ctx, w, opts)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// checkClean verifies invariants and that no allocation outlived the run.
func checkClean(a *arena.Arena) error {
	if err := a.Verify(); err != nil {
		return err
	}
	if s := a.Stats(); s.UsedBlocks != 0 {
		return fmt.Errorf("%w: %d blocks still allocated", ErrCheckFailed, s.UsedBlocks)
	}
	return nil
}
