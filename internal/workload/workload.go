// Package workload implements the memgrind stress workloads A through E
// and a timer that runs them in batches against a fresh arena.
package workload

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/joshuapare/firstfit/arena"
)

// ErrCheckFailed is wrapped by every workload self-check that does not hold.
var ErrCheckFailed = errors.New("workload: check failed")

// Workload is one named allocation pattern. Run must leave the arena with
// no live allocations.
type Workload struct {
	Name        string
	Description string

	// MinCapacity is the smallest arena the workload's checks hold for.
	MinCapacity int

	Run func(a *arena.Arena, rng *rand.Rand) error
}

const batch = 120

var all = []Workload{
	{Name: "A", Description: "120 x (alloc 1 byte, free it)", MinCapacity: arena.MinCapacity, Run: runA},
	{Name: "B", Description: "120 x alloc 1 byte, then free all", MinCapacity: batch * (1 + arena.MetaSize), Run: runB},
	{Name: "C", Description: "120 x alloc 1 byte randomly interleaved with frees", MinCapacity: 2 * batch * (1 + arena.MetaSize), Run: runC},
	{Name: "D", Description: "saturation, near-full failure and first-fit reuse", MinCapacity: 128, Run: runD},
	{Name: "E", Description: "coalescing, 40-block fragmentation and hanging-byte reuse", MinCapacity: 40 * (100 + arena.MetaSize), Run: runE},
}

// All returns the workloads in run order.
func All() []Workload {
	return append([]Workload(nil), all...)
}

// Lookup finds a workload by case-insensitive name.
func Lookup(name string) (Workload, bool) {
	for _, w := range all {
		if strings.EqualFold(w.Name, name) {
			return w, true
		}
	}
	return Workload{}, false
}

func checkf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCheckFailed, fmt.Sprintf(format, args...))
}

func freeAll(a *arena.Arena, refs []arena.Ref) error {
	for _, r := range refs {
		if err := a.Free(r); err != nil {
			return err
		}
	}
	return nil
}

func runA(a *arena.Arena, _ *rand.Rand) error {
	for range batch {
		ref, _, err := a.Alloc(1)
		if err != nil {
			return err
		}
		if err := a.Free(ref); err != nil {
			return err
		}
	}
	return nil
}

func runB(a *arena.Arena, _ *rand.Rand) error {
	refs := make([]arena.Ref, 0, batch)
	for range batch {
		ref, _, err := a.Alloc(1)
		if err != nil {
			return err
		}
		refs = append(refs, ref)
	}
	return freeAll(a, refs)
}

// runC interleaves allocations and frees at random, freeing in allocation
// order, until 120 allocations have been made, then frees the rest.
func runC(a *arena.Arena, rng *rand.Rand) error {
	refs := make([]arena.Ref, 0, batch)
	freed := 0
	for len(refs) < batch {
		if len(refs) > freed && rng.Intn(2) == 0 {
			if err := a.Free(refs[freed]); err != nil {
				return err
			}
			freed++
			continue
		}
		ref, _, err := a.Alloc(1)
		if err != nil {
			return err
		}
		refs = append(refs, ref)
	}
	return freeAll(a, refs[freed:])
}

func runD(a *arena.Arena, _ *rand.Rand) error {
	// Saturate with 50-byte blocks. Each costs 50+MetaSize bytes.
	const blockSize = 50
	want := a.Capacity() / (blockSize + arena.MetaSize)
	var blk []arena.Ref
	for {
		ref, _, err := a.Alloc(blockSize)
		if errors.Is(err, arena.ErrOutOfMemory) {
			break
		}
		if err != nil {
			return err
		}
		blk = append(blk, ref)
	}
	if len(blk) != want {
		return checkf("saturate: got %d blocks of %d bytes, want %d", len(blk), blockSize, want)
	}
	for i := len(blk) - 1; i >= 0; i-- {
		if err := a.Free(blk[i]); err != nil {
			return err
		}
	}

	// Leave exactly MetaSize bytes: too small for a 1-byte block.
	big, _, err := a.Alloc(a.Capacity() - 2*arena.MetaSize)
	if err != nil {
		return err
	}
	if _, _, err := a.Alloc(1); !errors.Is(err, arena.ErrOutOfMemory) {
		return checkf("near-full: alloc(1) returned %v, want out of memory", err)
	}
	if err := a.Free(big); err != nil {
		return err
	}

	// Three separated holes of 30, 20 and 10 bytes.
	var arr []arena.Ref
	for _, n := range []int{30, 1, 20, 1, 10} {
		ref, _, err := a.Alloc(n)
		if err != nil {
			return err
		}
		arr = append(arr, ref)
	}
	for _, i := range []int{0, 2, 4} {
		if err := a.Free(arr[i]); err != nil {
			return err
		}
	}
	x, _, err := a.Alloc(10)
	if err != nil {
		return err
	}
	y, _, err := a.Alloc(20)
	if err != nil {
		return err
	}
	if x != arr[0] {
		return checkf("first fit: alloc(10) at %s, want %s", x, arr[0])
	}
	if y != arr[2] {
		return checkf("first fit: alloc(20) at %s, want %s", y, arr[2])
	}
	return freeAll(a, []arena.Ref{x, y, arr[1], arr[3]})
}

func runE(a *arena.Arena, _ *rand.Rand) error {
	// Three neighbours freed edges first must coalesce into one block.
	frag := make([]arena.Ref, 3)
	for i := range frag {
		ref, _, err := a.Alloc(100)
		if err != nil {
			return err
		}
		frag[i] = ref
	}
	if err := freeAll(a, []arena.Ref{frag[0], frag[2], frag[1]}); err != nil {
		return err
	}
	ptr, _, err := a.Alloc(300)
	if err != nil {
		return err
	}
	if ptr != frag[0] {
		return checkf("coalesce: alloc(300) at %s, want %s", ptr, frag[0])
	}
	if err := a.Free(ptr); err != nil {
		return err
	}

	// Forty blocks freed evens then odds must restore the whole arena.
	frag2 := make([]arena.Ref, 40)
	for i := range frag2 {
		ref, _, err := a.Alloc(100)
		if err != nil {
			return err
		}
		frag2[i] = ref
	}
	for start := range 2 {
		for i := start; i < len(frag2); i += 2 {
			if err := a.Free(frag2[i]); err != nil {
				return err
			}
		}
	}
	whole := a.Capacity() - arena.MetaSize
	ptr, _, err = a.Alloc(whole)
	if err != nil {
		return fmt.Errorf("%w: fragmentation: alloc(%d): %w", ErrCheckFailed, whole, err)
	}
	if err := a.Free(ptr); err != nil {
		return err
	}

	// A 1-byte remainder hangs off hang[0] and is reclaimed by freeing hang[1].
	h0, _, err := a.Alloc(100)
	if err != nil {
		return err
	}
	h1, _, err := a.Alloc(100)
	if err != nil {
		return err
	}
	if d := h1 - h0; d != 100+arena.MetaSize {
		return checkf("hanging: initial distance %d, want %d", d, 100+arena.MetaSize)
	}
	if err := a.Free(h0); err != nil {
		return err
	}
	if h0, _, err = a.Alloc(99); err != nil {
		return err
	}
	if err := a.Free(h1); err != nil {
		return err
	}
	if h1, _, err = a.Alloc(100); err != nil {
		return err
	}
	if d := h1 - h0; d != 99+arena.MetaSize {
		return checkf("hanging: distance after reclaim %d, want %d", d, 99+arena.MetaSize)
	}
	return freeAll(a, []arena.Ref{h0, h1})
}
