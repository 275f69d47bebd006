package arena

import "github.com/joshuapare/firstfit/internal/format"

// Stats is a snapshot of allocator counters plus the current chain shape.
type Stats struct {
	Capacity int

	// Call counters since New or the last Reset.
	AllocCalls       int // Alloc() calls, failed ones included
	FreeCalls        int // Free() calls, failed ones included
	Splits           int // allocations that split a free block
	Absorbs          int // allocations that took a whole free block
	CoalesceBackward int // frees merged into a free predecessor
	CoalesceForward  int // frees that absorbed a free successor
	HangingReclaims  int // frees that took hanging bytes from a used predecessor
	ReclaimedBytes   int // total hanging bytes reclaimed
	OutOfMemory      int // Alloc() calls that found no block
	FailedFrees      int // Free() calls rejected by validation

	// Chain shape, computed by walking the headers.
	Blocks       int
	UsedBlocks   int
	FreeBlocks   int
	UsedBytes    int // payload bytes of used blocks, hanging excluded
	HangingBytes int // hanging bytes held by used blocks
	FreeBytes    int // payload bytes of free blocks
	MetaBytes    int // header bytes across the chain
	LargestFree  int // largest free payload, the biggest request that can succeed
}

// Utilization returns the ratio of used payload bytes to capacity (0.0 to 1.0).
func (s Stats) Utilization() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.UsedBytes) / float64(s.Capacity)
}

// Stats returns counters and the current chain shape.
func (a *Arena) Stats() Stats {
	s := Stats{
		Capacity:         a.capacity,
		AllocCalls:       a.stats.AllocCalls,
		FreeCalls:        a.stats.FreeCalls,
		Splits:           a.stats.Splits,
		Absorbs:          a.stats.Absorbs,
		CoalesceBackward: a.stats.CoalesceBackward,
		CoalesceForward:  a.stats.CoalesceForward,
		HangingReclaims:  a.stats.HangingReclaims,
		ReclaimedBytes:   a.stats.ReclaimedBytes,
		OutOfMemory:      a.stats.OutOfMemory,
		FailedFrees:      a.stats.FailedFrees,
	}

	for _, b := range a.Blocks() {
		s.Blocks++
		s.MetaBytes += format.MetaSize
		if b.Used {
			s.UsedBlocks++
			s.UsedBytes += b.Size - b.Hanging
			s.HangingBytes += b.Hanging
			continue
		}
		s.FreeBlocks++
		s.FreeBytes += b.Size
		s.LargestFree = max(s.LargestFree, b.Size)
	}
	return s
}
