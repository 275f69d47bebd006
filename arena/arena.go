package arena

import (
	"fmt"
	"runtime"

	"github.com/joshuapare/firstfit/arena/verify"
	"github.com/joshuapare/firstfit/internal/format"
	"github.com/joshuapare/firstfit/internal/mmfile"
)

// Arena is a first-fit allocator over one fixed-capacity buffer.
// The zero value is not usable; construct with New.
type Arena struct {
	buf      []byte
	capacity int
	backing  Backing

	// initialized stays false until the first Alloc lays down the
	// initial free block. Until then buf is all zeroes.
	initialized bool

	trackCallers bool
	callerSkip   int // extra frames between the user and Alloc/Free (Safe adds one)

	release func() error

	stats allocatorStats
}

// allocatorStats holds counters updated by Alloc and Free.
type allocatorStats struct {
	AllocCalls       int
	FreeCalls        int
	Splits           int
	Absorbs          int
	CoalesceBackward int
	CoalesceForward  int
	HangingReclaims  int
	ReclaimedBytes   int
	OutOfMemory      int
	FailedFrees      int
}

// New creates an arena from cfg. A nil cfg uses DefaultConfig and a zero
// Capacity is replaced by DefaultCapacity.
func New(cfg *Config) (*Arena, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	c := *cfg
	if c.Capacity == 0 {
		c.Capacity = DefaultCapacity
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	a := &Arena{
		capacity:     c.Capacity,
		backing:      c.Backing,
		trackCallers: c.TrackCallers,
	}

	switch c.Backing {
	case BackingMmap:
		data, release, err := mmfile.Anon(c.Capacity)
		if err != nil {
			return nil, fmt.Errorf("arena: map backing: %w", err)
		}
		a.buf = data
		a.release = release
	default:
		a.buf = make([]byte, c.Capacity)
	}

	return a, nil
}

// Capacity returns the arena size in bytes, headers included.
func (a *Arena) Capacity() int {
	return a.capacity
}

// Backing returns the memory source of the arena.
func (a *Arena) Backing() Backing {
	return a.backing
}

// Initialized reports whether the first allocation has laid out the chain.
func (a *Arena) Initialized() bool {
	return a.initialized
}

// Bytes returns the raw arena buffer. Callers must treat it as read-only.
func (a *Arena) Bytes() []byte {
	return a.buf
}

// Reset returns the arena to its untouched state: the buffer is zeroed,
// the next Alloc re-initializes it and all counters start over.
func (a *Arena) Reset() {
	clear(a.buf)
	a.initialized = false
	a.stats = allocatorStats{}
}

// Close releases mmap backing memory. It is a no-op for heap arenas.
// The arena must not be used after Close.
func (a *Arena) Close() error {
	if a.release == nil {
		return nil
	}
	err := a.release()
	a.release = nil
	a.buf = nil
	a.initialized = false
	return err
}

// Verify checks the chain invariants of an initialized arena.
// An untouched arena is trivially valid.
func (a *Arena) Verify() error {
	if !a.initialized {
		return nil
	}
	return verify.AllInvariants(a.buf)
}

// ensureInit lays down a single free block spanning the whole capacity.
func (a *Arena) ensureInit() {
	if a.initialized {
		return
	}
	format.PutHeader(a.buf, 0, format.Header{Size: a.capacity - MetaSize})
	a.initialized = true
}

// fail builds an OpError for op, tagging the caller when tracking is on.
func (a *Arena) fail(op string, kind error, size int, ref Ref) *OpError {
	e := &OpError{Op: op, Kind: kind, Size: size, Ref: ref}
	if a.trackCallers {
		// 0 = fail, 1 = Alloc/Free/Payload, 2 = caller.
		if _, file, line, ok := runtime.Caller(2 + a.callerSkip); ok {
			e.Caller = fmt.Sprintf("%s:%d", file, line)
		}
	}
	return e
}
