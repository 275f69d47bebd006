package arena

import (
	"fmt"

	"github.com/joshuapare/firstfit/internal/format"
)

// Ref is the offset of a payload's first byte relative to the arena start.
type Ref uint32

// NilRef is the null reference. It never names a payload.
const NilRef Ref = ^Ref(0)

func (r Ref) String() string {
	if r == NilRef {
		return "nil"
	}
	return fmt.Sprintf("0x%04X", uint32(r))
}

const (
	// MetaSize is the number of header bytes preceding every payload.
	MetaSize = format.MetaSize

	// DefaultCapacity is the arena size used when no config is given.
	DefaultCapacity = 4096

	// MaxCapacity is the largest capacity whose block sizes fit the header.
	MaxCapacity = format.MaxCapacity

	// MinCapacity leaves room for one header and a 1-byte payload.
	MinCapacity = MetaSize + 1
)

// Backing selects where the arena's bytes live.
type Backing uint8

const (
	// BackingHeap allocates the arena as an ordinary Go byte slice.
	BackingHeap Backing = iota

	// BackingMmap maps anonymous memory outside the Go heap (unix only;
	// other platforms fall back to the heap). Call Close to release it.
	BackingMmap
)

func (b Backing) String() string {
	switch b {
	case BackingHeap:
		return "heap"
	case BackingMmap:
		return "mmap"
	default:
		return fmt.Sprintf("Backing(%d)", uint8(b))
	}
}

// Config controls how an arena is constructed. Capacity and header width
// are fixed for the lifetime of the arena.
type Config struct {
	// Capacity is the arena size in bytes, headers included.
	// Default: 4096
	Capacity int

	// Backing selects heap or anonymous mmap memory.
	// Default: BackingHeap
	Backing Backing

	// TrackCallers records the file:line of the caller in every OpError.
	// Default: false
	TrackCallers bool
}

// DefaultConfig mirrors the classic 4 KiB static block.
var DefaultConfig = Config{
	Capacity: DefaultCapacity,
	Backing:  BackingHeap,
}

// Validate reports whether c can build an arena.
func (c Config) Validate() error {
	if c.Capacity < MinCapacity || c.Capacity > MaxCapacity {
		return fmt.Errorf("%w: capacity %d outside [%d, %d]",
			ErrInvalidConfig, c.Capacity, MinCapacity, MaxCapacity)
	}
	if c.Backing > BackingMmap {
		return fmt.Errorf("%w: unknown backing %s", ErrInvalidConfig, c.Backing)
	}
	return nil
}

// Block is a read-only snapshot of one block in the chain.
type Block struct {
	Offset  int  // header offset
	Used    bool // allocated
	Size    int  // payload bytes, hanging bytes included
	Hanging int  // slack bytes at the end of a used block
}

// Ref returns the payload reference of the block.
func (b Block) Ref() Ref {
	return Ref(format.PayloadOffset(b.Offset))
}

// End returns the offset just past the block.
func (b Block) End() int {
	return b.Offset + MetaSize + b.Size
}
