// Package format houses the low-level codec for the arena's in-band block
// headers. It is kept independent from the allocator so the bit layout can be
// tested on its own and read by diagnostics without touching allocator state.
package format

// Header layout (16 bits, little-endian):
//
//	Bit   15     used flag
//	Bit   14     hanging byte count (0..MetaSize-1)
//	Bits  0..13  payload size in bytes
const (
	// MetaSize is the number of header bytes preceding every block payload.
	MetaSize = 2

	usedBit      uint16 = 1 << 15
	hangingShift        = 14
	hangingMask  uint16 = 1 << hangingShift
	sizeMask     uint16 = 1<<hangingShift - 1

	// MaxSize is the largest payload size the header can represent.
	MaxSize = int(sizeMask)

	// MaxHanging is the largest hanging count a header can carry. Any
	// remainder of MetaSize bytes or more is turned into a real block.
	MaxHanging = MetaSize - 1

	// MaxCapacity is the largest arena whose blocks always fit the size field.
	MaxCapacity = 1 << hangingShift
)
