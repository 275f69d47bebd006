package format

import (
	"fmt"

	"github.com/joshuapare/firstfit/internal/buf"
)

// Block is a decoded view of one header plus payload range inside an arena.
//
// Layout:
//
//	Offset  Size      Description
//	0x00    MetaSize  Packed header (used, hanging, size).
//	0x02    Size      Payload. The last Hanging bytes of a used block are slack.
type Block struct {
	Offset  int    // Header offset relative to the start of the arena
	Used    bool   // True when the block is allocated
	Size    int    // Payload size including hanging bytes
	Hanging int    // Slack bytes at the end of a used block
	Data    []byte // Payload bytes (alias of underlying buffer)
}

// End returns the offset just past the block's payload.
func (blk Block) End() int {
	return blk.Offset + MetaSize + blk.Size
}

// NextBlock decodes the block at off and returns it together with the offset
// of the following block. The caller must ensure off points to a header.
func NextBlock(b []byte, off int) (Block, int, error) {
	raw, ok := buf.Slice(b, off, MetaSize)
	if !ok {
		return Block{}, 0, fmt.Errorf("block at %d: %w", off, ErrTruncated)
	}
	h := DecodeHeader(buf.U16LE(raw))
	next := off + MetaSize + h.Size
	if next > len(b) {
		return Block{}, 0, fmt.Errorf("block at %d size %d: %w", off, h.Size, ErrOverrun)
	}
	return Block{
		Offset:  off,
		Used:    h.Used,
		Size:    h.Size,
		Hanging: h.Hanging,
		Data:    b[off+MetaSize : next],
	}, next, nil
}
