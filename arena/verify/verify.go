package verify

import (
	"fmt"

	"github.com/joshuapare/firstfit/internal/format"
)

// ValidationError describes a violated chain invariant.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates all chain invariants in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(data []byte) error {
	if err := Chain(data); err != nil {
		return err
	}
	if err := NoAdjacentFree(data); err != nil {
		return err
	}
	if err := Hanging(data); err != nil {
		return err
	}
	return nil
}

// Chain walks headers from offset 0 and checks that the blocks tile the
// whole arena with no gap, overlap or overrun.
func Chain(data []byte) error {
	if len(data) < format.MetaSize {
		return &ValidationError{
			Type:    "Chain",
			Message: fmt.Sprintf("arena too small: %d bytes (need %d)", len(data), format.MetaSize),
			Offset:  -1,
		}
	}

	total := 0
	off := 0
	for off < len(data) {
		blk, next, err := format.NextBlock(data, off)
		if err != nil {
			return &ValidationError{
				Type:    "Chain",
				Message: err.Error(),
				Offset:  off,
			}
		}
		total += format.MetaSize + blk.Size
		off = next
	}

	if total != len(data) {
		return &ValidationError{
			Type:    "Chain",
			Message: fmt.Sprintf("conservation violated: blocks cover %d of %d bytes", total, len(data)),
			Offset:  -1,
			Details: map[string]any{
				"covered":  total,
				"capacity": len(data),
			},
		}
	}
	return nil
}

// NoAdjacentFree checks that coalescing left no two neighbouring free blocks.
func NoAdjacentFree(data []byte) error {
	prevFree := false
	prevOff := -1
	return each(data, func(blk format.Block) error {
		if !blk.Used && prevFree {
			return &ValidationError{
				Type:    "NoAdjacentFree",
				Message: fmt.Sprintf("free block follows free block at 0x%X", prevOff),
				Offset:  blk.Offset,
			}
		}
		prevFree = !blk.Used
		prevOff = blk.Offset
		return nil
	})
}

// Hanging checks that hanging bytes appear only on used blocks, never
// reach MetaSize and never exceed the block's payload.
func Hanging(data []byte) error {
	return each(data, func(blk format.Block) error {
		switch {
		case blk.Hanging == 0:
			return nil
		case !blk.Used:
			return &ValidationError{
				Type:    "Hanging",
				Message: fmt.Sprintf("free block carries %d hanging byte(s)", blk.Hanging),
				Offset:  blk.Offset,
			}
		case blk.Hanging > format.MaxHanging || blk.Hanging >= blk.Size:
			return &ValidationError{
				Type:    "Hanging",
				Message: fmt.Sprintf("hanging %d out of range for size %d", blk.Hanging, blk.Size),
				Offset:  blk.Offset,
			}
		}
		return nil
	})
}

// each decodes blocks in order, stopping at the first decode or callback error.
func each(data []byte, fn func(format.Block) error) error {
	for off := 0; off < len(data); {
		blk, next, err := format.NextBlock(data, off)
		if err != nil {
			return &ValidationError{Type: "Chain", Message: err.Error(), Offset: off}
		}
		if err := fn(blk); err != nil {
			return err
		}
		off = next
	}
	return nil
}
