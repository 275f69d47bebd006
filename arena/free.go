package arena

import (
	"github.com/joshuapare/firstfit/internal/buf"
	"github.com/joshuapare/firstfit/internal/format"
)

// Free releases the allocation whose payload starts at ref and coalesces
// the freed block with its neighbours.
//
// Errors: ErrInvalidPointer for NilRef or a ref outside the arena,
// ErrDoubleFree when the block is already free, ErrMisaligned when ref is
// not the payload start of any block. On error the arena is unchanged.
func (a *Arena) Free(ref Ref) error {
	a.stats.FreeCalls++

	prev, off, err := a.locate(ref)
	if err != nil {
		a.stats.FailedFrees++
		return a.fail("free", err, 0, ref)
	}
	data := a.buf
	if !format.Used(data, off) {
		a.stats.FailedFrees++
		return a.fail("free", ErrDoubleFree, 0, ref)
	}

	format.SetUsed(data, off, false)
	format.SetHanging(data, off, 0)

	cur := off
	if prev >= 0 {
		ph := format.ReadHeader(data, prev)
		switch {
		case !ph.Used:
			format.SetSize(data, prev, ph.Size+MetaSize+format.Size(data, cur))
			format.SetHanging(data, prev, 0)
			cur = prev
			a.stats.CoalesceBackward++
		case ph.Hanging > 0:
			cur = a.reclaimHanging(prev, cur, ph.Hanging)
		}
	}

	next := cur + MetaSize + format.Size(data, cur)
	if buf.Within(next, a.capacity) && !format.Used(data, next) {
		format.SetSize(data, cur, format.Size(data, cur)+MetaSize+format.Size(data, next))
		a.stats.CoalesceForward++
	}

	return nil
}

// reclaimHanging takes n hanging bytes back from the used block at prev and
// hands them to the free block at cur by shifting cur's header n bytes
// earlier. It returns the new header offset of the free block.
func (a *Arena) reclaimHanging(prev, cur, n int) int {
	data := a.buf

	format.SetSize(data, prev, format.Size(data, prev)-n)
	format.SetHanging(data, prev, 0)

	moved := cur - n
	copy(data[moved:moved+MetaSize], data[cur:cur+MetaSize])
	format.SetSize(data, moved, format.Size(data, moved)+n)

	a.stats.HangingReclaims++
	a.stats.ReclaimedBytes += n
	return moved
}

// locate walks the chain from offset 0 and returns the header offsets of the
// block whose payload starts at ref and of its predecessor (-1 for the first
// block). It does not inspect the used flag.
func (a *Arena) locate(ref Ref) (prev, off int, err error) {
	if ref == NilRef || !buf.Within(int(ref), a.capacity) {
		return -1, -1, ErrInvalidPointer
	}
	if !a.initialized {
		return -1, -1, ErrMisaligned
	}

	target := format.HeaderOffset(int(ref))
	prev = -1
	for off = 0; off < a.capacity && off <= target; off += MetaSize + format.Size(a.buf, off) {
		if off == target {
			return prev, off, nil
		}
		prev = off
	}
	return -1, -1, ErrMisaligned
}

// Payload returns the caller-visible bytes of the live allocation at ref,
// excluding any hanging bytes.
func (a *Arena) Payload(ref Ref) ([]byte, error) {
	_, off, err := a.locate(ref)
	if err != nil {
		return nil, a.fail("payload", err, 0, ref)
	}
	h := format.ReadHeader(a.buf, off)
	if !h.Used {
		return nil, a.fail("payload", ErrNotInUse, 0, ref)
	}
	p := format.PayloadOffset(off)
	n := h.Size - h.Hanging
	return a.buf[p : p+n : p+n], nil
}
