package arena

import "github.com/joshuapare/firstfit/internal/format"

// Alloc reserves size payload bytes using first-fit over the block chain.
// It returns the payload reference and a slice of exactly size bytes
// aliasing the arena.
//
// Errors: ErrInvalidSize when size <= 0 or size > Capacity()-MetaSize,
// ErrOutOfMemory when no free block is large enough.
func (a *Arena) Alloc(size int) (Ref, []byte, error) {
	a.stats.AllocCalls++

	if size <= 0 || size > a.capacity-MetaSize {
		return NilRef, nil, a.fail("alloc", ErrInvalidSize, size, NilRef)
	}

	a.ensureInit()

	data := a.buf
	off := 0
	for off < a.capacity {
		h := format.ReadHeader(data, off)
		if h.Used || h.Size < size {
			off += MetaSize + h.Size
			continue
		}

		rem := h.Size - size
		if rem >= MetaSize {
			// Split: head becomes the allocation, tail (possibly empty) stays free.
			format.SetSize(data, off, size)
			format.SetUsed(data, off, true)
			tail := off + MetaSize + size
			format.PutHeader(data, tail, format.Header{Size: rem - MetaSize})
			a.stats.Splits++
		} else {
			// Absorb: the remainder cannot host a header, keep it as hanging bytes.
			format.SetUsed(data, off, true)
			format.SetHanging(data, off, rem)
			a.stats.Absorbs++
		}

		p := format.PayloadOffset(off)
		return Ref(p), data[p : p+size : p+size], nil
	}

	a.stats.OutOfMemory++
	return NilRef, nil, a.fail("alloc", ErrOutOfMemory, size, NilRef)
}
