package arena

import "github.com/joshuapare/firstfit/internal/format"

// Blocks returns the block chain in address order. It never mutates the
// arena; an untouched arena reports the single free block it will be
// initialized to.
func (a *Arena) Blocks() []Block {
	if !a.initialized {
		return []Block{{Offset: 0, Size: a.capacity - MetaSize}}
	}

	var out []Block
	a.walk(func(off int, h format.Header) {
		out = append(out, Block{
			Offset:  off,
			Used:    h.Used,
			Size:    h.Size,
			Hanging: h.Hanging,
		})
	})
	return out
}

// walk calls fn for each header in address order.
func (a *Arena) walk(fn func(off int, h format.Header)) {
	for off := 0; off < a.capacity; {
		h := format.ReadHeader(a.buf, off)
		fn(off, h)
		off += MetaSize + h.Size
	}
}
