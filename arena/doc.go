// Package arena provides a first-fit allocator over a single fixed-capacity byte arena.
//
// # Overview
//
// The arena is one contiguous buffer holding a dense, address-ordered chain of
// blocks. Every block starts with a 2-byte in-band header (see
// internal/format) followed by its payload. There are no side tables: the
// chain is recovered at any time by walking headers from offset 0, and the
// sizes of all blocks plus their headers always add up to the capacity.
//
// # Allocation
//
// Alloc scans blocks in address order and takes the first free block large
// enough for the request:
//
//   - If the remainder can host a header, the block is split and the tail
//     becomes a new free block (possibly with an empty payload).
//   - Otherwise the whole block is absorbed and the 1-byte remainder is
//     recorded in the header as a "hanging" byte.
//
// # Deallocation
//
// Free locates the block by walking the chain, validates the reference and
// then coalesces:
//
//   - Backward: a free predecessor absorbs the block.
//   - Hanging reclamation: a used predecessor with hanging bytes gives them
//     up; the freed block's header is shifted back over them.
//   - Forward: a free successor is absorbed.
//
// # Usage Example
//
//	a, err := arena.New(nil) // 4096-byte arena
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	ref, payload, err := a.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	copy(payload, "hello")
//
//	err = a.Free(ref)
//
// # Errors
//
// All failures return an *OpError wrapping one of ErrInvalidSize,
// ErrOutOfMemory, ErrInvalidPointer, ErrDoubleFree or ErrMisaligned, and
// leave the arena byte-for-byte unchanged. Use errors.Is to classify them.
//
// # Thread Safety
//
// Arena instances are not thread-safe. Use Safe to share one arena between
// goroutines.
//
// # Related Packages
//
//   - github.com/joshuapare/firstfit/arena/verify: chain invariant checks
//   - github.com/joshuapare/firstfit/arena/printer: block table dumps
//   - github.com/joshuapare/firstfit/internal/format: header codec
package arena
