package arena

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize indicates a request of zero, negative or unrepresentable size.
	ErrInvalidSize = errors.New("arena: invalid allocation size")

	// ErrOutOfMemory indicates that no free block large enough was found.
	ErrOutOfMemory = errors.New("arena: no free block large enough")

	// ErrInvalidPointer indicates a nil or out-of-bounds reference.
	ErrInvalidPointer = errors.New("arena: invalid pointer")

	// ErrDoubleFree indicates an attempt to free a block that is already free.
	ErrDoubleFree = errors.New("arena: double free")

	// ErrMisaligned indicates a reference that is not the payload start of any block.
	ErrMisaligned = errors.New("arena: pointer does not start a block")

	// ErrNotInUse indicates a payload lookup on a block that is free.
	ErrNotInUse = errors.New("arena: block not in use")

	// ErrInvalidConfig indicates a configuration the arena cannot be built from.
	ErrInvalidConfig = errors.New("arena: invalid config")
)

// OpError describes a failed arena operation. Kind is one of the package
// sentinels and is returned by Unwrap, so errors.Is works on *OpError.
type OpError struct {
	Op     string // "alloc", "free" or "payload"
	Kind   error
	Size   int    // requested size (alloc only)
	Ref    Ref    // reference passed in (free/payload only)
	Caller string // file:line of the caller, set when Config.TrackCallers is on
}

func (e *OpError) Error() string {
	var msg string
	switch e.Op {
	case "alloc":
		msg = fmt.Sprintf("%s(%d): %v", e.Op, e.Size, e.Kind)
	default:
		msg = fmt.Sprintf("%s(%s): %v", e.Op, e.Ref, e.Kind)
	}
	if e.Caller != "" {
		msg += " at " + e.Caller
	}
	return msg
}

func (e *OpError) Unwrap() error {
	return e.Kind
}
