package format

// Header is the decoded form of a block header.
type Header struct {
	Used    bool
	Size    int // payload bytes following the header, hanging bytes included
	Hanging int // trailing bytes of a used block kept for a neighbour to reclaim
}

// Encode packs h into its 16-bit representation. Out-of-range fields are
// truncated to their bit width; callers validate before encoding.
func (h Header) Encode() uint16 {
	v := uint16(h.Size) & sizeMask
	v |= (uint16(h.Hanging) << hangingShift) & hangingMask
	if h.Used {
		v |= usedBit
	}
	return v
}

// DecodeHeader unpacks a 16-bit header value.
func DecodeHeader(v uint16) Header {
	return Header{
		Used:    v&usedBit != 0,
		Size:    int(v & sizeMask),
		Hanging: int((v & hangingMask) >> hangingShift),
	}
}

// ReadHeader decodes the header stored at off.
func ReadHeader(b []byte, off int) Header {
	return DecodeHeader(ReadU16(b, off))
}

// PutHeader writes all three fields of h at off.
func PutHeader(b []byte, off int, h Header) {
	PutU16(b, off, h.Encode())
}

// Used reports the used flag of the header at off.
func Used(b []byte, off int) bool {
	return ReadU16(b, off)&usedBit != 0
}

// Size returns the payload size recorded in the header at off.
func Size(b []byte, off int) int {
	return int(ReadU16(b, off) & sizeMask)
}

// Hanging returns the hanging byte count recorded in the header at off.
func Hanging(b []byte, off int) int {
	return int((ReadU16(b, off) & hangingMask) >> hangingShift)
}

// SetUsed updates only the used flag of the header at off.
func SetUsed(b []byte, off int, used bool) {
	v := ReadU16(b, off) &^ usedBit
	if used {
		v |= usedBit
	}
	PutU16(b, off, v)
}

// SetSize updates only the size field of the header at off.
func SetSize(b []byte, off int, size int) {
	v := ReadU16(b, off) &^ sizeMask
	PutU16(b, off, v|uint16(size)&sizeMask)
}

// SetHanging updates only the hanging field of the header at off.
func SetHanging(b []byte, off int, hanging int) {
	v := ReadU16(b, off) &^ hangingMask
	PutU16(b, off, v|(uint16(hanging)<<hangingShift)&hangingMask)
}

// PayloadOffset returns the offset of the first payload byte of the block at off.
func PayloadOffset(off int) int {
	return off + MetaSize
}

// HeaderOffset returns the header offset of the block whose payload starts at payload.
func HeaderOffset(payload int) int {
	return payload - MetaSize
}
