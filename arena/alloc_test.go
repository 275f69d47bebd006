package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Alloc_FirstAllocationSplitsArena(t *testing.T) {
	a := newTestArena(t, 4096)

	ref := mustAlloc(t, a, 10)
	require.Equal(t, Ref(MetaSize), ref)
	require.Equal(t, []Block{
		blk(0, true, 10, 0),
		blk(12, false, 4096-12-MetaSize, 0),
	}, a.Blocks())
	assertInvariants(t, a)
}

func Test_Alloc_InvalidSize(t *testing.T) {
	a := newTestArena(t, 4096)
	for _, size := range []int{0, -1, -4096, 4095, 1 << 20} {
		ref, payload, err := a.Alloc(size)
		require.ErrorIs(t, err, ErrInvalidSize, "size %d", size)
		require.Equal(t, NilRef, ref)
		require.Nil(t, payload)
	}
}

func Test_Alloc_LargestRequest(t *testing.T) {
	a := newTestArena(t, 4096)
	ref := mustAlloc(t, a, 4094)
	require.Equal(t, []Block{blk(0, true, 4094, 0)}, a.Blocks())
	mustFree(t, a, ref)
	require.Equal(t, []Block{blk(0, false, 4094, 0)}, a.Blocks())
}

func Test_Alloc_SequentialAddresses(t *testing.T) {
	a := newTestArena(t, 4096)
	prev := mustAlloc(t, a, 50)
	for range 10 {
		ref := mustAlloc(t, a, 50)
		require.Equal(t, prev+50+MetaSize, ref, "blocks should be packed back to back")
		prev = ref
	}
	assertInvariants(t, a)
}

func Test_Alloc_PayloadAliasesArena(t *testing.T) {
	a := newTestArena(t, 256)
	ref, payload, err := a.Alloc(5)
	require.NoError(t, err)

	copy(payload, "hello")
	require.Equal(t, []byte("hello"), a.Bytes()[ref:ref+5])
	require.Equal(t, 5, cap(payload), "payload capacity must not reach into the next header")
}

func Test_Alloc_AbsorbRecordsHanging(t *testing.T) {
	a := newTestArena(t, 4096)
	r0 := mustAlloc(t, a, 100)
	mustAlloc(t, a, 100)
	mustFree(t, a, r0)

	ref, payload, err := a.Alloc(99)
	require.NoError(t, err)
	require.Equal(t, r0, ref)
	require.Len(t, payload, 99)
	require.Equal(t, blk(0, true, 100, 1), a.Blocks()[0])

	visible, err := a.Payload(ref)
	require.NoError(t, err)
	require.Len(t, visible, 99, "hanging bytes are not part of the payload")
	assertInvariants(t, a)
}

func Test_Alloc_ExactFit_NoRemainder(t *testing.T) {
	a := newTestArena(t, 4096)
	r0 := mustAlloc(t, a, 64)
	mustAlloc(t, a, 8)
	mustFree(t, a, r0)

	ref := mustAlloc(t, a, 64)
	require.Equal(t, r0, ref)
	require.Equal(t, blk(0, true, 64, 0), a.Blocks()[0])
	assertInvariants(t, a)
}

func Test_Alloc_RemainderOfMetaSizeSplits(t *testing.T) {
	a := newTestArena(t, 4096)

	// 4094 free, 4092 requested: the 2-byte remainder becomes an empty free block.
	mustAlloc(t, a, 4092)
	require.Equal(t, []Block{
		blk(0, true, 4092, 0),
		blk(4094, false, 0, 0),
	}, a.Blocks())
	assertInvariants(t, a)
}

func Test_Alloc_FragmentationFailure(t *testing.T) {
	a := newTestArena(t, 4096)
	mustAlloc(t, a, 4092)

	before := snapshot(a)
	ref, payload, err := a.Alloc(1)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Equal(t, NilRef, ref)
	require.Nil(t, payload)
	require.Equal(t, before, a.Bytes(), "failed Alloc must not touch the arena")
	require.Equal(t, 1, a.Stats().OutOfMemory)
}

func Test_Alloc_FirstFitNotBestFit(t *testing.T) {
	a := newTestArena(t, 4096)

	big := mustAlloc(t, a, 200)
	mustAlloc(t, a, 1)
	small := mustAlloc(t, a, 20)
	mustAlloc(t, a, 1)
	mustFree(t, a, big)
	mustFree(t, a, small)

	// A best-fit allocator would pick the 20-byte hole.
	ref := mustAlloc(t, a, 20)
	require.Equal(t, big, ref)
}

func Test_Alloc_SkipsTooSmallHoles(t *testing.T) {
	a := newTestArena(t, 4096)

	hole := mustAlloc(t, a, 10)
	mustAlloc(t, a, 1)
	mustFree(t, a, hole)

	ref := mustAlloc(t, a, 11)
	require.Greater(t, ref, hole)
	require.Equal(t, blk(0, false, 10, 0), a.Blocks()[0])
	assertInvariants(t, a)
}

func Test_Alloc_SaturateWithFiftyByteBlocks(t *testing.T) {
	a := newTestArena(t, 4096)

	var refs []Ref
	for {
		ref, _, err := a.Alloc(50)
		if err != nil {
			require.ErrorIs(t, err, ErrOutOfMemory)
			break
		}
		refs = append(refs, ref)
	}
	// Each block costs 50+2 bytes: 4096/52 = 78.
	require.Len(t, refs, 78)
	assertInvariants(t, a)

	for i := len(refs) - 1; i >= 0; i-- {
		mustFree(t, a, refs[i])
		assertInvariants(t, a)
	}
	require.Equal(t, []Block{blk(0, false, 4094, 0)}, a.Blocks())
}
