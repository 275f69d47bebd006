package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// Arena Creation Utilities
// ============================================================================

// newTestArena creates a heap-backed arena of the given capacity.
func newTestArena(t testing.TB, capacity int) *Arena {
	t.Helper()
	a, err := New(&Config{Capacity: capacity})
	require.NoError(t, err, "failed to create test arena")
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// mustAlloc allocates size bytes and fails the test on error.
func mustAlloc(t testing.TB, a *Arena, size int) Ref {
	t.Helper()
	ref, payload, err := a.Alloc(size)
	require.NoError(t, err, "Alloc(%d)", size)
	require.Len(t, payload, size)
	return ref
}

// mustFree frees ref and fails the test on error.
func mustFree(t testing.TB, a *Arena, ref Ref) {
	t.Helper()
	require.NoError(t, a.Free(ref), "Free(%s)", ref)
}

// snapshot copies the raw arena bytes.
func snapshot(a *Arena) []byte {
	return append([]byte(nil), a.Bytes()...)
}

// assertInvariants checks all chain invariants on a.
func assertInvariants(t testing.TB, a *Arena) {
	t.Helper()
	require.NoError(t, a.Verify())
}

// blk is shorthand for building expected chains in assertions.
func blk(off int, used bool, size, hanging int) Block {
	return Block{Offset: off, Used: used, Size: size, Hanging: hanging}
}
