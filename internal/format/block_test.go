package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextBlock_Walk(t *testing.T) {
	b := make([]byte, 32)
	PutHeader(b, 0, Header{Used: true, Size: 10, Hanging: 1})
	PutHeader(b, 12, Header{Size: 18})

	blk, next, err := NextBlock(b, 0)
	require.NoError(t, err)
	require.True(t, blk.Used)
	require.Equal(t, 10, blk.Size)
	require.Equal(t, 1, blk.Hanging)
	require.Len(t, blk.Data, 10)
	require.Equal(t, 12, next)
	require.Equal(t, 12, blk.End())

	blk, next, err = NextBlock(b, next)
	require.NoError(t, err)
	require.False(t, blk.Used)
	require.Equal(t, 18, blk.Size)
	require.Equal(t, len(b), next)
}

func TestNextBlock_Truncated(t *testing.T) {
	b := make([]byte, 3)
	_, _, err := NextBlock(b, 2)
	require.ErrorIs(t, err, ErrTruncated)

	_, _, err = NextBlock(b, -1)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestNextBlock_Overrun(t *testing.T) {
	b := make([]byte, 8)
	PutHeader(b, 0, Header{Size: 7})
	_, _, err := NextBlock(b, 0)
	require.ErrorIs(t, err, ErrOverrun)
}
