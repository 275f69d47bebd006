//go:build unix

package mmfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnon_ZeroFilledWritable(t *testing.T) {
	data, release, err := Anon(4096)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, release())
	}()

	require.Len(t, data, 4096)
	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte %d not zero: 0x%x", i, b)
		}
	}

	data[0] = 0xAB
	data[4095] = 0xCD
	require.Equal(t, byte(0xAB), data[0])
	require.Equal(t, byte(0xCD), data[4095])
	require.True(t, Supported())
}

func TestAnon_DoubleReleaseIsNoop(t *testing.T) {
	_, release, err := Anon(128)
	require.NoError(t, err)
	require.NoError(t, release())
	require.NoError(t, release())
}

func TestAnon_InvalidSize(t *testing.T) {
	_, _, err := Anon(0)
	require.Error(t, err)
	_, _, err = Anon(-5)
	require.Error(t, err)
}
