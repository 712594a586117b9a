package ber

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGrowBuffer(t *testing.T) {
	var b growBuffer
	b.ensure(4)
	copy(b.data, []byte{1, 2, 3, 4})
	require.Len(t, b.data, 4)
	require.Equal(t, 1, b.grows)

	// Growing within capacity must not reallocate.
	b.ensure(2)
	require.Len(t, b.data, 4)
	require.Equal(t, 1, b.grows)

	b.ensure(1024)
	require.Len(t, b.data, 1024)
	require.Equal(t, []byte{1, 2, 3, 4}, b.data[:4])
	require.Equal(t, 2, b.grows)
}

func TestGrowBuffer_AmortizedGrowth(t *testing.T) {
	var b growBuffer
	for n := 1; n <= 1<<20; n++ {
		b.ensure(n)
	}
	// Doubling capacity keeps reallocations logarithmic in the final size.
	require.LessOrEqual(t, b.grows, 24)
}
