package maths

import (
	"math"
	"math/bits"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTablesAgreeWithReference(t *testing.T) {
	for b := 0; b < 256; b++ {
		x := uint8(b)
		expectedFloor := 0
		if x > 0 {
			expectedFloor = bits.Len8(x) - 1
		}
		require.Equal(t, expectedFloor, int(floorLog2Table[b]), "floor(%d)", b)

		expectedCeiling := 0
		if x > 1 {
			expectedCeiling = bits.Len8(x - 1)
		}
		require.Equal(t, expectedCeiling, int(ceilingLog2Table[b]), "ceiling(%d)", b)
	}
}

func TestSmallValues(t *testing.T) {
	require.Equal(t, uint(3), FloorLog2(10))
	require.Equal(t, uint(4), CeilingLog2(10))
	require.Equal(t, uint(4), BitLength(10))

	require.Equal(t, uint(0), FloorLog2(0))
	require.Equal(t, uint(0), CeilingLog2(0))
	require.Equal(t, uint(0), BitLength(0))

	require.Equal(t, uint(0), FloorLog2(1))
	require.Equal(t, uint(0), CeilingLog2(1))
	require.Equal(t, uint(1), BitLength(1))
}

func TestPowerOfTwoBoundaries(t *testing.T) {
	for k := uint(1); k < 64; k++ {
		p := uint64(1) << k

		require.Equal(t, k+1, BitLength(p), "2^%d", k)
		require.Equal(t, k, FloorLog2(p), "2^%d", k)
		require.Equal(t, k, CeilingLog2(p), "2^%d", k)
		require.Equal(t, BitLength(p)-1, CeilingLog2(p), "2^%d", k) // one less at powers of two

		require.Equal(t, k, BitLength(p-1), "2^%d-1", k)
		if p-1 > 1 {
			require.Equal(t, BitLength(p-1), CeilingLog2(p-1), "2^%d-1", k)
		}

		require.Equal(t, k+1, BitLength(p+1), "2^%d+1", k)
		require.Equal(t, k+1, CeilingLog2(p+1), "2^%d+1", k)
	}

	require.Equal(t, uint(64), BitLength(math.MaxUint64))
	require.Equal(t, uint(64), CeilingLog2(math.MaxUint64))
}

func TestRandomAgainstMathBits(t *testing.T) {
	for i := 0; i < 100_000; i++ {
		x := rand.Uint64() >> rand.IntN(64)
		if x == 0 {
			continue
		}
		require.Equal(t, uint(bits.Len64(x)), BitLength(x), "%x", x)
		require.Equal(t, uint(bits.Len64(x))-1, FloorLog2(x), "%x", x)
		require.Equal(t, uint(bits.Len64(x-1)), CeilingLog2(x), "%x", x)
		require.Equal(t, uint(bits.TrailingZeros64(x)), TrailingZeros(x), "%x", x)
	}
}

func TestTrailingZeros(t *testing.T) {
	require.Equal(t, uint(64), TrailingZeros(0))
	for k := uint(0); k < 64; k++ {
		require.Equal(t, k, TrailingZeros(1<<k))
		require.Equal(t, k, TrailingZeros(math.MaxUint64<<k))
	}
}
