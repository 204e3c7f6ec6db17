// Package codectest holds the round-trip checks every codec.IntegerCodec must pass.
package codectest

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lezhnev74/postings_codec/codec"
	"github.com/stretchr/testify/require"
)

// Representative returns the fixed sequence of the harness: small values,
// every power of two and its neighbours, and the largest uint64.
func Representative() []uint64 {
	values := []uint64{1, 2, 3, 1, 2, 3, 4, 5, 6, 7, 8}
	for k := 1; k < 64; k++ {
		p := uint64(1) << k
		values = append(values, p-1, p, p+1)
	}
	values = append(values, math.MaxUint64, 1, math.MaxUint64-1, 1)
	return values
}

// RandomSequence returns size values >= 1 of random bit widths.
func RandomSequence(r *rand.Rand, size int) []uint64 {
	values := make([]uint64, size)
	for i := range values {
		v := r.Uint64() >> r.IntN(64)
		if v == 0 {
			v = 1
		}
		values[i] = v
	}
	return values
}

// BufferFor returns a zero-initialized destination generous enough for any
// codec of the package, padding included.
func BufferFor(count int) []byte {
	return make([]byte, 2*codec.EncodeBound(count)+64)
}

// Run checks a codec built by factory. Every subtest takes a fresh instance.
func Run(t *testing.T, factory func() codec.IntegerCodec) {
	t.Run("representative", func(t *testing.T) {
		roundTrip(t, factory(), Representative())
	})

	t.Run("single", func(t *testing.T) {
		roundTrip(t, factory(), []uint64{1})
		roundTrip(t, factory(), []uint64{math.MaxUint64})
	})

	t.Run("random", func(t *testing.T) {
		r := rand.New(rand.NewPCG(1, 2))
		sizes := []int{1, 2, 7, 8, 9, 63, 64, 65, 127, 128, 129, 1000, 10000}
		for i := 0; i < 20; i++ {
			sizes = append(sizes, 1+r.IntN(10000))
		}
		c := factory()
		for _, size := range sizes {
			roundTrip(t, c, RandomSequence(r, size))
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		c := factory()
		values := Representative()
		buf := BufferFor(len(values))
		n := c.Encode(buf, values)

		first := make([]uint64, len(values))
		c.Decode(first, buf[:n])
		second := make([]uint64, len(values))
		c.Decode(second, buf[:n])

		require.Equal(t, values, first)
		require.Equal(t, first, second)
	})

	t.Run("unaligned offset", func(t *testing.T) {
		c := factory()
		values := RandomSequence(rand.New(rand.NewPCG(3, 4)), 333)
		for _, offset := range []int{1, 3, 5, 7, 8, 13} {
			arena := make([]byte, offset+len(BufferFor(len(values))))
			n := c.Encode(arena[offset:], values)

			decoded := make([]uint64, len(values))
			c.Decode(decoded, arena[offset:offset+n])
			require.Equal(t, values, decoded, "offset %d", offset)
		}
	})

	t.Run("decode with writer", func(t *testing.T) {
		for _, size := range []int{1, 7, 8, 9, 16, 17, len(Representative())} {
			c := factory()
			values := Representative()[:size]
			buf := BufferFor(len(values))
			n := c.Encode(buf, values)

			rec := &recorder{}
			c.SetWeight(42)
			c.DecodeWithWriter(rec, len(values), buf[:n])
			require.Equal(t, values, rec.ids, "size %d", size)
			for i, w := range rec.weights {
				require.Equal(t, uint64(42), w, "weight of posting %d", i)
			}

			// the weight sticks until it is set again
			rec = &recorder{}
			c.DecodeWithWriter(rec, len(values), buf[:n])
			require.Equal(t, values, rec.ids)
			require.Equal(t, uint64(42), rec.weights[0])
		}
	})
}

func roundTrip(t *testing.T, c codec.IntegerCodec, values []uint64) {
	t.Helper()
	buf := BufferFor(len(values))
	n := c.Encode(buf, values)
	require.Greater(t, n, 0)
	require.LessOrEqual(t, n+codec.Padding, len(buf))

	decoded := make([]uint64, len(values))
	c.Decode(decoded, buf[:n])
	require.Equal(t, values, decoded)
}

// recorder is a Sink keeping everything it receives in arrival order.
type recorder struct {
	weight  uint64
	ids     []uint64
	weights []uint64
}

func (r *recorder) SetWeight(weight uint64) { r.weight = weight }

func (r *recorder) EmitBatch(b *codec.Batch) {
	for _, id := range b.Values() {
		r.Emit(id, r.weight)
	}
}

func (r *recorder) Emit(id, weight uint64) {
	r.ids = append(r.ids, id)
	r.weights = append(r.weights, weight)
}
