package sink

import (
	"bytes"
	"testing"

	"github.com/lezhnev74/postings_codec/codec"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, c codec.IntegerCodec, ids []uint64) []byte {
	t.Helper()
	buf := make([]byte, codec.EncodeBound(len(ids)))
	n := c.Encode(buf, ids)
	return buf[:n]
}

func TestCollector(t *testing.T) {
	c := codec.NewEliasDelta()
	ids := []uint64{3, 5, 8, 13, 21, 34, 55, 89, 144, 233}
	src := encode(t, c, ids)

	col := &Collector{}
	c.SetWeight(9)
	c.DecodeWithWriter(col, len(ids), src)

	require.Equal(t, ids, col.IDs())
	for _, p := range col.Postings {
		require.Equal(t, uint64(9), p.Weight)
	}

	col.Reset()
	require.Empty(t, col.Postings)
}

func TestCollectorHonoursBatchLength(t *testing.T) {
	col := &Collector{}
	col.SetWeight(1)
	col.EmitBatch(&codec.Batch{IDs: [8]uint64{4, 0, 6, 7, 8, 9, 10, 11}, Len: 3})
	require.Equal(t, []Posting{{ID: 4, Weight: 1}, {ID: 0, Weight: 1}, {ID: 6, Weight: 1}}, col.Postings)
}

func TestPrinter(t *testing.T) {
	c := codec.NewEliasDelta()
	out := bytes.NewBuffer(nil)
	p := NewPrinter(out)

	p.WriteString("term ")
	c.SetWeight(7)
	c.DecodeWithWriter(p, 2, encode(t, c, []uint64{1, 20}))
	c.SetWeight(3)
	ids := []uint64{2, 4, 6, 8, 10, 12, 14, 16, 18}
	c.DecodeWithWriter(p, len(ids), encode(t, c, ids))
	p.WriteString("\n")
	require.NoError(t, p.Flush())

	require.Equal(t,
		"term <1,7><20,7><2,3><4,3><6,3><8,3><10,3><12,3><14,3><16,3><18,3>\n",
		out.String(),
	)
}

func TestPrinterPartialBatch(t *testing.T) {
	out := bytes.NewBuffer(nil)
	p := NewPrinter(out)
	p.SetWeight(2)
	p.EmitBatch(&codec.Batch{IDs: [8]uint64{1, 2, 3}, Len: 2})
	require.NoError(t, p.Flush())
	require.Equal(t, "<1,2><2,2>", out.String())
}

func TestAccumulator(t *testing.T) {
	c := codec.NewEliasDelta()
	a := NewAccumulator(100)

	// two segments of one term and one of another
	c.SetWeight(5)
	c.DecodeWithWriter(a, 3, encode(t, c, []uint64{10, 20, 30}))
	c.SetWeight(2)
	c.DecodeWithWriter(a, 9, encode(t, c, []uint64{1, 2, 3, 4, 5, 6, 7, 8, 20}))
	c.SetWeight(4)
	c.DecodeWithWriter(a, 2, encode(t, c, []uint64{30, 99}))

	require.Equal(t, uint64(7), a.Score(20))
	require.Equal(t, uint64(9), a.Score(30))
	require.Equal(t, uint64(0), a.Score(50))
	require.Equal(t, uint64(12), a.Touched())

	require.Equal(t, []Posting{{ID: 30, Weight: 9}, {ID: 20, Weight: 7}, {ID: 10, Weight: 5}, {ID: 99, Weight: 4}, {ID: 1, Weight: 2}}, a.TopK(5))
	require.Empty(t, a.TopK(0))
	require.Empty(t, a.TopK(-1))
	require.Len(t, a.TopK(100), 12)

	a.Reset()
	require.Equal(t, uint64(0), a.Touched())
	require.Equal(t, uint64(0), a.Score(30))
	require.Empty(t, a.TopK(3))
}

func TestAccumulatorBounds(t *testing.T) {
	a := NewAccumulator(4)
	require.Panics(t, func() { a.Emit(4, 1) })
	require.Panics(t, func() { NewAccumulator(-1) })
}
