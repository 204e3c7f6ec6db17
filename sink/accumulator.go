package sink

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring"
	"github.com/lezhnev74/postings_codec/codec"
)

// Accumulator sums impacts per document, the way impact-ordered query
// processing ranks documents. Documents with a non-zero contribution are
// tracked in a bitmap so Reset and TopK do not scan the whole score array.
// Ids must be below the size given to NewAccumulator.
type Accumulator struct {
	weight  uint64
	scores  []uint64
	touched *roaring.Bitmap
}

func NewAccumulator(documents int) *Accumulator {
	if documents < 0 || uint64(documents) > math.MaxUint32+1 {
		panic(fmt.Sprintf("accumulator: %d documents out of range", documents))
	}
	return &Accumulator{
		scores:  make([]uint64, documents),
		touched: roaring.New(),
	}
}

func (a *Accumulator) SetWeight(weight uint64) { a.weight = weight }

func (a *Accumulator) EmitBatch(b *codec.Batch) {
	for _, id := range b.Values() {
		a.add(id, a.weight)
	}
}

func (a *Accumulator) Emit(id, weight uint64) {
	a.add(id, weight)
}

func (a *Accumulator) add(id, weight uint64) {
	a.scores[id] += weight
	a.touched.Add(uint32(id))
}

func (a *Accumulator) Score(id uint64) uint64 {
	return a.scores[id]
}

// Touched returns how many distinct documents received a posting.
func (a *Accumulator) Touched() uint64 {
	return a.touched.GetCardinality()
}

// TopK returns at most k documents ordered by score desc, then by id asc.
// A negative k is treated as zero.
func (a *Accumulator) TopK(k int) []Posting {
	k = max(k, 0)
	all := make([]Posting, 0, a.touched.GetCardinality())
	it := a.touched.Iterator()
	for it.HasNext() {
		id := uint64(it.Next())
		all = append(all, Posting{ID: id, Weight: a.scores[id]})
	}

	// ids come out ascending, a stable sort keeps them so within equal scores
	slices.SortStableFunc(all, func(x, y Posting) int {
		return cmp.Compare(y.Weight, x.Weight)
	})
	if len(all) > k {
		all = all[:k]
	}
	return all
}

// Reset zeroes the touched documents only.
func (a *Accumulator) Reset() {
	it := a.touched.Iterator()
	for it.HasNext() {
		a.scores[it.Next()] = 0
	}
	a.touched.Clear()
}
