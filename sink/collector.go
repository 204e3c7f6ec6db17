// Package sink holds the consumers decoded postings are pushed into.
package sink

import "github.com/lezhnev74/postings_codec/codec"

// Posting is one decoded document id with the impact of its segment.
type Posting struct {
	ID     uint64
	Weight uint64
}

// Collector keeps every posting in arrival order.
type Collector struct {
	weight   uint64
	Postings []Posting
}

func (c *Collector) SetWeight(weight uint64) { c.weight = weight }

func (c *Collector) EmitBatch(b *codec.Batch) {
	for _, id := range b.Values() {
		c.Postings = append(c.Postings, Posting{id, c.weight})
	}
}

func (c *Collector) Emit(id, weight uint64) {
	c.Postings = append(c.Postings, Posting{id, weight})
}

// IDs returns the document ids only.
func (c *Collector) IDs() []uint64 {
	ids := make([]uint64, len(c.Postings))
	for i, p := range c.Postings {
		ids[i] = p.ID
	}
	return ids
}

func (c *Collector) Reset() {
	c.Postings = c.Postings[:0]
}
