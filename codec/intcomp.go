package codec

import (
	"encoding/binary"

	"github.com/ronanh/intcomp"
)

const IntcompName = "intcomp"

func init() {
	Register(IntcompName, func() IntegerCodec { return NewIntcomp() })
}

// Intcomp wraps the delta bit-packing of github.com/ronanh/intcomp.
// The compressed words are stored little endian, so the encoded length is
// always a multiple of 8. Unlike EliasDelta it accepts zeros.
type Intcomp struct {
	weight uint64
	words  []uint64
	values []uint64
}

func NewIntcomp() *Intcomp { return &Intcomp{} }

func (c *Intcomp) Name() string { return IntcompName }

func (c *Intcomp) SetWeight(weight uint64) { c.weight = weight }

// Encode panics if dst can not hold the compressed words.
func (c *Intcomp) Encode(dst []byte, src []uint64) int {
	c.words = intcomp.CompressUint64(src, c.words[:0])
	for i, w := range c.words {
		binary.LittleEndian.PutUint64(dst[i*8:], w)
	}
	return len(c.words) * 8
}

func (c *Intcomp) Decode(dst []uint64, src []byte) {
	out := intcomp.UncompressUint64(c.load(src), dst[:0])
	copy(dst, out)
}

// DecodeWithWriter materializes the run in a scratch slice before emitting it,
// the packed blocks can not be walked value by value.
func (c *Intcomp) DecodeWithWriter(sink Sink, count int, src []byte) {
	c.values = intcomp.UncompressUint64(c.load(src), c.values[:0])
	if len(c.values) > count {
		c.values = c.values[:count]
	}
	emitAll(sink, c.weight, c.values)
}

func (c *Intcomp) EncodedLen(src []uint64) (int, error) {
	return len(intcomp.CompressUint64(src, nil)) * 8, nil
}

// load reinterprets src as little endian words, trailing partial words are ignored.
func (c *Intcomp) load(src []byte) []uint64 {
	n := len(src) / 8
	if cap(c.words) < n {
		c.words = make([]uint64, n)
	}
	c.words = c.words[:n]
	for i := range c.words {
		c.words[i] = binary.LittleEndian.Uint64(src[i*8:])
	}
	return c.words
}
