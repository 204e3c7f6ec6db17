package codec

import (
	"fmt"

	"github.com/lezhnev74/postings_codec/maths"
)

const (
	EliasDeltaName = "elias_delta"

	// maxCodewordBits is the longest Elias-delta code of a uint64:
	// 6 zero bits, the 7 bit gamma field and 63 value bits.
	maxCodewordBits = 6 + 7 + 63
)

func init() {
	Register(EliasDeltaName, func() IntegerCodec { return NewEliasDelta() })
}

// EliasDelta implements the Elias-delta universal code with LSB-first packing.
//
// Every value v >= 1 is written as:
//   - floor(log2(n)) zero bits, n being the bit length of v,
//   - the low bits of n shifted up by one with a 1 in bit 0 (the 1 ends the zero run),
//   - the low n-1 bits of v (its leading 1 is implicit).
//
// Zero can not be encoded; callers that need it shift their values by one.
// Decoding trusts the caller: a wrong count or a buffer without Padding slack
// yields garbage or an index panic, never an error.
type EliasDelta struct {
	weight uint64
}

func NewEliasDelta() *EliasDelta { return &EliasDelta{} }

func (c *EliasDelta) Name() string { return EliasDeltaName }

func (c *EliasDelta) SetWeight(weight uint64) { c.weight = weight }

func (c *EliasDelta) Weight() uint64 { return c.weight }

// Encode zeroes dst and packs src into it, returning the bytes used.
// The last word write may leave bits in up to Padding bytes past the returned
// length, so dst must be at least EncodeBound(len(src)) long. A shorter dst
// spills into whatever its capacity holds.
func (c *EliasDelta) Encode(dst []byte, src []uint64) int {
	w := newBitSink(dst)
	for _, v := range src {
		n := maths.BitLength(v)
		unary := maths.FloorLog2(uint64(n))
		w.skip(unary)

		zigZag := (uint64(n)&^(1<<unary))<<1 | 1
		w.write(zigZag, unary+1)

		w.write(v&^(1<<(n-1)), n-1)
	}
	return w.len()
}

// Decode reads len(dst) values. src must have Padding bytes of capacity past its length.
func (c *EliasDelta) Decode(dst []uint64, src []byte) {
	decodeEliasDelta[defaultBits](dst, src)
}

// DecodeWithWriter decodes count ids into sink with the current weight,
// without an intermediate slice.
func (c *EliasDelta) DecodeWithWriter(sink Sink, count int, src []byte) {
	decodeEliasDeltaTo[defaultBits](sink, c.weight, count, src)
}

// EncodedLen returns the exact number of bytes Encode reports for src.
func (c *EliasDelta) EncodedLen(src []uint64) (int, error) {
	bits, err := EncodedBits(src)
	if err != nil {
		return 0, err
	}
	return int((bits + 7) / 8), nil
}

// CheckEncoded walks count codewords of src and fails when one of them is
// malformed or reaches past len(src). It copies src, so the source needs no
// padding and its bytes past len(src) are never looked at.
func (c *EliasDelta) CheckEncoded(count int, src []byte) error {
	limit := 8 * uint64(len(src))
	if count < 0 || uint64(count) > limit {
		return fmt.Errorf("%w: %d values in %d bytes", ErrCountMismatch, count, len(src))
	}

	// a set sentinel bit right behind src ends any zero run there, the slack
	// covers the longest codeword read past it
	buf := make([]byte, len(src)+1, len(src)+1+3*Padding)
	copy(buf, src)
	buf[len(src)] = 0xff

	s := newBitSource[defaultBits](buf)
	for i := 0; i < count; i++ {
		unary := s.zeros()
		if s.consumed() >= limit {
			return fmt.Errorf("%w: value %d of %d starts past %d bytes", ErrCountMismatch, i, count, len(src))
		}
		if unary > 6 {
			return fmt.Errorf("%w: value %d has a %d bit length prefix", ErrInvalidValue, i, unary)
		}
		n := s.read(unary+1)>>1 | 1<<unary
		if n > 64 {
			return fmt.Errorf("%w: value %d is %d bits long", ErrInvalidValue, i, n)
		}
		s.read(uint(n - 1))
		if s.consumed() > limit {
			return fmt.Errorf("%w: value %d of %d ends past %d bytes", ErrCountMismatch, i, count, len(src))
		}
	}
	return nil
}

// EncodedBits returns the bit length of the Elias-delta encoding of src.
func EncodedBits(src []uint64) (uint64, error) {
	var total uint64
	for i, v := range src {
		if v == 0 {
			return 0, fmt.Errorf("%w: zero at position %d", ErrInvalidValue, i)
		}
		n := maths.BitLength(v)
		total += uint64(2*maths.FloorLog2(uint64(n)) + n)
	}
	return total, nil
}

// EncodeBound is the destination size that fits any count values, padding included.
func EncodeBound(count int) int {
	return (count*maxCodewordBits+7)/8 + Padding
}

func decodeEliasDelta[P bitPrimitives](dst []uint64, src []byte) {
	s := newBitSource[P](src)
	for i := range dst {
		dst[i] = s.eliasDelta()
	}
}

func decodeEliasDeltaTo[P bitPrimitives](sink Sink, weight uint64, count int, src []byte) {
	s := newBitSource[P](src)
	sink.SetWeight(weight)

	var b Batch
	for ; count >= BatchSize; count -= BatchSize {
		for i := range b.IDs {
			b.IDs[i] = s.eliasDelta()
		}
		b.Len = BatchSize
		sink.EmitBatch(&b)
	}
	for ; count > 0; count-- {
		sink.Emit(s.eliasDelta(), weight)
	}
}

// eliasDelta decodes one value.
func (s *bitSource[P]) eliasDelta() uint64 {
	unary := s.zeros()
	n := s.read(unary+1)>>1 | 1<<unary // un-zig-zag
	return s.read(uint(n-1)) | 1<<(n-1)
}
