package codec

import (
	"encoding/binary"
	"math/bits"

	"github.com/lezhnev74/postings_codec/maths"
)

// bitPrimitives are the two bit operations the decoder is built on.
// Both implementations must agree bit for bit.
type bitPrimitives interface {
	// trailingZeros counts zero bits below the lowest set bit of a non-zero x.
	trailingZeros(x uint64) uint
	// extract returns length bits of x starting at bit start (BEXTR).
	extract(x uint64, start, length uint) uint64
}

// hardwareBits relies on math/bits, which the compiler lowers to TZCNT/BSF.
type hardwareBits struct{}

func (hardwareBits) trailingZeros(x uint64) uint { return uint(bits.TrailingZeros64(x)) }

func (hardwareBits) extract(x uint64, start, length uint) uint64 {
	return (x >> start) & (uint64(1)<<length - 1)
}

// portableBits uses the byte tables of the maths package only.
type portableBits struct{}

func (portableBits) trailingZeros(x uint64) uint { return maths.TrailingZeros(x) }

func (portableBits) extract(x uint64, start, length uint) uint64 {
	if length == 0 {
		return 0
	}
	return x << (64 - start - length) >> (64 - length)
}

// bitSink ORs bit fields into a zeroed buffer, least significant bit first.
// Every write is a 64-bit read-modify-write at cursor/8, so the buffer needs
// Padding spare bytes behind the last byte that carries bits.
type bitSink struct {
	buf    []byte
	cursor uint64
}

// newBitSink zeroes dst and writes through its whole capacity.
func newBitSink(dst []byte) bitSink {
	clear(dst)
	return bitSink{buf: dst[:cap(dst)]}
}

// skip advances over bits that stay zero.
func (s *bitSink) skip(width uint) {
	s.cursor += uint64(width)
}

// write appends the low width bits of v, width <= 64; higher bits of v must be zero.
func (s *bitSink) write(v uint64, width uint) {
	if width == 0 {
		return
	}
	at := s.cursor / 8
	shift := uint(s.cursor % 8)
	word := binary.LittleEndian.Uint64(s.buf[at:])
	binary.LittleEndian.PutUint64(s.buf[at:], word|v<<shift)
	if shift+width > 64 {
		s.buf[at+8] |= byte(v >> (64 - shift))
	}
	s.cursor += uint64(width)
}

// len returns the number of bytes holding written bits.
func (s *bitSink) len() int {
	return int((s.cursor + 7) / 8)
}

// bitSource reads bit fields back in the order bitSink wrote them.
// word keeps the unconsumed bits of the current 64-bit window at the bottom,
// avail counts them; the bits above avail are always zero.
type bitSource[P bitPrimitives] struct {
	prim  P
	src   []byte
	next  int
	word  uint64
	avail uint
}

func newBitSource[P bitPrimitives](src []byte) bitSource[P] {
	return bitSource[P]{src: src[:cap(src)]}
}

func (s *bitSource[P]) load() {
	s.word = binary.LittleEndian.Uint64(s.src[s.next:])
	s.next += 8
	s.avail = 64
}

// zeros consumes a run of zero bits up to (not including) the next set bit
// and returns its length. The run may span several windows.
func (s *bitSource[P]) zeros() uint {
	var run uint
	for s.word == 0 {
		run += s.avail
		s.load()
	}
	tz := s.prim.trailingZeros(s.word)
	s.word >>= tz
	s.avail -= tz
	return run + tz
}

// read consumes width bits, width <= 64, carrying over into the next window
// when the current one runs out.
func (s *bitSource[P]) read(width uint) uint64 {
	if width <= s.avail {
		v := s.prim.extract(s.word, 0, width)
		s.word = s.word >> width
		s.avail -= width
		return v
	}

	have := s.avail
	low := s.word
	s.load()
	rest := width - have
	v := low | s.prim.extract(s.word, 0, rest)<<have
	s.word >>= rest
	s.avail -= rest
	return v
}

// consumed returns the number of bits read so far.
func (s *bitSource[P]) consumed() uint64 {
	return uint64(s.next)*8 - uint64(s.avail)
}
