package postings_codec

import (
	"fmt"
	"slices"

	"github.com/lezhnev74/postings_codec/codec"
	"github.com/lezhnev74/postings_codec/file"
)

// Arena is the shared postings byte buffer all segments are cut from.
// It keeps codec.Padding zero bytes behind its logical end, so every
// segment slice satisfies the read-ahead contract of the codecs.
type Arena struct {
	buf  []byte
	size int
}

// NewArena copies raw into a padded arena.
func NewArena(raw []byte) *Arena {
	buf := make([]byte, len(raw)+codec.Padding)
	copy(buf, raw)
	return &Arena{buf: buf, size: len(raw)}
}

// wrapArena adopts buf whose capacity already holds the padding.
func wrapArena(buf []byte) (*Arena, error) {
	if cap(buf)-len(buf) < codec.Padding {
		return nil, fmt.Errorf("arena: %w", codec.ErrShortPadding)
	}
	return &Arena{buf: buf[:len(buf)+codec.Padding], size: len(buf)}, nil
}

// LoadArena reads a raw arena file written by Save.
func LoadArena(dir, key string) (*Arena, error) {
	buf, err := file.ReadArena(dir, key)
	if err != nil {
		return nil, fmt.Errorf("load arena: %w", err)
	}
	return wrapArena(buf)
}

// Save writes the logical content to dir and returns the key to load it by.
func (a *Arena) Save(dir string) (string, error) {
	key, err := file.WriteArena(dir, a.Bytes())
	if err != nil {
		return "", fmt.Errorf("save arena: %w", err)
	}
	return key, nil
}

func (a *Arena) Len() int { return a.size }

// Bytes returns the logical content, without padding.
func (a *Arena) Bytes() []byte { return a.buf[:a.size:a.size] }

// Slice returns the bytes of a segment; the capacity of the slice reaches
// the arena padding.
func (a *Arena) Slice(s Segment) ([]byte, error) {
	if s.Offset > s.End || s.End > uint64(a.size) {
		return nil, fmt.Errorf("arena: %w: [%d,%d) of %d bytes", ErrSegmentBounds, s.Offset, s.End, a.size)
	}
	return a.buf[s.Offset:s.End], nil
}

// ArenaWriter appends encoded runs one after another.
// It is not thread-safe.
type ArenaWriter struct {
	codec *codec.Validating
	buf   []byte
}

func NewArenaWriter(c codec.IntegerCodec) *ArenaWriter {
	return &ArenaWriter{codec: codec.NewValidating(c)}
}

// Append encodes ids right after the previous run and returns its segment.
func (w *ArenaWriter) Append(impact uint64, ids []uint64) (Segment, error) {
	if len(ids) == 0 {
		return Segment{}, fmt.Errorf("arena writer: %w", ErrEmptySegment)
	}

	need := 2*codec.EncodeBound(len(ids)) + 64
	if sizer, ok := w.codec.IntegerCodec.(codec.Sizer); ok {
		n, err := sizer.EncodedLen(ids)
		if err != nil {
			return Segment{}, fmt.Errorf("arena writer: %w", err)
		}
		need = n + codec.Padding
	}

	offset := len(w.buf)
	w.buf = slices.Grow(w.buf, need)[:offset+need]
	n, err := w.codec.EncodeChecked(w.buf[offset:], ids)
	if err != nil {
		w.buf = w.buf[:offset]
		return Segment{}, fmt.Errorf("arena writer: %w", err)
	}
	w.buf = w.buf[:offset+n]

	return Segment{
		Impact: impact,
		Count:  uint64(len(ids)),
		Offset: uint64(offset),
		End:    uint64(offset + n),
	}, nil
}

func (w *ArenaWriter) Len() int { return len(w.buf) }

// Arena returns a padded copy of everything appended so far.
func (w *ArenaWriter) Arena() *Arena {
	return NewArena(w.buf)
}
