package postings_codec

import "errors"

// Segment locates one encoded run of document ids inside an Arena.
// All ids of the run share the same impact.
type Segment struct {
	Impact uint64
	// Count is the number of encoded ids, the stream does not carry it
	Count uint64
	// Offset and End are byte positions in the arena, End is exclusive
	Offset uint64
	End    uint64
}

// TermSegments contain the segments of one term, highest impact first.
type TermSegments struct {
	Term     []byte
	Segments []Segment
}

var (
	ErrSegmentBounds = errors.New("segment is out of arena bounds")
	ErrEmptySegment  = errors.New("segment has no postings")
)
