package postings_codec

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/blevesearch/vellum"
)

// Dictionary maps terms to their segment lists.
// Terms live in an in-memory FST whose values are ordinals into lists.
type Dictionary struct {
	fst   *vellum.FST
	lists [][]Segment
}

// NewDictionary builds the FST over all terms. Segments of every term are
// reordered by impact, highest first (stable for equal impacts).
func NewDictionary(terms map[string][]Segment) (*Dictionary, error) {
	keys := make([]string, 0, len(terms))
	for term := range terms {
		keys = append(keys, term)
	}
	slices.Sort(keys)

	buf := bytes.NewBuffer(nil)
	builder, err := vellum.New(buf, nil)
	if err != nil {
		return nil, fmt.Errorf("dictionary: fst: %w", err)
	}

	lists := make([][]Segment, 0, len(keys))
	for i, term := range keys {
		err = builder.Insert([]byte(term), uint64(i))
		if err != nil {
			return nil, fmt.Errorf("dictionary: fst insert: %w", err)
		}
		segments := slices.Clone(terms[term])
		slices.SortStableFunc(segments, func(a, b Segment) int { return cmp.Compare(b.Impact, a.Impact) })
		lists = append(lists, segments)
	}

	err = builder.Close()
	if err != nil {
		return nil, fmt.Errorf("dictionary: fst close: %w", err)
	}

	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("dictionary: fst load: %w", err)
	}

	return &Dictionary{fst: fst, lists: lists}, nil
}

// Lookup returns the segments of the term.
func (d *Dictionary) Lookup(term []byte) ([]Segment, bool, error) {
	ord, ok, err := d.fst.Get(term)
	if err != nil {
		return nil, false, fmt.Errorf("dictionary: lookup: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	return d.lists[ord], true, nil
}

// Range calls fn for every term in [min,max] (inclusive, nil means open) in
// lexicographic order. The Term slice is only valid during the call.
func (d *Dictionary) Range(min, max []byte, fn func(ts TermSegments) error) error {
	// the FST iterator takes an exclusive upper bound, so max is checked manually
	it, err := d.fst.Iterator(min, nil)
	if errors.Is(err, vellum.ErrIteratorDone) {
		return nil
	} else if err != nil {
		return fmt.Errorf("dictionary: iterator: %w", err)
	}
	defer it.Close()

	for err == nil {
		term, ord := it.Current()
		if max != nil && bytes.Compare(term, max) > 0 {
			return nil
		}
		if err = fn(TermSegments{Term: term, Segments: d.lists[ord]}); err != nil {
			return err
		}
		err = it.Next()
	}
	if !errors.Is(err, vellum.ErrIteratorDone) {
		return fmt.Errorf("dictionary: iterator: %w", err)
	}
	return nil
}

func (d *Dictionary) Len() int { return d.fst.Len() }

func (d *Dictionary) Close() error { return d.fst.Close() }
