package postings_codec

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/lezhnev74/postings_codec/codec"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// TermSink is a codec.Sink that is told where postings lists of terms start and end.
type TermSink interface {
	codec.Sink
	BeginTerm(term []byte)
	EndTerm()
}

type WalkerConfig struct {
	// Registerer receives the walker counters, nil disables registration
	Registerer prometheus.Registerer
	Logger     *slog.Logger
	// Parallelism bounds DecodeParallel, 0 means GOMAXPROCS
	Parallelism int
}

// Walker decodes postings lists of a dictionary out of an arena into sinks.
// It is safe for concurrent use as long as the sinks are not shared: every
// call takes its own codec from the pool.
type Walker struct {
	arena       *Arena
	dict        *Dictionary
	codecs      *Pool[codec.IntegerCodec]
	metrics     *walkerMetrics
	log         *slog.Logger
	parallelism int
}

func NewWalker(arena *Arena, dict *Dictionary, codecs *Pool[codec.IntegerCodec], cfg WalkerConfig) (*Walker, error) {
	m, err := newWalkerMetrics(cfg.Registerer)
	if err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	return &Walker{
		arena:       arena,
		dict:        dict,
		codecs:      codecs,
		metrics:     m,
		log:         logger.With("component", "walker"),
		parallelism: parallelism,
	}, nil
}

func (w *Walker) decode(c codec.IntegerCodec, s Segment, sink codec.Sink) error {
	src, err := w.arena.Slice(s)
	if err != nil {
		return err
	}
	c.SetWeight(s.Impact)
	c.DecodeWithWriter(sink, int(s.Count), src)
	w.metrics.observe(s)
	return nil
}

// DecodeSegments pushes the segments into sink one after another.
func (w *Walker) DecodeSegments(segments []Segment, sink codec.Sink) error {
	c := w.codecs.Get()
	defer w.codecs.Put(c)

	for _, s := range segments {
		err := w.decode(c, s, sink)
		if err != nil {
			return fmt.Errorf("walker: decode: %w", err)
		}
	}
	return nil
}

// WalkTerm decodes all segments of the term, reports false for unknown terms.
func (w *Walker) WalkTerm(term []byte, sink codec.Sink) (bool, error) {
	segments, ok, err := w.dict.Lookup(term)
	if err != nil {
		return false, fmt.Errorf("walker: %w", err)
	}
	if !ok {
		return false, nil
	}
	return true, w.DecodeSegments(segments, sink)
}

// Walk visits terms in [min,max] (inclusive, nil means open) in order and
// decodes each one's segments between BeginTerm and EndTerm.
func (w *Walker) Walk(min, max []byte, sink TermSink) error {
	c := w.codecs.Get()
	defer w.codecs.Put(c)

	terms := 0
	err := w.dict.Range(min, max, func(ts TermSegments) error {
		sink.BeginTerm(ts.Term)
		for _, s := range ts.Segments {
			err := w.decode(c, s, sink)
			if err != nil {
				return fmt.Errorf("walker: term %q: %w", ts.Term, err)
			}
		}
		sink.EndTerm()
		terms++
		return nil
	})
	if err != nil {
		return err
	}

	w.log.Debug("walked dictionary", "terms", terms)
	return nil
}

// DecodeParallel decodes independent segments concurrently, segment i goes
// into sinkFor(i). Sinks returned for different segments must not be shared.
func (w *Walker) DecodeParallel(ctx context.Context, segments []Segment, sinkFor func(i int) codec.Sink) error {
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.parallelism)
	for i, s := range segments {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			c := w.codecs.Get()
			defer w.codecs.Put(c)

			err := w.decode(c, s, sinkFor(i))
			if err != nil {
				return fmt.Errorf("walker: segment %d: %w", i, err)
			}
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return err
	}

	w.log.Debug("decoded segments", "segments", len(segments), "took", time.Since(start))
	return nil
}
