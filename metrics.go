package postings_codec

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

type walkerMetrics struct {
	segments prometheus.Counter
	postings prometheus.Counter
	bytes    prometheus.Counter
}

// newWalkerMetrics registers the counters on reg; a nil reg leaves them unregistered.
// Counters already registered by another walker are shared.
func newWalkerMetrics(reg prometheus.Registerer) (*walkerMetrics, error) {
	m := &walkerMetrics{
		segments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "postings_segments_decoded_total",
			Help: "Total number of postings segments decoded",
		}),
		postings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "postings_decoded_total",
			Help: "Total number of postings decoded",
		}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "postings_decoded_bytes_total",
			Help: "Total number of encoded bytes decoded",
		}),
	}
	if reg == nil {
		return m, nil
	}

	for _, c := range []*prometheus.Counter{&m.segments, &m.postings, &m.bytes} {
		err := reg.Register(*c)
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(prometheus.Counter)
			if !ok {
				return nil, fmt.Errorf("walker metrics: %T is registered in place of a counter", are.ExistingCollector)
			}
			*c = existing
		} else if err != nil {
			return nil, fmt.Errorf("walker metrics: %w", err)
		}
	}
	return m, nil
}

func (m *walkerMetrics) observe(s Segment) {
	m.segments.Inc()
	m.postings.Add(float64(s.Count))
	m.bytes.Add(float64(s.End - s.Offset))
}
