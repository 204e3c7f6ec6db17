package postings_codec

import (
	"fmt"
	"sync"
	"time"

	"github.com/lezhnev74/postings_codec/codec"
)

type poolItem[T any] struct {
	item     T
	lastUsed time.Time
}

// Pool works as sync.Pool but with eviction settings.
// Codecs carry a weight and scratch buffers, so each goroutine takes its own
// instance from here and returns it when done.
type Pool[T any] struct {
	list    []*poolItem[T]
	m       sync.Mutex
	factory func() T
	done    chan struct{}
	once    sync.Once

	// maxAge controls how long an object is allowed to stay in the pool since the last usage
	maxAge time.Duration
}

// Get returns the oldest object from the pool,
// otherwise creates a new one.
func (p *Pool[T]) Get() T {
	p.m.Lock()
	if len(p.list) == 0 {
		p.m.Unlock()
		return p.factory()
	}

	r := p.list[0].item
	p.list[0] = nil
	p.list = p.list[1:]
	p.m.Unlock()
	return r
}

// Put returns an object to the pool for future re-use
func (p *Pool[T]) Put(r T) {
	p.m.Lock()
	p.list = append(p.list, &poolItem[T]{r, time.Now()})
	p.m.Unlock()
}

// Len is the number of idle objects.
func (p *Pool[T]) Len() int {
	p.m.Lock()
	defer p.m.Unlock()
	return len(p.list)
}

func (p *Pool[T]) monitor() {
	t := time.NewTicker(p.maxAge)
	defer t.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-t.C:
		}
		p.evict(time.Now())
	}
}

// evict drops the objects idle for maxAge or longer.
func (p *Pool[T]) evict(now time.Time) {
	p.m.Lock()
	defer p.m.Unlock()

	x := 0
	for _, i := range p.list {
		if now.Sub(i.lastUsed) < p.maxAge {
			p.list[x] = i
			x++
		}
	}
	for j := x; j < len(p.list); j++ {
		p.list[j] = nil // gc
	}
	p.list = p.list[:x]
}

// Close stops the eviction monitor and drops idle objects.
func (p *Pool[T]) Close() {
	p.once.Do(func() { close(p.done) })
	p.m.Lock()
	p.list = nil
	p.m.Unlock()
}

func NewPool[T any](ttl time.Duration, factory func() T) *Pool[T] {
	p := &Pool[T]{
		list:    make([]*poolItem[T], 0),
		factory: factory,
		maxAge:  ttl,
		done:    make(chan struct{}),
	}

	go p.monitor()

	return p
}

// NewCodecPool pools instances of a registered codec.
func NewCodecPool(name string, ttl time.Duration) (*Pool[codec.IntegerCodec], error) {
	if _, err := codec.New(name); err != nil {
		return nil, fmt.Errorf("codec pool: %w", err)
	}
	return NewPool(ttl, func() codec.IntegerCodec {
		c, _ := codec.New(name)
		return c
	}), nil
}
