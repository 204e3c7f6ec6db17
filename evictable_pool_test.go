package postings_codec

import (
	"testing"
	"time"

	"github.com/lezhnev74/postings_codec/codec"
	"github.com/stretchr/testify/require"
)

func TestPoolEvict(t *testing.T) {
	i := 0
	p := NewPool[*int](
		time.Millisecond*20,
		func() (j *int) {
			j = new(int)
			*j = i
			i++
			return
		},
	)
	defer p.Close()

	i1 := p.Get()
	p.Put(i1)                // reset the timer
	time.Sleep(p.maxAge * 4) // wait out
	i2 := p.Get()

	require.NotSame(t, i1, i2)
	require.Equal(t, 2, i)
}

func TestPoolReuse(t *testing.T) {
	i := 0
	p := NewPool[*int](
		time.Second,
		func() (j *int) {
			j = new(int)
			*j = i
			i++
			return
		},
	)
	defer p.Close()

	i1 := p.Get()
	p.Put(i1)
	require.Equal(t, 1, p.Len())
	i2 := p.Get()

	require.Same(t, i1, i2)
	require.Equal(t, 0, p.Len())
}

func TestPoolEvictKeepsFresh(t *testing.T) {
	p := NewPool(time.Hour, func() int { return 1 })
	defer p.Close()

	p.Put(1)
	p.Put(2)
	p.evict(time.Now())
	require.Equal(t, 2, p.Len())

	p.evict(time.Now().Add(2 * time.Hour))
	require.Equal(t, 0, p.Len())
}

func TestCodecPool(t *testing.T) {
	p, err := NewCodecPool(codec.EliasDeltaName, time.Minute)
	require.NoError(t, err)
	defer p.Close()

	c1 := p.Get()
	c2 := p.Get()
	require.NotSame(t, c1, c2)
	require.Equal(t, codec.EliasDeltaName, c1.Name())

	_, err = NewCodecPool("nope", time.Minute)
	require.ErrorIs(t, err, codec.ErrUnknownCodec)
}
