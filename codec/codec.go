// Package codec turns sequences of non-negative integers (document ids of one
// impact segment) into a compact bit-packed byte stream and back.
//
// Buffers follow a padding contract instead of runtime checks: encoders may
// write, and decoders may read, up to Padding bytes beyond the logical length
// of a buffer. The slack must be reachable through the slice capacity, e.g.
// buf[off:end] cut out of an arena that ends with Padding spare bytes.
// Codecs are not safe for concurrent use; take one instance per goroutine.
package codec

import (
	"fmt"
	"slices"
	"sync"
)

// Padding is the number of readable (and writable) bytes a buffer must have
// past its logical end: one machine word.
const Padding = 8

// BatchSize is the width of a Batch.
const BatchSize = 8

// Batch is a group of decoded ids delivered at once to vectorized consumers.
// Only IDs[:Len] carry values.
type Batch struct {
	IDs [BatchSize]uint64
	Len int
}

// Values returns the filled part of the batch.
func (b *Batch) Values() []uint64 { return b.IDs[:b.Len] }

// Sink receives decoded postings. The weight set through SetWeight applies to
// every id of the following batches.
type Sink interface {
	SetWeight(weight uint64)
	EmitBatch(b *Batch)
	Emit(id, weight uint64)
}

// IntegerCodec is the contract every integer compression scheme satisfies.
type IntegerCodec interface {
	Name() string
	// Encode writes src into dst and returns the number of bytes used.
	// len(dst) is the capacity of the destination.
	Encode(dst []byte, src []uint64) int
	// Decode fills dst with exactly len(dst) integers read from src.
	// The count must match the encoded one, the stream has no terminator.
	Decode(dst []uint64, src []byte)
	// SetWeight sets the impact passed along with ids by DecodeWithWriter.
	// It is not reset between calls.
	SetWeight(weight uint64)
	// DecodeWithWriter decodes count integers from src straight into sink.
	DecodeWithWriter(sink Sink, count int, src []byte)
}

// Checker is implemented by codecs that can tell whether src holds count
// well-formed values without trusting either.
type Checker interface {
	CheckEncoded(count int, src []byte) error
}

// Sizer is implemented by codecs that can report the exact encoded size of a
// sequence without encoding it.
type Sizer interface {
	EncodedLen(src []uint64) (int, error)
}

// emitAll delivers already materialized values: full batches through EmitBatch,
// the tail one by one.
func emitAll(sink Sink, weight uint64, values []uint64) {
	sink.SetWeight(weight)
	var b Batch
	for len(values) >= BatchSize {
		copy(b.IDs[:], values)
		b.Len = BatchSize
		sink.EmitBatch(&b)
		values = values[BatchSize:]
	}
	for _, v := range values {
		sink.Emit(v, weight)
	}
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() IntegerCodec{}
)

// Register makes a codec constructor available by name.
// Registering the same name twice panics.
func Register(name string, factory func() IntegerCodec) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("codec: %q registered twice", name))
	}
	registry[name] = factory
}

// New returns a fresh instance of the named codec.
func New(name string) (IntegerCodec, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return factory(), nil
}

// Names lists registered codecs in alphabetical order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
