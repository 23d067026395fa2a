package vector

import (
	"sync"
	"weak"
)

// Pool provides a thread-safe pool of Vector instances for reuse across
// request-scoped work. It uses weak pointers to allow garbage collection of
// unused vectors while maintaining a pool of warm, pre-sized vectors for
// high-frequency patterns.
//
// by storing PoolItem as weak pointers, the GC can collect them at any time
// before using a PoolItem, we try to get a strong pointer while removing it from the pool
// once we call Release, we turn the item back to the pool and make it a weak pointer again
// this means that at any time, GC can claim back the memory if required,
// allowing GC to automatically manage an appropriate pool size depending on available memory and GC pressure
type Pool[T any] struct {
	// pool is a slice of weak pointers to the struct holding the vector
	pool  []weak.Pointer[PoolItem[T]]
	sizes map[uint64]*poolItemSize
	opts  []Option[T]
	mu    sync.Mutex
}

// poolItemSize is used to track the capacity required across the last 50
// vectors released for a use case
type poolItemSize struct {
	count      int
	totalSlots int
}

// PoolItem wraps a Vector for use in the pool
type PoolItem[T any] struct {
	Vec *Vector[T]
	Key uint64
}

// NewPool creates a new Pool instance. The options are applied to every
// vector the pool creates, so pooled vectors share one lifecycle.
func NewPool[T any](opts ...Option[T]) *Pool[T] {
	return &Pool[T]{
		sizes: make(map[uint64]*poolItemSize),
		opts:  opts,
	}
}

// Acquire gets a vector from the pool or creates a new one if none are available.
// The key parameter is used to track vector capacities per use case for optimization.
func (p *Pool[T]) Acquire(key uint64) *PoolItem[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Try to find an available vector in the pool
	for len(p.pool) > 0 {
		// Pop the last item
		lastIdx := len(p.pool) - 1
		wp := p.pool[lastIdx]
		p.pool = p.pool[:lastIdx]

		v := wp.Value()
		if v != nil {
			v.Key = key
			return v
		}
		// If weak pointer was nil (GC collected), continue to next item
	}

	// No vector available, create a new one. The reserve is advisory; when it
	// fails the vector simply starts with no capacity.
	vec := New[T](p.opts...)
	_ = vec.Reserve(p.getVectorCapacity(key))
	return &PoolItem[T]{
		Vec: vec,
		Key: key,
	}
}

// Release returns a vector to the pool for reuse.
// The peak capacity is recorded to optimize future vector sizes for this use case.
func (p *Pool[T]) Release(item *PoolItem[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.releaseLocked(item)
}

// ReleaseMany returns a batch of vectors to the pool under a single lock
// acquisition.
func (p *Pool[T]) ReleaseMany(items []*PoolItem[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, item := range items {
		p.releaseLocked(item)
	}
}

func (p *Pool[T]) releaseLocked(item *PoolItem[T]) {
	peak := item.Vec.Cap()
	item.Vec.Clear()

	// Record the peak capacity for this use case
	if size, ok := p.sizes[item.Key]; ok {
		if size.count == 50 {
			size.count = 1
			size.totalSlots = size.totalSlots / 50
		}
		size.count++
		size.totalSlots += peak
	} else {
		p.sizes[item.Key] = &poolItemSize{
			count:      1,
			totalSlots: peak,
		}
	}

	item.Key = 0

	// Add the vector back to the pool using a weak pointer
	w := weak.Make(item)
	p.pool = append(p.pool, w)
}

// getVectorCapacity returns the capacity to pre-reserve for a given use case key.
// If no capacity is recorded, it defaults to 64 slots.
func (p *Pool[T]) getVectorCapacity(key uint64) int {
	if size, ok := p.sizes[key]; ok {
		return size.totalSlots / size.count
	}
	return 64
}
