// SPDX-License-Identifier: Apache-2.0

// Package vector provides a generic dynamic array that separates raw block
// storage from element lifetime. Elements are explicitly constructed into and
// disposed out of the block, growth never exposes half-built state, and a
// failed operation reports exactly how much of the container it disturbed.
package vector

import (
	"fmt"
)

// Vector is a contiguous growable sequence of T. Slots [0, Len()) hold live
// elements, slots [Len(), Cap()) are raw. Appending is amortised O(1) through
// capacity doubling, and indexed access goes straight to the block.
//
// The zero Vector is an empty vector with plain value semantics, ready to
// use. A Vector must not be mutated concurrently, nor read while mutated;
// distinct vectors are fully independent.
//
// Operations that can fail report errors instead of recovering anything: an
// allocation problem wraps ErrAllocation, a failure from a Lifecycle func is
// passed through unchanged. Out-of-range indexes and similar programming
// errors panic.
type Vector[T any] struct {
	data rawStorage[T]
	size int
	lc   Lifecycle[T]
}

// Option configures a Vector at construction time.
type Option[T any] func(*Vector[T])

// WithLifecycle installs the element lifecycle the vector will use for all
// element operations.
func WithLifecycle[T any](lc Lifecycle[T]) Option[T] {
	return func(v *Vector[T]) { v.lc = lc }
}

// New returns an empty vector with no storage. The zero Vector value works
// just as well; New exists to apply options.
func New[T any](opts ...Option[T]) *Vector[T] {
	v := &Vector[T]{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewWithSize returns a vector of size value-initialised elements, with
// capacity equal to size. If constructing any element fails, the elements
// built so far are disposed, the storage is dropped and the error is
// returned. A negative size panics.
func NewWithSize[T any](size int, opts ...Option[T]) (*Vector[T], error) {
	if size < 0 {
		panic(fmt.Sprintf("vector: negative size %d", size))
	}
	v := New[T](opts...)
	st, err := newRawStorage[T](size)
	if err != nil {
		return nil, err
	}
	w := st.view()
	placed := 0
	committed := false
	defer func() {
		if !committed {
			v.lc.disposeRange(w[:placed])
			st.release()
		}
	}()
	if v.lc.Init != nil {
		for i := range w {
			e, err := v.lc.construct()
			if err != nil {
				return nil, err
			}
			w[i] = e
			placed++
		}
	}
	// without an Init hook the zeroed slots already are the value-initialised
	// elements
	committed = true
	v.data = st
	v.size = size
	return v, nil
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of slots the current block can hold without
// reallocating.
func (v *Vector[T]) Cap() int {
	return v.data.capacity()
}

// live is the window of slots holding live elements.
func (v *Vector[T]) live() []T {
	return v.data.view()[:v.size]
}

func (v *Vector[T]) assertIndex(i int) {
	if i < 0 || i >= v.size {
		panic(fmt.Sprintf("vector: index %d out of range with length %d", i, v.size))
	}
}

// At returns the address of element i. The pointer stays valid until the
// vector's capacity changes or the element is shifted by an insert or
// remove.
func (v *Vector[T]) At(i int) *T {
	v.assertIndex(i)
	return v.data.slot(i)
}

// Get returns the value of element i.
func (v *Vector[T]) Get(i int) T {
	v.assertIndex(i)
	return *v.data.slot(i)
}

// Set replaces element i: the prior element is disposed and elem takes over
// its slot.
func (v *Vector[T]) Set(i int, elem T) {
	v.assertIndex(i)
	p := v.data.slot(i)
	v.lc.dispose(p)
	*p = elem
}

// Front returns the address of the first element. Panics when empty.
func (v *Vector[T]) Front() *T {
	if v.size == 0 {
		panic("vector: Front on empty vector")
	}
	return v.data.slot(0)
}

// Back returns the address of the last element. Panics when empty.
func (v *Vector[T]) Back() *T {
	if v.size == 0 {
		panic("vector: Back on empty vector")
	}
	return v.data.slot(v.size - 1)
}

// Clone returns a deep copy of the vector: every live element is copied
// through the lifecycle and the copy's capacity equals its length. A failing
// element copy disposes the partial copy and leaves the source untouched.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	out := &Vector[T]{lc: v.lc}
	st, err := newRawStorage[T](v.size)
	if err != nil {
		return nil, err
	}
	w := st.view()
	placed := 0
	committed := false
	defer func() {
		if !committed {
			v.lc.disposeRange(w[:placed])
			st.release()
		}
	}()
	if v.lc.plainData() {
		copy(w, v.live())
	} else {
		for _, src := range v.live() {
			e, err := v.lc.clone(src)
			if err != nil {
				return nil, err
			}
			w[placed] = e
			placed++
		}
	}
	committed = true
	out.data = st
	out.size = v.size
	return out, nil
}

// Move returns a vector that has taken over this vector's storage and
// elements; the receiver is left empty with zero capacity. Never fails.
func (v *Vector[T]) Move() *Vector[T] {
	out := &Vector[T]{size: v.size, lc: v.lc}
	out.data.moveFrom(&v.data)
	v.size = 0
	return out
}

// MoveFrom disposes the receiver's current elements, then takes over rhs's
// storage and elements; rhs keeps the receiver's old block, emptied, so its
// capacity can be reused. Never fails.
func (v *Vector[T]) MoveFrom(rhs *Vector[T]) {
	if v == rhs {
		return
	}
	v.lc.disposeRange(v.live())
	v.data.swap(&rhs.data)
	v.size, rhs.size = rhs.size, 0
	v.lc = rhs.lc
}

// CopyFrom makes the receiver an elementwise copy of rhs. When rhs does not
// fit the current block, a fresh deep copy is built first and swapped in, so
// a failure leaves the receiver untouched. Within capacity the copy happens
// in place: shared slots are assigned over, surplus slots disposed, missing
// slots cloned; a failure mid-way leaves a valid vector whose contents are
// whatever the completed steps produced.
func (v *Vector[T]) CopyFrom(rhs *Vector[T]) error {
	if v == rhs {
		return nil
	}
	if rhs.size > v.data.capacity() {
		fresh, err := rhs.Clone()
		if err != nil {
			return err
		}
		v.Swap(fresh)
		fresh.Release()
		return nil
	}
	dst, src := v.data.view(), rhs.live()
	if v.lc.plainData() && rhs.lc.plainData() {
		copy(dst, src)
		if rhs.size < v.size {
			clear(dst[rhs.size:v.size])
		}
		v.size = rhs.size
		v.lc = rhs.lc
		return nil
	}
	// incoming elements copy with rhs's semantics, surplus elements die with
	// the receiver's
	for i := 0; i < min(v.size, rhs.size); i++ {
		if err := rhs.lc.assign(&dst[i], src[i]); err != nil {
			return err
		}
	}
	switch {
	case rhs.size < v.size:
		v.lc.disposeRange(dst[rhs.size:v.size])
	case rhs.size > v.size:
		placed := v.size
		committed := false
		defer func() {
			if !committed {
				rhs.lc.disposeRange(dst[v.size:placed])
			}
		}()
		for i := v.size; i < rhs.size; i++ {
			e, err := rhs.lc.clone(src[i])
			if err != nil {
				return err
			}
			dst[i] = e
			placed++
		}
		committed = true
	}
	v.size = rhs.size
	v.lc = rhs.lc
	return nil
}

// Swap exchanges the contents, capacity and lifecycle of the two vectors.
// Never fails.
func (v *Vector[T]) Swap(o *Vector[T]) {
	if v == o {
		return
	}
	v.data.swap(&o.data)
	v.size, o.size = o.size, v.size
	v.lc, o.lc = o.lc, v.lc
}

// Clear disposes every live element and keeps the block, so the capacity
// survives for reuse.
func (v *Vector[T]) Clear() {
	v.lc.disposeRange(v.live())
	v.size = 0
}

// Release disposes every live element and drops the block. The vector is an
// empty, reusable vector afterwards. Vectors holding elements with a Dispose
// hook should be released when done; plain vectors can simply be dropped.
func (v *Vector[T]) Release() {
	v.Clear()
	v.data.release()
}

// growCapacity returns the capacity for one growth step: double the current
// capacity, or one slot for an empty block. Doubling keeps appending
// amortised O(1).
func (v *Vector[T]) growCapacity() int {
	if c := v.data.capacity(); c > 0 {
		return c * 2
	}
	return 1
}

// relocateInto places the live elements of src into dst, choosing move or
// copy by the lifecycle's relocation pivot. *placed is advanced after every
// slot of dst that received an element, so deferred cleanup sees an accurate
// count even when a lifecycle func panics instead of returning an error.
func (v *Vector[T]) relocateInto(dst, src []T, placed *int) error {
	if v.lc.plainData() {
		*placed += copy(dst, src)
		return nil
	}
	if v.lc.relocatesByMove() {
		for i := range src {
			e, err := v.lc.take(&src[i])
			if err != nil {
				return err
			}
			dst[i] = e
			*placed++
		}
		return nil
	}
	for i := range src {
		e, err := v.lc.clone(src[i])
		if err != nil {
			return err
		}
		dst[i] = e
		*placed++
	}
	return nil
}

// replaceStorage disposes the elements still sitting in the old block,
// installs the fresh one and drops the old. Callers have already relocated
// the surviving elements into fresh.
func (v *Vector[T]) replaceStorage(fresh *rawStorage[T]) {
	if !v.lc.plainData() {
		v.lc.disposeRange(v.live())
	}
	v.data.swap(fresh)
	fresh.release()
}

// Reserve grows the block to hold at least capacity slots; it never shrinks
// and does nothing when the block is already large enough. Live elements are
// relocated by the lifecycle's pivot: when relocation copies, any failure
// tears down the partial copy and leaves the vector exactly as it was.
func (v *Vector[T]) Reserve(capacity int) error {
	if capacity <= v.data.capacity() {
		return nil
	}
	fresh, err := newRawStorage[T](capacity)
	if err != nil {
		return err
	}
	nw := fresh.view()
	placed := 0
	committed := false
	defer func() {
		if !committed {
			v.lc.disposeRange(nw[:placed])
			fresh.release()
		}
	}()
	if err := v.relocateInto(nw[:v.size], v.live(), &placed); err != nil {
		return err
	}
	committed = true
	v.replaceStorage(&fresh)
	return nil
}

// Resize sets the number of live elements to size. Shrinking disposes the
// surplus elements. Growing reserves capacity, then value-initialises the
// new tail; if a tail element fails to construct, the partial tail is
// disposed and the length stays unchanged, though capacity gained by the
// reserve is kept. A negative size panics.
func (v *Vector[T]) Resize(size int) error {
	switch {
	case size < 0:
		panic(fmt.Sprintf("vector: negative size %d", size))
	case size < v.size:
		v.lc.disposeRange(v.live()[size:])
		v.size = size
	case size > v.size:
		if err := v.Reserve(size); err != nil {
			return err
		}
		if v.lc.Init != nil {
			w := v.data.view()[v.size:size]
			placed := 0
			committed := false
			defer func() {
				if !committed {
					v.lc.disposeRange(w[:placed])
				}
			}()
			for i := range w {
				e, err := v.lc.construct()
				if err != nil {
					return err
				}
				w[i] = e
				placed++
			}
			committed = true
		}
		v.size = size
	}
	return nil
}

// PushBack appends elem, growing the block if needed. The vector takes
// ownership of elem as passed; no lifecycle copy is made.
func (v *Vector[T]) PushBack(elem T) error {
	_, err := v.PushBackFunc(func() (T, error) { return elem, nil })
	return err
}

// PushBackFunc appends the element produced by build, constructing it
// directly for its slot, and returns the element's address. When build
// fails, the vector is untouched. When the vector is full, growth runs with
// the strong guarantee: the new element is constructed before any existing
// element relocates, and any failure disposes whatever the growth step
// produced (including the new element), leaving length, capacity and
// contents exactly as before the call.
func (v *Vector[T]) PushBackFunc(build func() (T, error)) (*T, error) {
	if v.size < v.data.capacity() {
		e, err := build()
		if err != nil {
			return nil, err
		}
		slot := v.data.slot(v.size)
		*slot = e
		v.size++
		return slot, nil
	}
	return v.growPushBack(build)
}

func (v *Vector[T]) growPushBack(build func() (T, error)) (*T, error) {
	fresh, err := newRawStorage[T](v.growCapacity())
	if err != nil {
		return nil, err
	}
	nw := fresh.view()
	e, err := build()
	if err != nil {
		fresh.release()
		return nil, err
	}
	nw[v.size] = e
	placed := 0
	committed := false
	defer func() {
		if !committed {
			v.lc.disposeRange(nw[:placed])
			v.lc.dispose(&nw[v.size])
			fresh.release()
		}
	}()
	if err := v.relocateInto(nw[:v.size], v.live(), &placed); err != nil {
		return nil, err
	}
	committed = true
	v.replaceStorage(&fresh)
	v.size++
	return &nw[v.size-1], nil
}

// Append appends all elems with at most one reallocation. Like PushBack it
// adopts the values as passed.
func (v *Vector[T]) Append(elems ...T) error {
	if len(elems) == 0 {
		return nil
	}
	need := v.size + len(elems)
	if need < v.size {
		return fmt.Errorf("vector: %d more slots overflow: %w", len(elems), ErrAllocation)
	}
	if need > v.data.capacity() {
		capacity := max(v.data.capacity(), 1)
		for capacity < need {
			capacity *= 2
			if capacity <= 0 {
				capacity = need
				break
			}
		}
		if err := v.Reserve(capacity); err != nil {
			return err
		}
	}
	copy(v.data.view()[v.size:], elems)
	v.size = need
	return nil
}

// PopBack disposes the last element. Panics when empty; never fails.
func (v *Vector[T]) PopBack() {
	if v.size == 0 {
		panic("vector: PopBack on empty vector")
	}
	v.lc.dispose(v.data.slot(v.size - 1))
	v.size--
}
