// SPDX-License-Identifier: Apache-2.0

package vector

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrAllocation is returned when the underlying allocator cannot satisfy a
// storage request, for example because the requested byte size overflows.
// Errors reported by storage-growing operations wrap it, so callers can test
// for it with errors.Is.
var ErrAllocation = errors.New("vector: allocation failure")

// allocHook, when non-nil, may veto slot allocations before they reach the
// runtime. It exists so tests can exercise allocation-failure paths; regular
// builds never set it.
var allocHook func(slots int, bytes uintptr) error

// rawStorage owns one contiguous block of memory sized for cap slots of T.
// It knows nothing about which slots hold live elements; Vector tracks that.
// The block is allocated as typed memory so that pointers stored in slots
// stay visible to the garbage collector; all addressing goes through base
// with pointer arithmetic.
//
// A slot either holds a live element or the zero bit pattern. rawStorage
// itself only ever deals in zeroed memory: Go's allocator hands out zeroed
// blocks, and element teardown re-zeroes slots before they are considered
// raw again.
type rawStorage[T any] struct {
	base unsafe.Pointer // nil iff cap == 0
	cap  int
}

func sizeofSlot[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// newRawStorage allocates raw storage for n slots of T. n == 0 allocates
// nothing and yields the null storage. The error, if any, wraps
// ErrAllocation; no storage is retained on failure.
func newRawStorage[T any](n int) (rawStorage[T], error) {
	if n == 0 {
		return rawStorage[T]{}, nil
	}
	elem := sizeofSlot[T]()
	bytes := elem * uintptr(n)
	if elem != 0 && bytes/elem != uintptr(n) {
		return rawStorage[T]{}, fmt.Errorf("vector: %d slots of %d bytes overflow: %w", n, elem, ErrAllocation)
	}
	if allocHook != nil {
		if err := allocHook(n, bytes); err != nil {
			return rawStorage[T]{}, fmt.Errorf("vector: cannot allocate %d slots: %w", n, err)
		}
	}
	base, err := allocSlots[T](n)
	if err != nil {
		return rawStorage[T]{}, err
	}
	traceAlloc(n, bytes)
	return rawStorage[T]{base: base, cap: n}, nil
}

// allocSlots obtains a zeroed typed block for n slots. The runtime panics
// when a slice of that size cannot exist at all; that panic is translated
// into ErrAllocation so growth paths surface it as a regular error.
func allocSlots[T any](n int) (base unsafe.Pointer, err error) {
	defer func() {
		if recover() != nil {
			base, err = nil, fmt.Errorf("vector: cannot allocate %d slots: %w", n, ErrAllocation)
		}
	}()
	s := make([]T, n)
	return unsafe.Pointer(unsafe.SliceData(s)), nil
}

// release drops the block unconditionally and resets the storage to the
// null state. It never touches element lifetime: slots that still hold live
// elements are simply abandoned to the collector, which is why Vector always
// destroys elements first.
func (s *rawStorage[T]) release() {
	if s.base == nil {
		return
	}
	traceRelease(s.cap)
	s.base = nil
	s.cap = 0
}

// moveFrom transfers o's block into s; o becomes the null storage. The block
// s held before, if any, is abandoned to the collector.
func (s *rawStorage[T]) moveFrom(o *rawStorage[T]) {
	if s == o {
		return
	}
	s.base, s.cap = o.base, o.cap
	o.base, o.cap = nil, 0
}

// swap exchanges the two blocks. Never fails.
func (s *rawStorage[T]) swap(o *rawStorage[T]) {
	s.base, o.base = o.base, s.base
	s.cap, o.cap = o.cap, s.cap
}

// view returns the full-capacity window over the block. Positions past the
// last slot are expressed by slicing the view rather than by materialising a
// past-the-end pointer, which Go's pointer rules forbid.
func (s *rawStorage[T]) view() []T {
	if s.base == nil {
		return nil
	}
	return unsafe.Slice((*T)(s.base), s.cap)
}

// slot returns the address of slot i, 0 <= i < cap. Whether the slot holds a
// live element is the caller's business.
func (s *rawStorage[T]) slot(i int) *T {
	if i < 0 || i >= s.cap {
		panic(fmt.Sprintf("vector: slot %d out of range with capacity %d", i, s.cap))
	}
	return (*T)(unsafe.Add(s.base, uintptr(i)*sizeofSlot[T]()))
}

func (s *rawStorage[T]) capacity() int {
	return s.cap
}
