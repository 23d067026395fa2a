// SPDX-License-Identifier: Apache-2.0

package vector

import (
	"iter"
)

// Slice returns the live elements as a slice sharing the vector's block. It
// is valid until the next operation that changes the capacity or shifts
// elements; callers must not grow it or hold it across such operations.
func (v *Vector[T]) Slice() []T {
	return v.live()
}

// All returns an iterator over index/element pairs of the live elements, in
// order. The elements are yielded by value; mutating the vector while
// iterating invalidates the iterator.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, *v.data.slot(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over the live elements, in order, with the same
// rules as All.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(*v.data.slot(i)) {
				return
			}
		}
	}
}
