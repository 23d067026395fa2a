// SPDX-License-Identifier: Apache-2.0

package vector

import (
	"fmt"
)

// Insert inserts elem at index i, shifting elements [i, Len()) one slot to
// the right, and returns the inserted element's address. i may equal Len(),
// which appends. The vector adopts elem as passed.
func (v *Vector[T]) Insert(i int, elem T) (*T, error) {
	return v.InsertFunc(i, func() (T, error) { return elem, nil })
}

// InsertFunc inserts the element produced by build at index i. When the
// vector is full, growth runs with the strong guarantee of PushBackFunc:
// the new element is constructed into the fresh block before anything
// relocates, and any failure restores the vector exactly. Within capacity
// the shift happens in place; a failure mid-shift leaves a valid vector
// whose element order reflects the completed steps. An out-of-range i
// panics.
func (v *Vector[T]) InsertFunc(i int, build func() (T, error)) (*T, error) {
	if i < 0 || i > v.size {
		panic(fmt.Sprintf("vector: insert position %d out of range with length %d", i, v.size))
	}
	if i == v.size {
		return v.PushBackFunc(build)
	}
	if v.size == v.data.capacity() {
		return v.growInsert(i, build)
	}
	w := v.data.view()
	if v.lc.plainData() {
		e, err := build()
		if err != nil {
			return nil, err
		}
		copy(w[i+1:v.size+1], w[i:v.size])
		w[i] = e
		v.size++
		return &w[i], nil
	}
	// open the gap from the back: the old last element moves into the raw
	// slot, the rest shift by move-assignment
	last, err := v.lc.take(&w[v.size-1])
	if err != nil {
		return nil, err
	}
	w[v.size] = last
	n := v.size
	v.size++
	for j := n - 1; j > i; j-- {
		t, err := v.lc.take(&w[j-1])
		if err != nil {
			return nil, err
		}
		v.lc.dispose(&w[j])
		w[j] = t
	}
	e, err := build()
	if err != nil {
		return nil, err
	}
	v.lc.dispose(&w[i])
	w[i] = e
	return &w[i], nil
}

func (v *Vector[T]) growInsert(i int, build func() (T, error)) (*T, error) {
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
	nw[i] = e
	prefix, suffix := 0, 0
	committed := false
	defer func() {
		if !committed {
			v.lc.disposeRange(nw[:prefix])
			v.lc.disposeRange(nw[i+1 : i+1+suffix])
			v.lc.dispose(&nw[i])
			fresh.release()
		}
	}()
	live := v.live()
	if err := v.relocateInto(nw[:i], live[:i], &prefix); err != nil {
		return nil, err
	}
	if err := v.relocateInto(nw[i+1:v.size+1], live[i:], &suffix); err != nil {
		return nil, err
	}
	committed = true
	v.replaceStorage(&fresh)
	v.size++
	return &nw[i], nil
}

// Remove disposes element i, shifting elements (i, Len()) one slot to the
// left. A failure mid-shift leaves a valid vector with the completed shifts
// applied and the length unchanged. An out-of-range i panics.
func (v *Vector[T]) Remove(i int) error {
	v.assertIndex(i)
	w := v.data.view()
	if v.lc.plainData() {
		copy(w[i:v.size-1], w[i+1:v.size])
		var zero T
		w[v.size-1] = zero
		v.size--
		return nil
	}
	for j := i; j < v.size-1; j++ {
		t, err := v.lc.take(&w[j+1])
		if err != nil {
			return err
		}
		v.lc.dispose(&w[j])
		w[j] = t
	}
	v.lc.dispose(&w[v.size-1])
	v.size--
	return nil
}
