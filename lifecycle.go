// SPDX-License-Identifier: Apache-2.0

package vector

// Lifecycle customises how a Vector constructs, copies, relocates and
// destroys its elements. Every field is optional: a nil func falls back to
// plain Go value semantics, so the zero Lifecycle describes ordinary data.
//
// Lifecycles exist for element types that own something beyond their bits,
// such as pooled buffers, file handles or reference-counted state. The container
// guarantees that between construction and disposal every element is touched
// only through these funcs, that each constructed element is disposed exactly
// once, and that a failed operation never abandons a half-built element.
type Lifecycle[T any] struct {
	// Init produces a value-initialised element. Used by sized construction
	// and by Resize when it grows the vector. nil means the zero value.
	Init func() (T, error)

	// Clone produces a new element copied from src. Used by Clone, CopyFrom
	// and by relocation when Move is fallible. nil means plain assignment.
	Clone func(src T) (T, error)

	// Assign copies src over the live element at dst, which keeps its
	// identity. Used by CopyFrom for slots live on both sides. nil means
	// plain assignment.
	Assign func(dst *T, src T) error

	// Move relocates the element at src into the returned value and leaves
	// src reset. Used during growth and when elements shift within the
	// block. nil means plain assignment followed by zeroing src, which
	// cannot fail.
	Move func(src *T) (T, error)

	// Dispose destroys a live element. It must not fail; the container
	// zeroes the slot afterwards. nil means the slot is only zeroed.
	Dispose func(*T)

	// NothrowMove declares that Move never returns an error, which lets
	// growth relocate by moving while keeping the strong guarantee. A nil
	// Move is always treated as non-throwing.
	NothrowMove bool

	// MoveOnly forbids copy operations entirely. Clone, CopyFrom and the
	// copying relocation path treat the element as impossible to duplicate;
	// invoking a copying operation on a move-only vector is a programming
	// error and panics.
	MoveOnly bool
}

// plainData reports whether elements are ordinary values with no hooks, so
// slot manipulation can degrade to bulk copies of memory. A move-only
// lifecycle is never plain: the bulk paths duplicate bits, and duplicating
// is exactly what MoveOnly forbids.
func (lc *Lifecycle[T]) plainData() bool {
	return !lc.MoveOnly && lc.Init == nil && lc.Clone == nil &&
		lc.Assign == nil && lc.Move == nil && lc.Dispose == nil
}

// relocatesByMove decides how live elements travel into a fresh block: move
// when moving cannot fail or when copying is impossible, copy otherwise.
// Copy is the fallback precisely because a failed copy leaves the source
// elements intact, preserving the strong guarantee.
func (lc *Lifecycle[T]) relocatesByMove() bool {
	return lc.Move == nil || lc.NothrowMove || lc.MoveOnly
}

// construct value-initialises one element.
func (lc *Lifecycle[T]) construct() (T, error) {
	if lc.Init != nil {
		return lc.Init()
	}
	var zero T
	return zero, nil
}

// clone copies the live element src into a new element.
func (lc *Lifecycle[T]) clone(src T) (T, error) {
	if lc.MoveOnly {
		panic("vector: element type is move-only, cannot copy")
	}
	if lc.Clone != nil {
		return lc.Clone(src)
	}
	return src, nil
}

// assign copies src over the live element at dst.
func (lc *Lifecycle[T]) assign(dst *T, src T) error {
	if lc.MoveOnly {
		panic("vector: element type is move-only, cannot copy")
	}
	if lc.Assign != nil {
		return lc.Assign(dst, src)
	}
	*dst = src
	return nil
}

// take moves the element out of src, leaving the slot reset. The slot still
// counts as occupied until it is disposed or overwritten.
func (lc *Lifecycle[T]) take(src *T) (T, error) {
	if lc.Move != nil {
		return lc.Move(src)
	}
	v := *src
	var zero T
	*src = zero
	return v, nil
}

// dispose destroys the live element at p and returns its slot to the raw
// (zeroed) state.
func (lc *Lifecycle[T]) dispose(p *T) {
	if lc.Dispose != nil {
		lc.Dispose(p)
	}
	var zero T
	*p = zero
}

// disposeRange destroys every element in slots, front to back.
func (lc *Lifecycle[T]) disposeRange(slots []T) {
	for i := range slots {
		lc.dispose(&slots[i])
	}
}
