// Package heap models an array-backed binary min-heap and generates
// replayable step traces for its mutating operations.
package heap

// Heap is a binary min-heap laid out in level order: the children of
// index i live at 2i+1 and 2i+2. Outside of a trace replay, every
// element is >= its parent.
type Heap []int

// Parent returns the parent index of i.
func Parent(i int) int {
	return (i - 1) / 2
}

// Left returns the left child index of i.
func Left(i int) int {
	return 2*i + 1
}

// Right returns the right child index of i.
func Right(i int) int {
	return 2*i + 2
}

// Len returns the number of elements.
func (h Heap) Len() int {
	return len(h)
}

// Clone returns an independent copy of the heap.
func (h Heap) Clone() Heap {
	if h == nil {
		return nil
	}

	c := make(Heap, len(h))
	copy(c, h)

	return c
}

// Valid reports whether the min-heap invariant holds for every element.
func (h Heap) Valid() bool {
	for i := 1; i < len(h); i++ {
		if h[i] < h[Parent(i)] {
			return false
		}
	}

	return true
}

// Min returns the root value and true, or zero and false when empty.
func (h Heap) Min() (int, bool) {
	if len(h) == 0 {
		return 0, false
	}

	return h[0], true
}
