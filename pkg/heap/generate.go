package heap

// GenerateInsert computes the full step trace for inserting value into h.
// The input heap is not mutated. The trace always ends with a done step
// whose snapshot satisfies the min-heap invariant.
func GenerateInsert(h Heap, value int) Trace {
	work := h.Clone()
	if work == nil {
		work = Heap{}
	}

	work = append(work, value)
	i := len(work) - 1

	trace := Trace{pushStep(i, work)}

	// Bubble up: compare unconditionally, swap only while smaller than
	// the parent.
	for i > 0 {
		parent := Parent(i)
		trace = append(trace, compareStep(i, parent, work))

		if work[i] >= work[parent] {
			break
		}

		work[i], work[parent] = work[parent], work[i]
		trace = append(trace, swapStep(i, parent, work))
		i = parent
	}

	return append(trace, doneStep(work))
}

// GenerateDeleteMin computes the full step trace for removing the root
// of h. The input heap is not mutated. An empty heap yields an empty
// trace; otherwise the trace ends with a done step whose snapshot holds
// the remaining n-1 elements in heap order.
func GenerateDeleteMin(h Heap) Trace {
	if h.Len() == 0 {
		return Trace{}
	}

	work := h.Clone()
	last := len(work) - 1

	// The removeRoot marker snapshots the original, unmutated array.
	trace := Trace{removeRootStep(0, last, work)}

	if last == 0 {
		work = work[:0]

		return append(trace, doneStep(work))
	}

	work[0], work[last] = work[last], work[0]
	trace = append(trace, swapStep(0, last, work))

	work = work[:last]
	trace = append(trace, popStep(last, work))

	// Bubble down with the left-biased tie-break: the right child
	// replaces the candidate only on strict inequality.
	i := 0

	for {
		left := Left(i)
		if left >= len(work) {
			break
		}

		smaller := left
		if right := Right(i); right < len(work) && work[right] < work[left] {
			smaller = right
		}

		trace = append(trace, compareStep(i, smaller, work))

		if work[smaller] >= work[i] {
			break
		}

		work[i], work[smaller] = work[smaller], work[i]
		trace = append(trace, swapStep(i, smaller, work))
		i = smaller
	}

	return append(trace, doneStep(work))
}
