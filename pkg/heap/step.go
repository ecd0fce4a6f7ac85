package heap

// StepKind identifies one primitive action within a trace.
type StepKind string

// Step kind constants. The set is closed: generators emit nothing else,
// and consumers may treat an unknown kind as a programming error.
const (
	StepPush       StepKind = "push"
	StepCompare    StepKind = "compare"
	StepSwap       StepKind = "swap"
	StepPop        StepKind = "pop"
	StepRemoveRoot StepKind = "removeRoot"
	StepDone       StepKind = "done"
)

// Step is one primitive action plus the full array snapshot as it exists
// immediately after the action. A compare step does not mutate, so its
// snapshot equals the previous step's.
//
// The A and B slots are kind-dependent:
//
//	push        A = appended index
//	compare     A = child, B = parent or candidate smaller child
//	swap        A, B = exchanged indices
//	pop         A = removed (former last) index
//	removeRoot  A = root slot, B = current last slot
//	done        unused
type Step struct {
	Kind     StepKind `json:"kind"`
	A        int      `json:"a"`
	B        int      `json:"b"`
	Snapshot []int    `json:"snapshot"`
}

// Trace is the finite, immutable, ordered step log of one heap operation.
// It is empty only when the operation was a no-op (delete-min on an empty
// heap); collaborators must treat an empty trace as nothing to animate.
type Trace []Step

// Empty reports whether the trace contains no steps.
func (t Trace) Empty() bool {
	return len(t) == 0
}

// Final returns the array snapshot after the last step, or nil for an
// empty trace.
func (t Trace) Final() []int {
	if len(t) == 0 {
		return nil
	}

	return t[len(t)-1].Snapshot
}

// Counts returns the number of steps per kind.
func (t Trace) Counts() map[StepKind]int {
	counts := make(map[StepKind]int, len(t))
	for _, s := range t {
		counts[s.Kind]++
	}

	return counts
}

func snapshotOf(h Heap) []int {
	snap := make([]int, len(h))
	copy(snap, h)

	return snap
}

func pushStep(index int, h Heap) Step {
	return Step{Kind: StepPush, A: index, Snapshot: snapshotOf(h)}
}

func compareStep(a, b int, h Heap) Step {
	return Step{Kind: StepCompare, A: a, B: b, Snapshot: snapshotOf(h)}
}

func swapStep(a, b int, h Heap) Step {
	return Step{Kind: StepSwap, A: a, B: b, Snapshot: snapshotOf(h)}
}

func popStep(removed int, h Heap) Step {
	return Step{Kind: StepPop, A: removed, Snapshot: snapshotOf(h)}
}

func removeRootStep(root, last int, h Heap) Step {
	return Step{Kind: StepRemoveRoot, A: root, B: last, Snapshot: snapshotOf(h)}
}

func doneStep(h Heap) Step {
	return Step{Kind: StepDone, Snapshot: snapshotOf(h)}
}
