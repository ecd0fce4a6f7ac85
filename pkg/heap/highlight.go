package heap

import "fmt"

// HighlightKind classifies which visual emphasis a step calls for.
type HighlightKind string

// Highlight kind constants.
const (
	HighlightCompare    HighlightKind = "compare"
	HighlightSwap       HighlightKind = "swap"
	HighlightPush       HighlightKind = "push"
	HighlightPop        HighlightKind = "pop"
	HighlightRemoveRoot HighlightKind = "removeRoot"
	HighlightDone       HighlightKind = "done"
	HighlightNone       HighlightKind = "none"
)

// Highlight names the array positions a renderer should emphasize and how.
type Highlight struct {
	Kind    HighlightKind `json:"kind"`
	Indices []int         `json:"indices"`
}

// NoHighlight is the cleared descriptor published outside of any trace.
func NoHighlight() Highlight {
	return Highlight{Kind: HighlightNone, Indices: []int{}}
}

// HighlightFor maps a step to its highlight descriptor.
func HighlightFor(s Step) Highlight {
	switch s.Kind {
	case StepCompare:
		return Highlight{Kind: HighlightCompare, Indices: []int{s.A, s.B}}
	case StepSwap:
		return Highlight{Kind: HighlightSwap, Indices: []int{s.A, s.B}}
	case StepPush:
		return Highlight{Kind: HighlightPush, Indices: []int{s.A}}
	case StepPop:
		return Highlight{Kind: HighlightPop, Indices: []int{s.A}}
	case StepRemoveRoot:
		return Highlight{Kind: HighlightRemoveRoot, Indices: []int{s.A, s.B}}
	case StepDone:
		return Highlight{Kind: HighlightDone, Indices: []int{}}
	default:
		return NoHighlight()
	}
}

// Describe renders the step as a single pseudo-code line, naming the
// involved positions and values from the step's own snapshot.
func Describe(s Step) string {
	switch s.Kind {
	case StepPush:
		return fmt.Sprintf("push %d at index %d", s.Snapshot[s.A], s.A)
	case StepCompare:
		return fmt.Sprintf("compare heap[%d]=%d with heap[%d]=%d",
			s.A, s.Snapshot[s.A], s.B, s.Snapshot[s.B])
	case StepSwap:
		return fmt.Sprintf("swap heap[%d]=%d and heap[%d]=%d",
			s.A, s.Snapshot[s.A], s.B, s.Snapshot[s.B])
	case StepPop:
		return fmt.Sprintf("pop former index %d off the end", s.A)
	case StepRemoveRoot:
		return fmt.Sprintf("remove root heap[%d]=%d, last element at index %d",
			s.A, s.Snapshot[s.A], s.B)
	case StepDone:
		return "done: heap property restored"
	default:
		return ""
	}
}
