package playback

import "github.com/Sumatoshi-tech/heapwalk/pkg/heap"

// Frame is the read-only tuple published every time a step is applied:
// the heap snapshot after the step, the highlight descriptor, the
// pseudo-code line, and whether the controller is currently playing.
type Frame struct {
	Heap       []int          `json:"heap"`
	Highlight  heap.Highlight `json:"highlight"`
	PseudoText string         `json:"pseudoText"`
	Playing    bool           `json:"playing"`
}

// Listener receives each published frame. Listeners are invoked
// synchronously inside the applying call or timer tick and must not call
// back into the Controller.
type Listener func(Frame)

func emptyFrame() Frame {
	return Frame{Heap: []int{}, Highlight: heap.NoHighlight()}
}
