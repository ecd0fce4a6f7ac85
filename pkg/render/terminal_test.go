package render_test

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/heapwalk/pkg/heap"
	"github.com/Sumatoshi-tech/heapwalk/pkg/playback"
	"github.com/Sumatoshi-tech/heapwalk/pkg/render"
)

func TestMain(m *testing.M) {
	color.NoColor = true //nolint:reassign // deterministic plain-text assertions

	os.Exit(m.Run())
}

func TestFormatArray(t *testing.T) {
	t.Run("plain_without_highlight", func(t *testing.T) {
		got := render.FormatArray([]int{1, 3, 2}, heap.NoHighlight())

		assert.Equal(t, "[1 3 2]", got)
	})

	t.Run("empty_array", func(t *testing.T) {
		got := render.FormatArray([]int{}, heap.NoHighlight())

		assert.Equal(t, "[]", got)
	})

	t.Run("highlight_indices_survive_nocolor", func(t *testing.T) {
		hl := heap.Highlight{Kind: heap.HighlightSwap, Indices: []int{0, 2}}
		got := render.FormatArray([]int{1, 3, 2}, hl)

		assert.Equal(t, "[1 3 2]", got)
	})
}

func TestTerminalFrame(t *testing.T) {
	var buf bytes.Buffer

	term := render.NewTerminal(&buf)
	term.Frame(playback.Frame{
		Heap:       []int{1, 0, 2},
		Highlight:  heap.Highlight{Kind: heap.HighlightSwap, Indices: []int{0, 1}},
		PseudoText: "swap heap[1]=0 and heap[0]=1",
	})

	out := buf.String()
	assert.Contains(t, out, "swap")
	assert.Contains(t, out, "[1 0 2]")
	assert.Contains(t, out, "swap heap[1]=0 and heap[0]=1")
}

func TestTerminalLegend(t *testing.T) {
	var buf bytes.Buffer

	render.NewTerminal(&buf).Legend()

	out := buf.String()

	for _, kind := range []string{"push", "compare", "swap", "pop", "removeRoot", "done"} {
		assert.Contains(t, out, kind)
	}
}

func TestTerminalSummary(t *testing.T) {
	var buf bytes.Buffer

	trace := heap.GenerateInsert(heap.Heap{1, 3, 2, 7}, 0)
	render.NewTerminal(&buf).Summary("insert 0", trace, 1234*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "insert 0")
	assert.Contains(t, out, "6") // total steps
	assert.Contains(t, out, "2") // compares and swaps
	assert.Contains(t, out, "finished in 1.234s")
}
