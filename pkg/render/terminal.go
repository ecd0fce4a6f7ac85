// Package render draws published playback frames and trace summaries on
// a terminal. It consumes only the published frame tuple; controller
// internals never leak in.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/heapwalk/pkg/heap"
	"github.com/Sumatoshi-tech/heapwalk/pkg/playback"
)

// kindColumnWidth pads the step kind so array columns line up.
const kindColumnWidth = 10

// Terminal renders frames line by line to a writer.
type Terminal struct {
	w io.Writer
}

// NewTerminal creates a renderer writing to w. Color output honors the
// global color.NoColor toggle.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Frame prints one published frame: the highlight kind, the array with
// emphasized cells, and the pseudo-code line.
func (t *Terminal) Frame(f playback.Frame) {
	fmt.Fprintf(t.w, "%-*s %s  %s\n",
		kindColumnWidth, string(f.Highlight.Kind),
		FormatArray(f.Heap, f.Highlight),
		f.PseudoText,
	)
}

// FormatArray renders the heap array with the highlighted indices
// colored according to the highlight kind.
func FormatArray(values []int, hl heap.Highlight) string {
	emphasized := make(map[int]bool, len(hl.Indices))
	for _, i := range hl.Indices {
		emphasized[i] = true
	}

	paint := kindColor(hl.Kind)
	cells := make([]string, len(values))

	for i, v := range values {
		cell := fmt.Sprintf("%d", v)
		if emphasized[i] {
			cell = paint.Sprint(cell)
		}

		cells[i] = cell
	}

	return "[" + strings.Join(cells, " ") + "]"
}

// Legend prints the highlight color key.
func (t *Terminal) Legend() {
	kinds := []heap.HighlightKind{
		heap.HighlightPush,
		heap.HighlightCompare,
		heap.HighlightSwap,
		heap.HighlightPop,
		heap.HighlightRemoveRoot,
		heap.HighlightDone,
	}

	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = kindColor(k).Sprint(string(k))
	}

	fmt.Fprintf(t.w, "legend: %s\n", strings.Join(parts, " "))
}

// Summary prints a per-kind step count table and the elapsed wall time
// for a finished operation.
func (t *Terminal) Summary(operation string, trace heap.Trace, elapsed time.Duration) {
	counts := trace.Counts()

	tw := table.NewWriter()
	tw.SetOutputMirror(t.w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"operation", "steps", "compares", "swaps"})
	tw.AppendRow(table.Row{
		operation,
		humanize.Comma(int64(len(trace))),
		humanize.Comma(int64(counts[heap.StepCompare])),
		humanize.Comma(int64(counts[heap.StepSwap])),
	})
	tw.Render()

	fmt.Fprintf(t.w, "finished in %s\n", elapsed.Round(time.Millisecond))
}

// kindColor maps a highlight kind to its terminal color.
func kindColor(kind heap.HighlightKind) *color.Color {
	switch kind {
	case heap.HighlightPush:
		return color.New(color.FgGreen)
	case heap.HighlightCompare:
		return color.New(color.FgYellow)
	case heap.HighlightSwap:
		return color.New(color.FgRed)
	case heap.HighlightPop:
		return color.New(color.FgMagenta)
	case heap.HighlightRemoveRoot:
		return color.New(color.FgCyan)
	case heap.HighlightDone:
		return color.New(color.FgGreen, color.Bold)
	default:
		return color.New(color.Reset)
	}
}
