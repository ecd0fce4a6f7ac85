// Package plot renders an operation sequence as a self-contained HTML
// page of charts: the final heap, heap size over the step timeline, and
// the compare/swap cost of each operation.
package plot

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/heapwalk/pkg/heap"
)

// Series colors, matching the terminal legend where the kinds overlap.
const (
	colorHeap    = "#5470c6"
	colorCompare = "#fac858"
	colorSwap    = "#ee6666"
)

// OperationRun pairs an operation label with its generated trace.
type OperationRun struct {
	Label string
	Trace heap.Trace
}

// WritePage renders the full chart page for the given runs.
func WritePage(w io.Writer, title string, runs []OperationRun) error {
	page := components.NewPage()
	page.PageTitle = title

	page.AddCharts(
		finalHeapChart(runs),
		sizeTimelineChart(runs),
		costChart(runs),
	)

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render plot page: %w", err)
	}

	return nil
}

// finalHeapChart draws the level-order array after the last operation.
func finalHeapChart(runs []OperationRun) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Final heap (level order)",
			Subtitle: "index i has children at 2i+1 and 2i+2",
		}),
	)

	final := finalHeap(runs)

	labels := make([]string, len(final))
	values := make([]opts.BarData, len(final))

	for i, v := range final {
		labels[i] = fmt.Sprintf("[%d]", i)
		values[i] = opts.BarData{Value: v}
	}

	bar.SetXAxis(labels).
		AddSeries("value", values, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorHeap}))

	return bar
}

// sizeTimelineChart draws heap size after every applied step across all
// operations.
func sizeTimelineChart(runs []OperationRun) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Heap size per step"}),
	)

	var (
		labels []string
		sizes  []opts.LineData
	)

	step := 0

	for _, run := range runs {
		for _, s := range run.Trace {
			labels = append(labels, fmt.Sprintf("%d", step))
			sizes = append(sizes, opts.LineData{Value: len(s.Snapshot)})
			step++
		}
	}

	line.SetXAxis(labels).
		AddSeries("size", sizes, charts.WithLineStyleOpts(opts.LineStyle{Color: colorHeap}))

	return line
}

// costChart draws compares and swaps per operation side by side.
func costChart(runs []OperationRun) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Compares and swaps per operation"}),
	)

	labels := make([]string, len(runs))
	compares := make([]opts.BarData, len(runs))
	swaps := make([]opts.BarData, len(runs))

	for i, run := range runs {
		counts := run.Trace.Counts()
		labels[i] = run.Label
		compares[i] = opts.BarData{Value: counts[heap.StepCompare]}
		swaps[i] = opts.BarData{Value: counts[heap.StepSwap]}
	}

	bar.SetXAxis(labels).
		AddSeries("compares", compares, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorCompare})).
		AddSeries("swaps", swaps, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorSwap}))

	return bar
}

// finalHeap returns the snapshot after the last non-empty trace, walking
// backwards so trailing no-ops (empty delete-min traces) are skipped.
func finalHeap(runs []OperationRun) []int {
	for i := len(runs) - 1; i >= 0; i-- {
		if !runs[i].Trace.Empty() {
			return runs[i].Trace.Final()
		}
	}

	return nil
}
