package heap_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/heapwalk/pkg/heap"
)

func kinds(t heap.Trace) []heap.StepKind {
	out := make([]heap.StepKind, len(t))
	for i, s := range t {
		out[i] = s.Kind
	}

	return out
}

func TestGenerateInsert(t *testing.T) {
	t.Parallel()

	t.Run("into_empty_heap", func(t *testing.T) {
		t.Parallel()

		trace := heap.GenerateInsert(heap.Heap{}, 5)

		assert.Equal(t, []heap.StepKind{heap.StepPush, heap.StepDone}, kinds(trace))
		assert.Equal(t, []int{5}, trace.Final())
	})

	t.Run("bubbles_to_root", func(t *testing.T) {
		t.Parallel()

		trace := heap.GenerateInsert(heap.Heap{1, 3, 2, 7}, 0)

		require.Equal(t, []heap.StepKind{
			heap.StepPush,
			heap.StepCompare, heap.StepSwap,
			heap.StepCompare, heap.StepSwap,
			heap.StepDone,
		}, kinds(trace))

		assert.Equal(t, heap.Step{Kind: heap.StepPush, A: 4, Snapshot: []int{1, 3, 2, 7, 0}}, trace[0])
		assert.Equal(t, 4, trace[1].A)
		assert.Equal(t, 1, trace[1].B)
		assert.Equal(t, []int{1, 0, 2, 7, 3}, trace[2].Snapshot)
		assert.Equal(t, 1, trace[3].A)
		assert.Equal(t, 0, trace[3].B)
		assert.Equal(t, []int{0, 1, 2, 7, 3}, trace.Final())
	})

	t.Run("stops_after_failed_compare", func(t *testing.T) {
		t.Parallel()

		trace := heap.GenerateInsert(heap.Heap{1, 3, 2, 7}, 9)

		// The losing comparison is still part of the trace.
		assert.Equal(t, []heap.StepKind{heap.StepPush, heap.StepCompare, heap.StepDone}, kinds(trace))
		assert.Equal(t, []int{1, 3, 2, 7, 9}, trace.Final())
	})

	t.Run("duplicate_stays_below_equal_parent", func(t *testing.T) {
		t.Parallel()

		trace := heap.GenerateInsert(heap.Heap{1, 3, 2}, 1)

		// The new 1 displaces the 3, then rests under the equal root:
		// no swap on equality.
		assert.Equal(t, []heap.StepKind{
			heap.StepPush,
			heap.StepCompare, heap.StepSwap,
			heap.StepCompare,
			heap.StepDone,
		}, kinds(trace))
		assert.Equal(t, []int{1, 1, 2, 3}, trace.Final())
	})

	t.Run("does_not_mutate_input", func(t *testing.T) {
		t.Parallel()

		h := heap.Heap{1, 3, 2, 7}
		heap.GenerateInsert(h, 0)

		assert.Equal(t, heap.Heap{1, 3, 2, 7}, h)
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		first := heap.GenerateInsert(heap.Heap{2, 4, 3}, 1)
		second := heap.GenerateInsert(heap.Heap{2, 4, 3}, 1)

		assert.Equal(t, first, second)
	})
}

func TestGenerateDeleteMin(t *testing.T) {
	t.Parallel()

	t.Run("empty_heap_yields_empty_trace", func(t *testing.T) {
		t.Parallel()

		trace := heap.GenerateDeleteMin(heap.Heap{})

		assert.True(t, trace.Empty())
		assert.Nil(t, trace.Final())
	})

	t.Run("single_element", func(t *testing.T) {
		t.Parallel()

		trace := heap.GenerateDeleteMin(heap.Heap{9})

		require.Equal(t, []heap.StepKind{heap.StepRemoveRoot, heap.StepDone}, kinds(trace))
		assert.Equal(t, 0, trace[0].A)
		assert.Equal(t, 0, trace[0].B)
		assert.Equal(t, []int{9}, trace[0].Snapshot)
		assert.Equal(t, []int{}, trace.Final())
	})

	t.Run("bubbles_down_with_trailing_compare", func(t *testing.T) {
		t.Parallel()

		trace := heap.GenerateDeleteMin(heap.Heap{0, 1, 2, 7, 3})

		require.Equal(t, []heap.StepKind{
			heap.StepRemoveRoot,
			heap.StepSwap,
			heap.StepPop,
			heap.StepCompare, heap.StepSwap,
			heap.StepCompare,
			heap.StepDone,
		}, kinds(trace))

		// removeRoot snapshots the original array before any mutation.
		assert.Equal(t, []int{0, 1, 2, 7, 3}, trace[0].Snapshot)
		assert.Equal(t, 0, trace[0].A)
		assert.Equal(t, 4, trace[0].B)

		assert.Equal(t, []int{3, 1, 2, 7, 0}, trace[1].Snapshot)
		assert.Equal(t, 4, trace[2].A)
		assert.Equal(t, []int{3, 1, 2, 7}, trace[2].Snapshot)

		// The final compare loses and is still emitted before done.
		assert.Equal(t, 1, trace[5].A)
		assert.Equal(t, 3, trace[5].B)
		assert.Equal(t, []int{1, 3, 2, 7}, trace.Final())
	})

	t.Run("tie_keeps_left_child", func(t *testing.T) {
		t.Parallel()

		trace := heap.GenerateDeleteMin(heap.Heap{0, 2, 2, 5})

		// After swap+pop the root is 5 over children 2,2; the left child
		// must be the comparison target.
		var compares []heap.Step

		for _, s := range trace {
			if s.Kind == heap.StepCompare {
				compares = append(compares, s)
			}
		}

		require.NotEmpty(t, compares)
		assert.Equal(t, 1, compares[0].B)
		assert.Equal(t, []int{2, 5, 2}, trace.Final())
	})

	t.Run("removed_value_is_original_min", func(t *testing.T) {
		t.Parallel()

		h := heap.Heap{1, 3, 2, 7, 4}
		min, ok := h.Min()
		require.True(t, ok)

		trace := heap.GenerateDeleteMin(h)

		assert.Equal(t, 1, min)
		assert.NotContains(t, trace.Final(), min)
		assert.Len(t, trace.Final(), h.Len()-1)
		assert.True(t, heap.Heap(trace.Final()).Valid())
	})

	t.Run("does_not_mutate_input", func(t *testing.T) {
		t.Parallel()

		h := heap.Heap{0, 1, 2, 7, 3}
		heap.GenerateDeleteMin(h)

		assert.Equal(t, heap.Heap{0, 1, 2, 7, 3}, h)
	})
}

func TestTraceInvariantProperties(t *testing.T) {
	t.Parallel()

	t.Run("inserts_always_restore_invariant", func(t *testing.T) {
		t.Parallel()

		rng := rand.New(rand.NewSource(42))

		for round := 0; round < 50; round++ {
			h := heap.Heap{}

			for n := 0; n < 30; n++ {
				trace := heap.GenerateInsert(h, rng.Intn(100))
				h = heap.Heap(trace.Final())

				require.True(t, h.Valid(), "round %d size %d: %v", round, n, h)
			}
		}
	})

	t.Run("delete_min_drains_in_sorted_order", func(t *testing.T) {
		t.Parallel()

		rng := rand.New(rand.NewSource(7))
		h := heap.Heap{}

		for n := 0; n < 40; n++ {
			h = heap.Heap(heap.GenerateInsert(h, rng.Intn(50)).Final())
		}

		prev, ok := h.Min()
		require.True(t, ok)

		for h.Len() > 0 {
			min, _ := h.Min()
			require.GreaterOrEqual(t, min, prev)
			prev = min

			trace := heap.GenerateDeleteMin(h)
			h = heap.Heap(trace.Final())
			require.True(t, h.Valid())
		}
	})
}

func TestTraceCounts(t *testing.T) {
	t.Parallel()

	trace := heap.GenerateInsert(heap.Heap{1, 3, 2, 7}, 0)
	counts := trace.Counts()

	assert.Equal(t, 1, counts[heap.StepPush])
	assert.Equal(t, 2, counts[heap.StepCompare])
	assert.Equal(t, 2, counts[heap.StepSwap])
	assert.Equal(t, 1, counts[heap.StepDone])
}
