// Package commands implements CLI command handlers for heapwalk.
package commands

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/Sumatoshi-tech/heapwalk/pkg/heap"
	"github.com/Sumatoshi-tech/heapwalk/pkg/script"
)

var (
	// ErrNoOperations is returned when neither inline operations nor a
	// script file yield anything to run.
	ErrNoOperations = errors.New(
		"no operations given. Pass inline ops, e.g.: insert:5 delete-min insert-random, " +
			"or a script file via --script",
	)
)

// operationTrace pairs one heap operation label with its generated
// step trace.
type operationTrace struct {
	Label string
	Trace heap.Trace
}

// gatherOperations resolves the operation list from a script file or
// inline args, reports skipped malformed tokens to report, and replaces
// insert-random with concrete values drawn from [randomMin, randomMax].
// A zero seed derives one from the wall clock.
func gatherOperations(
	scriptPath string,
	args []string,
	seed int64,
	randomMin, randomMax int,
	report io.Writer,
) ([]script.Operation, error) {
	var ops []script.Operation

	if scriptPath != "" {
		loaded, err := script.Load(scriptPath)
		if err != nil {
			return nil, err
		}

		ops = loaded.Operations
	} else {
		var skipped []string

		ops, skipped = script.ParseArgs(args)
		for _, token := range skipped {
			fmt.Fprintf(report, "skipping malformed operation %q\n", token)
		}
	}

	if len(ops) == 0 {
		return nil, ErrNoOperations
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // animation values, not secrets

	return script.Resolve(&script.Script{Operations: ops}, rng, randomMin, randomMax), nil
}

// generateTraces runs the operations in order against one evolving
// heap, starting empty, and returns the per-operation traces.
func generateTraces(ops []script.Operation) []operationTrace {
	current := heap.Heap{}
	runs := make([]operationTrace, 0, len(ops))

	for _, op := range ops {
		var trace heap.Trace

		switch op.Op {
		case script.OpInsert:
			trace = heap.GenerateInsert(current, op.Value)
		case script.OpDeleteMin:
			trace = heap.GenerateDeleteMin(current)
		}

		if !trace.Empty() {
			current = heap.Heap(trace.Final())
		}

		runs = append(runs, operationTrace{Label: opLabel(op), Trace: trace})
	}

	return runs
}

// opLabel renders one operation for summaries and trace files.
func opLabel(op script.Operation) string {
	if op.Op == script.OpInsert {
		return fmt.Sprintf("insert %d", op.Value)
	}

	return string(op.Op)
}
