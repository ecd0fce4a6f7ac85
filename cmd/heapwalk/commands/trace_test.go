package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/heapwalk/pkg/heap"
)

type exporterStub struct {
	path      string
	operation string
	trace     heap.Trace
	err       error
}

func (s *exporterStub) export(path, operation string, trace heap.Trace) error {
	s.path = path
	s.operation = operation
	s.trace = trace

	return s.err
}

func TestTraceCommand_Export(t *testing.T) {
	stub := &exporterStub{}
	out := bytes.Buffer{}

	cmd := newTraceCommandWithDeps(stub.export)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"insert:5", "delete-min", "-o", "trace.json"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, "trace.json", stub.path)
	assert.Equal(t, "insert 5; delete-min", stub.operation)

	// insert into empty: push+done; delete-min of one element: removeRoot+done.
	require.Len(t, stub.trace, 4)
	assert.Equal(t, heap.StepPush, stub.trace[0].Kind)
	assert.Equal(t, heap.StepRemoveRoot, stub.trace[2].Kind)

	assert.Contains(t, out.String(), "wrote 4 steps to trace.json")
}

func TestTraceCommand_OutputRequired(t *testing.T) {
	cmd := newTraceCommandWithDeps((&exporterStub{}).export)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"insert:5"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
}

func TestTraceCommand_ExportFailure(t *testing.T) {
	wantErr := errors.New("disk full")
	stub := &exporterStub{err: wantErr}

	cmd := newTraceCommandWithDeps(stub.export)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"insert:5", "-o", "trace.json"})

	err := cmd.Execute()
	require.ErrorIs(t, err, wantErr)
}
