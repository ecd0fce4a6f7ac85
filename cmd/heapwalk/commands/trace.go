package commands

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/heapwalk/pkg/config"
	"github.com/Sumatoshi-tech/heapwalk/pkg/heap"
	"github.com/Sumatoshi-tech/heapwalk/pkg/persist"
)

// operationLabelSeparator joins per-operation labels into the trace
// file's operation field.
const operationLabelSeparator = "; "

type traceExporter func(path, operation string, trace heap.Trace) error

// TraceCommand holds configuration and dependencies for the trace
// command.
type TraceCommand struct {
	configPath string
	scriptPath string
	outputPath string
	seed       int64

	export traceExporter
}

// NewTraceCommand creates the trace command, which generates a step
// trace and writes it to a file for later replay.
func NewTraceCommand() *cobra.Command {
	return newTraceCommandWithDeps(persist.SaveTrace)
}

func newTraceCommandWithDeps(export traceExporter) *cobra.Command {
	tc := &TraceCommand{export: export}

	cmd := &cobra.Command{
		Use:   "trace [operations...]",
		Short: "Export a step trace to a file",
		Long: `Generate the full step trace for a sequence of heap operations and
write it to a file. The extension picks the codec: .json for plain
JSON, .json.lz4 for LZ4-compressed JSON. Replay with: heapwalk run
--from <file>.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          tc.run,
	}

	cmd.Flags().StringVarP(&tc.configPath, "config", "c", "", "Config file path (default: search .heapwalk.yaml)")
	cmd.Flags().StringVarP(&tc.scriptPath, "script", "s", "", "Operation script file (yaml or json)")
	cmd.Flags().StringVarP(&tc.outputPath, "output", "o", "", "Output trace file (.json or .json.lz4)")
	cmd.Flags().Int64Var(&tc.seed, "seed", 0, "Seed for insert-random values (0 = time-based)")

	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (tc *TraceCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(tc.configPath)
	if err != nil {
		return err
	}

	ops, err := gatherOperations(tc.scriptPath, args, tc.seed, cfg.Random.Min, cfg.Random.Max, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	labels := make([]string, 0, len(ops))
	combined := heap.Trace{}

	for _, run := range generateTraces(ops) {
		labels = append(labels, run.Label)
		combined = append(combined, run.Trace...)
	}

	operation := strings.Join(labels, operationLabelSeparator)

	err = tc.export(tc.outputPath, operation, combined)
	if err != nil {
		return fmt.Errorf("export trace: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s steps to %s\n",
		humanize.Comma(int64(len(combined))), tc.outputPath)

	return nil
}
