package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/heapwalk/pkg/config"
	"github.com/Sumatoshi-tech/heapwalk/pkg/plot"
)

// Plot command defaults.
const (
	defaultPlotOutput = "heapwalk.html"
	defaultPlotTitle  = "heapwalk"
)

type pageWriter func(w io.Writer, title string, runs []plot.OperationRun) error

// PlotCommand holds configuration and dependencies for the plot
// command.
type PlotCommand struct {
	configPath string
	scriptPath string
	outputPath string
	title      string
	seed       int64

	write pageWriter
}

// NewPlotCommand creates the plot command, which renders a script's
// run as a self-contained HTML page.
func NewPlotCommand() *cobra.Command {
	return newPlotCommandWithDeps(plot.WritePage)
}

func newPlotCommandWithDeps(write pageWriter) *cobra.Command {
	pc := &PlotCommand{write: write}

	cmd := &cobra.Command{
		Use:   "plot [operations...]",
		Short: "Render heap operations as an HTML page",
		Long: `Run a sequence of heap operations and render the result as a
self-contained HTML page: the final heap array, the heap size over
the step timeline, and per-operation compare/swap costs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          pc.run,
	}

	cmd.Flags().StringVarP(&pc.configPath, "config", "c", "", "Config file path (default: search .heapwalk.yaml)")
	cmd.Flags().StringVarP(&pc.scriptPath, "script", "s", "", "Operation script file (yaml or json)")
	cmd.Flags().StringVarP(&pc.outputPath, "output", "o", defaultPlotOutput, "Output HTML file")
	cmd.Flags().StringVar(&pc.title, "title", defaultPlotTitle, "Page title")
	cmd.Flags().Int64Var(&pc.seed, "seed", 0, "Seed for insert-random values (0 = time-based)")

	return cmd
}

func (pc *PlotCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(pc.configPath)
	if err != nil {
		return err
	}

	ops, err := gatherOperations(pc.scriptPath, args, pc.seed, cfg.Random.Min, cfg.Random.Max, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	runs := make([]plot.OperationRun, 0, len(ops))
	for _, run := range generateTraces(ops) {
		runs = append(runs, plot.OperationRun{Label: run.Label, Trace: run.Trace})
	}

	file, err := os.Create(pc.outputPath)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer file.Close()

	err = pc.write(file, pc.title, runs)
	if err != nil {
		return fmt.Errorf("render plot: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", pc.outputPath)

	return nil
}
