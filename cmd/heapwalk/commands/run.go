package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/heapwalk/pkg/config"
	"github.com/Sumatoshi-tech/heapwalk/pkg/persist"
	"github.com/Sumatoshi-tech/heapwalk/pkg/playback"
	"github.com/Sumatoshi-tech/heapwalk/pkg/render"
)

// statePollInterval is how often the play loop checks whether the
// controller finished the current trace.
const statePollInterval = 5 * time.Millisecond

// PlaybackOptions holds runtime options for the animation loop.
type PlaybackOptions struct {
	// SpeedLevel is the playback speed level, 1 (slowest) to 10 (fastest).
	SpeedLevel int
	// Manual advances steps immediately instead of on a timer.
	Manual bool
	// Legend prints the color legend before the first frame.
	Legend bool
}

type playbackExecutor func(runs []operationTrace, opts PlaybackOptions, out io.Writer) error

// RunCommand holds configuration and dependencies for the run command.
type RunCommand struct {
	configPath string
	scriptPath string
	fromPath   string
	speedLevel int
	seed       int64
	manual     bool
	noColor    bool
	noLegend   bool

	exec playbackExecutor
}

// NewRunCommand creates the run command, which animates heap
// operations in the terminal.
func NewRunCommand() *cobra.Command {
	return newRunCommandWithDeps(executePlayback)
}

func newRunCommandWithDeps(exec playbackExecutor) *cobra.Command {
	rc := &RunCommand{exec: exec}

	cmd := &cobra.Command{
		Use:   "run [operations...]",
		Short: "Animate heap operations step by step",
		Long: `Animate min-heap operations step by step in the terminal.

Operations come from inline args (insert:5 delete-min insert-random),
a script file (--script), or a previously exported trace (--from).
Each step shows the array with the touched indices highlighted and a
pseudo-code line describing the step.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          rc.run,
	}

	cmd.Flags().StringVarP(&rc.configPath, "config", "c", "", "Config file path (default: search .heapwalk.yaml)")
	cmd.Flags().StringVarP(&rc.scriptPath, "script", "s", "", "Operation script file (yaml or json)")
	cmd.Flags().StringVar(&rc.fromPath, "from", "", "Replay a saved trace file (.json or .json.lz4)")
	cmd.Flags().IntVar(&rc.speedLevel, "speed-level", 0, "Playback speed level 1-10 (0 = from config)")
	cmd.Flags().Int64Var(&rc.seed, "seed", 0, "Seed for insert-random values (0 = time-based)")
	cmd.Flags().BoolVar(&rc.manual, "step", false, "Advance without delays instead of playing on a timer")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&rc.noLegend, "no-legend", false, "Suppress the color legend")

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rc.configPath)
	if err != nil {
		return err
	}

	if rc.noColor || cfg.Output.NoColor {
		color.NoColor = true
	}

	level := rc.speedLevel
	if level == 0 {
		level = cfg.Playback.SpeedLevel
	}

	runs, err := rc.collectRuns(cmd, args, cfg)
	if err != nil {
		return err
	}

	opts := PlaybackOptions{
		SpeedLevel: level,
		Manual:     rc.manual,
		Legend:     cfg.Output.Legend && !rc.noLegend,
	}

	return rc.exec(runs, opts, cmd.OutOrStdout())
}

func (rc *RunCommand) collectRuns(cmd *cobra.Command, args []string, cfg *config.Config) ([]operationTrace, error) {
	if rc.fromPath != "" {
		saved, err := persist.LoadTrace(rc.fromPath)
		if err != nil {
			return nil, err
		}

		return []operationTrace{{Label: saved.Operation, Trace: saved.Steps}}, nil
	}

	ops, err := gatherOperations(rc.scriptPath, args, rc.seed, cfg.Random.Min, cfg.Random.Max, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	return generateTraces(ops), nil
}

// executePlayback drives one controller through every trace, rendering
// each published frame and a per-operation summary.
func executePlayback(runs []operationTrace, opts PlaybackOptions, out io.Writer) error {
	term := render.NewTerminal(out)
	if opts.Legend {
		term.Legend()
	}

	ctrl := playback.NewController(playback.LevelInterval(opts.SpeedLevel))
	defer ctrl.Close()

	ctrl.OnFrame(func(f playback.Frame) {
		term.Frame(f)
	})

	for _, run := range runs {
		if run.Trace.Empty() {
			fmt.Fprintf(out, "%s: heap is empty, nothing to do\n", run.Label)

			continue
		}

		start := time.Now()

		ctrl.Load(run.Trace)

		if opts.Manual {
			for ctrl.State() == playback.StatePaused {
				ctrl.Step()
			}
		} else {
			ctrl.Play()
			for ctrl.State() == playback.StatePlaying {
				time.Sleep(statePollInterval)
			}
		}

		term.Summary(run.Label, run.Trace, time.Since(start))
	}

	return nil
}
