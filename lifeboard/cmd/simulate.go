package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sarchlab/lifeboard/config"
	"github.com/sarchlab/lifeboard/controller"
	"github.com/sarchlab/lifeboard/grid"
	"github.com/sarchlab/lifeboard/hooking"
	"github.com/sarchlab/lifeboard/monitoring"
	"github.com/sarchlab/lifeboard/peripheral"
	"github.com/sarchlab/lifeboard/timing"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a fixed number of ticks in virtual time as fast as possible.",
	Long: `Run a fixed number of ticks in virtual time as fast as possible. ` +
		`Buttons can only come from a script. The final board and how often ` +
		`each action was taken are printed at the end.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ticks, err := cmd.Flags().GetUint64("ticks")
		if err != nil {
			return err
		}

		frames, err := cmd.Flags().GetInt("frames")
		if err != nil {
			return err
		}

		return simulate(cfg, ticks, frames, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Uint64("ticks", 100, "Number of ticks to run.")
	simulateCmd.Flags().Int("frames", 0, "Also print the last N frames.")
}

// actionCounter is a hook that builds the action histogram of a run and
// advances the progress bar if there is one.
type actionCounter struct {
	counts [controller.NumActions]uint64
	bar    *monitoring.ProgressBar
}

func (h *actionCounter) Func(ctx hooking.HookCtx) {
	if ctx.Pos != controller.HookPosAfterTick {
		return
	}

	rep := ctx.Item.(controller.TickReport)
	h.counts[rep.Action]++

	if h.bar != nil {
		h.bar.IncrementFinished(1)
	}
}

// simulate runs the given number of ticks in virtual time and prints the
// last frames and a summary.
func simulate(c *config.Config, ticks uint64, frames int, out io.Writer) error {
	if ticks == 0 {
		return fmt.Errorf("%w: --ticks must be positive", config.ErrInvalidConfig)
	}

	if frames < 0 {
		return fmt.Errorf("%w: --frames must not be negative",
			config.ErrInvalidConfig)
	}

	buttons, err := newButtons(c.Buttons, nil)
	if err != nil {
		return err
	}

	recorder := peripheral.NewFrameRecorder(max(frames, 1))

	ctrl, err := buildController(c, buttons, recorder)
	if err != nil {
		return err
	}

	engine := timing.NewSerialEngine()
	comp := controller.NewComponent(ctrl, engine, ticks)

	obs, err := attachObservers(c, ctrl, engine)
	if err != nil {
		return err
	}

	counter := &actionCounter{}
	if obs.monitor != nil {
		engine.AcceptHook(obs.monitor)
		counter.bar = obs.monitor.CreateProgressBar("simulate", ticks)
		defer obs.monitor.CompleteProgressBar(counter.bar)
	}
	ctrl.AcceptHook(counter)

	comp.TickLater()

	err = engine.Run()
	if err != nil {
		return fmt.Errorf("simulating: %w", err)
	}

	err = obs.close()
	if err != nil {
		return err
	}

	if frames > 0 {
		printFrames(out, recorder.Frames(), ctrl.TickCount())
	}

	printSummary(out, ctrl, recorder, engine.CurrentTime(), counter)

	return nil
}

// printFrames prints the frames of the last ticks of a run, the last one
// shown at tick last.
func printFrames(out io.Writer, frames []grid.Pattern, last uint64) {
	first := last - uint64(len(frames)) + 1

	for i, f := range frames {
		fmt.Fprintf(out, "tick %d\n", first+uint64(i))
		fmt.Fprint(out, peripheral.Render(f))
		fmt.Fprintln(out)
	}
}

func printSummary(
	out io.Writer,
	ctrl *controller.Controller,
	recorder *peripheral.FrameRecorder,
	now timing.VTimeInSec,
	counter *actionCounter,
) {
	final, ok := recorder.Last()
	if !ok {
		final = ctrl.Board().Snapshot()
	}

	fmt.Fprintf(out, "%d ticks, %.1fs of virtual time\n\n",
		ctrl.TickCount(), float64(now))
	fmt.Fprint(out, peripheral.Render(final))
	fmt.Fprintln(out)

	for _, a := range controller.Actions() {
		fmt.Fprintf(out, "%-10s %d\n", a, counter.counts[a])
	}
}
