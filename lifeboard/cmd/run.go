package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sarchlab/lifeboard/config"
	"github.com/sarchlab/lifeboard/controller"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the board in real time, one generation every 100ms.",
	Args:  cobra.NoArgs,
	RunE:  runRealTime,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRealTime(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	display, keyboard, closeDisplay, err := openDisplay(
		cfg.Display, cmd.InOrStdin(), cmd.OutOrStdout(), cancel)
	if err != nil {
		return err
	}
	defer closeDisplay()

	if keyboard == nil && cfg.Buttons == config.ButtonsStdin {
		term, closeTerm := openTerminal(
			cmd.InOrStdin(), cmd.OutOrStdout(), cancel)
		defer closeTerm()

		keyboard = term
	}

	buttons, err := newButtons(cfg.Buttons, keyboard)
	if err != nil {
		return err
	}

	ctrl, err := buildController(cfg, buttons, display)
	if err != nil {
		return err
	}

	loop := controller.NewLoop(ctrl)

	obs, err := attachObservers(cfg, ctrl, loop)
	if err != nil {
		return err
	}

	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	return errors.Join(err, obs.close())
}
