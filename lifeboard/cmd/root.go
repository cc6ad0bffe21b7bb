// Package cmd provides the command-line interface of lifeboard.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/lifeboard/config"
)

// cfg is filled before any command runs.
var cfg *config.Config

// rootCmd runs the board in real time when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lifeboard",
	Short: "lifeboard plays Conway's Game of Life on a 5x5 light matrix.",
	Long: `lifeboard plays Conway's Game of Life on a 5x5 light matrix. ` +
		`Button A holds the board in a random shuffle, button B flips every ` +
		`cell, and a board that dies out is replaced after half a second.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runRealTime,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.Uint64("seed", 0, "Seed of the random boards, 0 for a system random seed.")
	f.String("board", "", "File with the first board, random when empty.")
	f.String("display", string(config.DisplayTerminal),
		"Where to show the board: terminal, sdl, or none.")
	f.String("buttons", config.ButtonsStdin,
		"Where buttons come from: stdin, none, or script:<a@1-3,b@5>.")
	f.Bool("record", false, "Record every tick into a SQLite database.")
	f.String("record-path", "", "Database to record into. Defaults to a new file.")
	f.Bool("monitor", false, "Serve the board on a web page.")
	f.Int("monitor-port", 0, "Port of the web page. Below 1000 picks a random port.")
	f.Bool("open-browser", false, "Open the web page when the monitor starts.")
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It never returns.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}

	err = applyFlags(cmd.Flags(), c)
	if err != nil {
		return err
	}

	cfg = c

	return nil
}

// applyFlags overrides the loaded settings with the flags given on the
// command line.
func applyFlags(flags *pflag.FlagSet, c *config.Config) error {
	var err error

	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}

		err = applyFlag(flags, f.Name, c)
	})

	return err
}

func applyFlag(flags *pflag.FlagSet, name string, c *config.Config) error {
	var err error

	switch name {
	case "seed":
		c.Seed, err = flags.GetUint64(name)
	case "board":
		c.BoardPath, err = flags.GetString(name)
	case "display":
		var s string
		if s, err = flags.GetString(name); err == nil {
			c.Display, err = config.ParseDisplay(s)
		}
	case "buttons":
		var s string
		if s, err = flags.GetString(name); err == nil {
			err = config.ValidateButtons(s)
			c.Buttons = s
		}
	case "record":
		c.Record, err = flags.GetBool(name)
	case "record-path":
		c.RecordPath, err = flags.GetString(name)
	case "monitor":
		c.Monitor, err = flags.GetBool(name)
	case "monitor-port":
		var port int
		if port, err = flags.GetInt(name); err == nil {
			err = config.ValidatePort(port)
			c.MonitorPort = port
		}
	case "open-browser":
		c.OpenBrowser, err = flags.GetBool(name)
	}

	if err != nil {
		return fmt.Errorf("flag --%s: %w", name, err)
	}

	return nil
}

func notice(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
