package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sarchlab/lifeboard/controller"
	"github.com/sarchlab/lifeboard/peripheral"
	"github.com/sarchlab/lifeboard/recording"
)

// ErrNoSession is returned when a recording has no matching session.
var ErrNoSession = errors.New("no such session")

var replayCmd = &cobra.Command{
	Use:   "replay <database>",
	Short: "Print the frames of a recorded run.",
	Long: `Print the frames of a recorded run. Without --session, the latest ` +
		`session in the database is printed. --list only lists the sessions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := cmd.Flags().GetString("session")
		if err != nil {
			return err
		}

		list, err := cmd.Flags().GetBool("list")
		if err != nil {
			return err
		}

		return replay(args[0], session, list, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().String("session", "", "The session to print.")
	replayCmd.Flags().Bool("list", false, "List the sessions instead.")
}

func replay(path, session string, list bool, out io.Writer) error {
	r, err := recording.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	sessions, err := r.ListSessions()
	if err != nil {
		return err
	}

	if list {
		for _, s := range sessions {
			fmt.Fprintf(out, "%s  %s  %-12s %d ticks\n",
				s.ID, s.StartedAt.Local().Format("2006-01-02 15:04:05"),
				s.Name, s.Ticks)
		}

		return nil
	}

	session, err = pickSession(sessions, session)
	if err != nil {
		return err
	}

	reports, err := r.ListTicks(session)
	if err != nil {
		return err
	}

	for _, rep := range reports {
		printFrame(out, rep)
	}

	return nil
}

func pickSession(sessions []recording.Session, id string) (string, error) {
	if len(sessions) == 0 {
		return "", ErrNoSession
	}

	if id == "" {
		return sessions[len(sessions)-1].ID, nil
	}

	for _, s := range sessions {
		if s.ID == id {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNoSession, id)
}

func printFrame(out io.Writer, rep controller.TickReport) {
	fmt.Fprintf(out, "tick %d  %s", rep.Tick, rep.Action)

	if rep.Buttons.A {
		fmt.Fprint(out, "  [A]")
	}

	if rep.Buttons.B {
		fmt.Fprint(out, "  [B]")
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, peripheral.Render(rep.Board.Snapshot()))
	fmt.Fprintln(out)
}
