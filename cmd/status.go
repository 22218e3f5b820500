package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/joescharf/pidlock/internal/output"
	"github.com/joescharf/pidlock/internal/pidfile"
	"github.com/joescharf/pidlock/internal/proc"
)

var statusCmd = &cobra.Command{
	Use:   "status <pid-file>",
	Short: "Report the state of a PID file",
	Long: `Report whether the process recorded in a PID file is running.

A missing file or invalid content both mean "not running" — the latter is
what a crashed writer leaves behind.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusRun(args[0])
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusRun(path string) error {
	p, err := pidfile.New(path)
	if err != nil {
		return err
	}

	pid, err := p.Get()
	if err != nil {
		var invalid *pidfile.InvalidContentError
		switch {
		case errors.Is(err, pidfile.ErrNotFound):
			ui.Info("%s: not running (no PID file)", p.Path())
			return nil
		case errors.As(err, &invalid):
			ui.Warning("%s: not running (%v)", p.Path(), invalid)
			return nil
		}
		return err
	}

	if proc.IsRunning(pid) {
		ui.Success("%s: %s (PID %d)", p.Path(), output.StateColor("running"), pid)
	} else {
		ui.Warning("%s: %s (PID %d no longer exists)", p.Path(), output.StateColor("stale"), pid)
	}
	return nil
}
