package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/joescharf/pidlock/internal/pidfile"
)

var runPIDPath string

var runCmd = &cobra.Command{
	Use:   "run --pid-file <file> -- <command> [args...]",
	Short: "Run a command while holding a PID file",
	Long: `Claim the PID file, record the command's process ID in it, run the
command, and remove the file when it exits — on every exit path,
including signals.

Fails if the PID file is held by a live process; a stale or corrupt file
left behind by a crash is reclaimed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRun(runPIDPath, args)
	},
}

func init() {
	runCmd.Flags().StringVar(&runPIDPath, "pid-file", "", "PID file to hold (required)")
	_ = runCmd.MarkFlagRequired("pid-file")
	rootCmd.AddCommand(runCmd)
}

func runRun(path string, args []string) error {
	p, err := pidfile.New(path, pidFileOptions()...)
	if err != nil {
		return err
	}

	existed, err := p.Create()
	if err != nil {
		var running *pidfile.AlreadyRunningError
		if errors.As(err, &running) {
			return fmt.Errorf("refusing to start: %s is held by running process %d", p.Path(), running.PID)
		}
		return err
	}
	defer p.Release()

	if existed {
		ui.VerboseLog("Reclaimed abandoned PID file %s", p.Path())
	}

	child := exec.Command(args[0], args[1:]...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	if err := child.Start(); err != nil {
		return fmt.Errorf("start %s: %w", args[0], err)
	}

	if err := p.WritePID(child.Process.Pid); err != nil {
		_ = child.Process.Kill()
		_ = child.Wait()
		return err
	}
	ui.VerboseLog("Holding %s for PID %d", p.Path(), child.Process.Pid)

	// Forward shutdown signals to the child; the deferred Release still
	// runs once the child exits.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals()...)
	defer signal.Stop(sigCh)
	go func() {
		for sig := range sigCh {
			_ = child.Process.Signal(sig)
		}
	}()

	return child.Wait()
}
