package cmd

import (
	"github.com/spf13/cobra"

	"github.com/joescharf/pidlock/internal/pidfile"
	"github.com/joescharf/pidlock/internal/scan"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [dir]",
	Short: "Remove stale and invalid PID files",
	Long: `Remove PID files whose recorded process is dead and files with corrupt
content. Files held by running processes are never touched.

Without an argument, cleans the configured default directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cleanRun(scanDir(args))
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func cleanRun(dir string) error {
	entries, err := scan.Dir(dir)
	if err != nil {
		return err
	}

	reclaimable := scan.Reclaimable(entries)
	if len(reclaimable) == 0 {
		ui.Info("Nothing to clean in %s", dir)
		return nil
	}

	for _, e := range reclaimable {
		if dryRun {
			ui.DryRunMsg("Would remove %s (%s)", e.Path, e.State)
			continue
		}

		p, err := pidfile.New(e.Path)
		if err != nil {
			return err
		}
		removed, err := p.Remove()
		if err != nil {
			return err
		}
		if removed {
			ui.Success("Removed %s (%s)", e.Path, e.State)
		}
	}
	return nil
}
