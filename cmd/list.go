package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joescharf/pidlock/internal/output"
	"github.com/joescharf/pidlock/internal/scan"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List PID files in a directory",
	Long: `List every *.pid file in a directory with the state of the process it
records: running, stale, or invalid.

Without an argument, scans the configured default directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRun(scanDir(args), listFormat)
	},
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "table", "Output format: table, json, or yaml")
	rootCmd.AddCommand(listCmd)
}

func listRun(dir, format string) error {
	entries, err := scan.Dir(dir)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(ui.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(ui.Out)
		defer enc.Close()
		return enc.Encode(entries)
	case "table":
		if len(entries) == 0 {
			ui.Info("No PID files in %s", dir)
			return nil
		}
		table := ui.Table([]string{"File", "PID", "State"})
		for _, e := range entries {
			pid := "-"
			if e.PID > 0 {
				pid = strconv.Itoa(e.PID)
			}
			table.Append([]string{filepath.Base(e.Path), pid, output.StateColor(string(e.State))})
		}
		return table.Render()
	default:
		return fmt.Errorf("unknown format: %s (want table, json, or yaml)", format)
	}
}
