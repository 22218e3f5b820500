package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joescharf/pidlock/internal/output"
	"github.com/joescharf/pidlock/internal/pidfile"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui *output.UI

	verbose bool
	dryRun  bool

	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   "pidlock",
	Short: "Manage PID files for *nix daemons",
	Long: `pidlock creates, inspects, and cleans up PID files.

A PID file records the process ID of a running daemon. pidlock claims one
atomically (refusing if a live process holds it, reclaiming if the recorded
process is dead), reports its state, and removes it on exit.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would happen without making changes")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/pidlock/config.yaml)")
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot find home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "pidlock")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PIDLOCK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults via viper.SetDefault()
	viper.SetDefault("dir", defaultRunDir())
	viper.SetDefault("create.max_attempts", 0)

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

// defaultRunDir returns the directory scanned for PID files when none is
// given: the user's runtime dir if the OS provides one, else the temp dir.
func defaultRunDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose
	ui.DryRun = dryRun
}

// pidFileOptions builds the configured options for claiming a PID file.
func pidFileOptions() []pidfile.Option {
	return []pidfile.Option{
		pidfile.WithMaxAttempts(viper.GetInt("create.max_attempts")),
	}
}

// scanDir resolves the directory argument for list/clean: explicit argument
// first, configured default otherwise.
func scanDir(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return viper.GetString("dir")
}
