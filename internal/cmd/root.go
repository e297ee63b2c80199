package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumipallolabs/disksearch/internal/config"
	"github.com/lumipallolabs/disksearch/internal/logging"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for disksearch
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disksearch",
		Short: "Parallel filesystem search by name",
		Long: `disksearch walks a directory tree with a pool of workers sharing one
work queue and prints every file or directory whose name contains a pattern.

Results are remembered so the next search for the same pattern can show
what appeared or disappeared in between.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "config file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")

	cmd.AddCommand(NewSearchCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewDrivesCommand())

	return cmd
}

// loadConfig reads --config (or the default location), applies --log-level
// and configures the debug loggers
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		if !logging.ValidLevel(level) {
			return nil, fmt.Errorf("unknown log level %q", level)
		}
		cfg.LogLevel = level
	}

	level, logFile := cfg.LogLevel, cfg.LogFile
	if !cmd.Flags().Changed("log-level") {
		// DISKSEARCH_DEBUG only ever raises verbosity
		if env, ok := logging.EnvLevel(); ok && env < logging.ParseLevel(level) {
			level = env.String()
			if logFile == "" {
				logFile = os.Getenv(logging.EnvLogFile)
			}
		}
	}

	if err := logging.Setup(level, logFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newConsole writes user-facing messages to the command's stderr
func newConsole(cmd *cobra.Command, cfg *config.Config) *logging.Console {
	return logging.NewConsole(cmd.ErrOrStderr(), cfg.LogLevel, cfg.Output.Color)
}
