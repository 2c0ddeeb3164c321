// Package commands wires the orgparse commands together with cobra.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gerunddev/orgparse/internal/config"
	"github.com/gerunddev/orgparse/internal/logger"
)

var version = "dev"

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "orgparse",
	Short: "Tokenize, parse and check org-mode notes",
	Long: `orgparse reads org-mode files into a lossless token stream and a
document tree of sections, headings, blocks, lists and inline markup.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig loads the config file named by --config, or the default one.
func loadConfig() (*config.Config, error) {
	if configFile != "" {
		path := configFile
		original := config.ConfigPath
		config.ConfigPath = func() string { return path }
		defer func() { config.ConfigPath = original }()
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger returns a logger writing to w at the level chosen by --verbose.
func newLogger(w io.Writer) *logger.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return logger.NewWithLevel(w, level)
}

// fileLogger opens the configured log file, falling back to discarding
// output when it cannot be opened.
func fileLogger(cfg *config.Config) (*logger.Logger, func()) {
	l, cleanup, err := logger.NewFileLogger(cfg.LogFile)
	if err != nil {
		return logger.Discard(), func() {}
	}
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l, cleanup
}

// readSource reads path, or standard input when path is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
