package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/orgparse/internal/check"
	"github.com/gerunddev/orgparse/internal/tui"
)

var checkCmd = &cobra.Command{
	Use:   "check [DIR]",
	Short: "Parse every note under a directory",
	Long: `Parses every note under DIR (default: notes_dir from the config) on a
bounded pool of workers and reports files that fail, parse only in part or
carry lexer diagnostics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

var (
	checkPlain   bool
	checkWorkers int
)

func init() {
	checkCmd.Flags().BoolVar(&checkPlain, "plain", false, "print the summary without the progress spinner")
	checkCmd.Flags().IntVarP(&checkWorkers, "workers", "w", 0, "number of parallel parsers (default from config)")
	rootCmd.AddCommand(checkCmd)
}

// errCheckFailed makes the command exit non-zero after the summary is shown.
var errCheckFailed = errors.New("some notes failed to parse")

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if checkWorkers > 0 {
		cfg.Workers = checkWorkers
	}
	dir := cfg.NotesDir
	if len(args) == 1 {
		dir = args[0]
	}

	var result *check.Result
	if checkPlain {
		l := newLogger(cmd.ErrOrStderr())
		l.ConfigLoaded(cfg.NotesDir, cfg.Workers, cfg.ParseTimeout)
		result, err = check.NewChecker(cfg, l).Run(cmd.Context(), dir)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), tui.Summary(result))
	} else {
		// The spinner owns the terminal, so log to the file instead.
		l, cleanup := fileLogger(cfg)
		defer cleanup()
		result, err = tui.RunCheck(cmd.Context(), check.NewChecker(cfg, l), dir, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	if len(result.Failed()) > 0 {
		return errCheckFailed
	}
	return nil
}
