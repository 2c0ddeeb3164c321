package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gerunddev/orgparse/internal/check"
	"github.com/gerunddev/orgparse/internal/styles"
	"github.com/gerunddev/orgparse/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [DIR]",
	Short: "Re-check notes as they are written",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.NotesDir
	if len(args) == 1 {
		dir = args[0]
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l := newLogger(cmd.ErrOrStderr())
	w := watch.New(check.NewChecker(cfg, l), l)
	out := cmd.OutOrStdout()
	w.OnResult = func(r check.FileResult) {
		switch {
		case r.Err != nil:
			fmt.Fprintln(out, styles.ErrorStyle.Render("✗ "+r.Path)+styles.DimStyle.Render(": "+r.Err.Error()))
		case len(r.Diagnostics) > 0:
			fmt.Fprintln(out, styles.WarningStyle.Render(fmt.Sprintf("! %s: %d diagnostic(s)", r.Path, len(r.Diagnostics))))
		default:
			fmt.Fprintln(out, styles.SuccessStyle.Render("✓ "+r.Path)+styles.DimStyle.Render(fmt.Sprintf(" %d section(s)", r.Sections)))
		}
	}

	fmt.Fprintln(out, styles.HelpStyle.Render("Watching "+dir+" (ctrl+c to stop)"))
	return w.Run(ctx, dir)
}
