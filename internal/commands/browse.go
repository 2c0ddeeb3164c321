package commands

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gerunddev/orgparse/internal/parser"
	"github.com/gerunddev/orgparse/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse FILE",
	Short: "Browse the sections of a file interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	doc, err := parser.ParseOrg(src)
	if doc == nil || (err != nil && !errors.Is(err, parser.ErrPartialDocument)) {
		return err
	}

	return tui.Browse(args[0], doc, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
}
