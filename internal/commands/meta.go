package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/orgparse/internal/meta"
	"github.com/gerunddev/orgparse/internal/styles"
)

var metaCmd = &cobra.Command{
	Use:   "meta FILE",
	Short: "Print note metadata as YAML",
	Long:  `Reads title, id, aliases, tags and refs from the preamble of a note without running the full parser.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runMeta,
}

func init() {
	rootCmd.AddCommand(metaCmd)
}

func runMeta(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	m := meta.Extract(src)
	out, err := m.YAML()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))

	if m.ID != "" && !m.ValidID() {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.WarningStyle.Render(fmt.Sprintf("! id %q is not a UUID", m.ID)))
	}
	return nil
}
