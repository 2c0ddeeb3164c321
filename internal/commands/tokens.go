package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/orgparse/internal/parser"
	"github.com/gerunddev/orgparse/internal/styles"
	"github.com/gerunddev/orgparse/internal/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream of a file",
	Long:  `Prints one token per line: kind, byte range and quoted text. Use - to read standard input.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

// tokensSkipSpace hides whitespace tokens.
var tokensSkipSpace bool

func init() {
	tokensCmd.Flags().BoolVar(&tokensSkipSpace, "no-space", false, "hide space and line break tokens")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	toks := parser.Tokens(src)
	out := cmd.OutOrStdout()
	for _, t := range toks {
		if tokensSkipSpace && t.Is(token.Space, token.LineBreak) {
			continue
		}
		line := fmt.Sprintf("%-16s %5d:%-5d %q", t.Kind, t.Start, t.End, t.Text)
		if d, ok := t.Payload.(token.Diagnostic); ok {
			line += "  " + d.Error()
		}
		fmt.Fprintln(out, styles.KindStyle(t.Kind).Render(line))
	}

	if diags := token.Diagnostics(toks); len(diags) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.WarningStyle.Render(fmt.Sprintf("%d diagnostic(s)", len(diags))))
	}
	return nil
}
