package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/orgparse/internal/diff"
	"github.com/gerunddev/orgparse/internal/styles"
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip FILE",
	Short: "Verify a file survives tokenizing and parsing unchanged",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoundtrip,
}

// roundtripPlain prints the raw unified diff instead of rendering it.
var roundtripPlain bool

// errRoundTrip is returned when a reconstruction differs from the source.
var errRoundTrip = errors.New("round trip mismatch")

func init() {
	roundtripCmd.Flags().BoolVar(&roundtripPlain, "plain", false, "print the unified diff without rendering")
	rootCmd.AddCommand(roundtripCmd)
}

func runRoundtrip(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	r := diff.RoundTrip(args[0], src)
	out := cmd.OutOrStdout()
	if r.ParseErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.WarningStyle.Render("! "+r.ParseErr.Error()))
	}
	if r.OK() {
		fmt.Fprintln(out, styles.SuccessStyle.Render("✓ "+args[0]+": round trip ok"))
		return nil
	}

	format := diff.FormatRendered
	if roundtripPlain {
		format = diff.FormatPlain
	}
	for _, u := range []string{r.Tokens, r.Document} {
		if u == "" {
			continue
		}
		rendered, err := diff.Render(u, format)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
	}
	return errRoundTrip
}
