package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/snipfmt/internal/samples"
	"github.com/jmylchreest/snipfmt/pkg/transform"
)

var sampleCmd = &cobra.Command{
	Use:   "sample <type>",
	Short: "Print a sample snippet to try the transforms on",
	Long: `Print a built-in sample document for html, css, js or json.

Examples:
  snipfmt sample css
  snipfmt sample js | snipfmt minify -t js --stats
  snipfmt sample html --minify`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: samples.Kinds(),
	RunE:      runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().Bool("minify", false, "print the sample minified")
}

func runSample(cmd *cobra.Command, args []string) error {
	if _, err := setup(); err != nil {
		return err
	}

	kind, err := transform.ParseKind(args[0])
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(samples.Kinds(), ", "))
	}
	text, err := samples.Get(string(kind))
	if err != nil {
		return err
	}

	t := transform.NewNoop()
	if minify, _ := cmd.Flags().GetBool("minify"); minify {
		if t, err = transform.For(kind, transform.Minify); err != nil {
			return err
		}
	}
	out, err := t.Transform(text)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), withNewline(out))
	return err
}
