package commands

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/snipfmt/internal/config"
	"github.com/jmylchreest/snipfmt/internal/logger"
	"github.com/jmylchreest/snipfmt/internal/output"
	"github.com/jmylchreest/snipfmt/internal/source"
	"github.com/jmylchreest/snipfmt/pkg/base64img"
	"github.com/jmylchreest/snipfmt/pkg/transform"
)

var minifyCmd = newTransformCmd(transform.Minify, "Minify HTML, CSS, JavaScript or JSON", `Minify a file, stdin or a URL.

The type is taken from --type, or inferred from the file extension, the URL
path or the response content type.

Examples:
  snipfmt minify app.js -o app.min.js
  snipfmt minify -t json < data.json
  snipfmt minify -u https://example.com --select style --report json
  snipfmt minify --base64 widget.js`)

var beautifyCmd = newTransformCmd(transform.Beautify, "Beautify HTML, CSS, JavaScript or JSON", `Beautify a file, stdin or a URL with 4-space indentation.

Examples:
  snipfmt beautify app.min.css
  snipfmt beautify -t js -o pretty.js < bundle.js
  snipfmt beautify -u https://example.com/data.json`)

func init() {
	rootCmd.AddCommand(minifyCmd, beautifyCmd)
}

func newTransformCmd(dir transform.Direction, short, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(dir) + " [file]",
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, args, dir)
		},
	}

	flags := cmd.Flags()

	// Input
	flags.StringP("type", "t", "", "input type: html, css, js, json (inferred when omitted)")
	flags.StringP("url", "u", "", "fetch input from a URL")
	flags.String("select", "", "CSS selector; use the text of matching elements as input (e.g. style, script)")
	flags.Duration("timeout", config.DefaultFetchTimeout, "URL fetch timeout")
	flags.String("user-agent", "", "User-Agent for URL fetches")

	// Output
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.Bool("stats", false, "print size statistics to stderr")
	flags.String("report", "", "write a report instead of content to stdout: json, jsonl, yaml, text")
	flags.Bool("base64", false, "Base64-encode the result")

	return cmd
}

func runTransform(cmd *cobra.Command, args []string, dir transform.Direction) error {
	bindFlags(cmd.Flags(), map[string]string{
		"fetch.timeout":    "timeout",
		"fetch.user_agent": "user-agent",
		"report.format":    "report",
	})
	cfg, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	typeFlag, _ := cmd.Flags().GetString("type")
	urlFlag, _ := cmd.Flags().GetString("url")
	selector, _ := cmd.Flags().GetString("select")
	outPath, _ := cmd.Flags().GetString("output")
	showStats, _ := cmd.Flags().GetBool("stats")

	if urlFlag != "" && len(args) > 0 {
		return fmt.Errorf("use either a file argument or --url, not both")
	}

	src, err := loadSource(ctx, cmd.InOrStdin(), args, urlFlag, selector, cfg)
	if err != nil {
		return err
	}

	kind, err := resolveKind(typeFlag, src, selector)
	if err != nil {
		return err
	}
	logger.Debug("transform starting", "source", src.Name, "kind", kind, "direction", dir)

	var then []transform.Transformer
	if encode, _ := cmd.Flags().GetBool("base64"); encode {
		then = append(then, base64img.Encoder())
	}

	res, err := transform.Process(kind, dir, src.Text, then...)
	if err != nil {
		return err
	}

	var report output.Writer
	if cfg.Report.Format != "" {
		format, err := output.ParseFormat(cfg.Report.Format)
		if err != nil {
			return err
		}
		if report, err = output.NewWriter(cmd.OutOrStdout(), format); err != nil {
			return err
		}
	}

	switch {
	case outPath != "":
		if err := os.WriteFile(outPath, []byte(res.Output), 0o644); err != nil { //#nosec G306 -- output is a user-requested text file
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		logInfo("wrote %s", outPath)
	case report == nil:
		if _, err := io.WriteString(cmd.OutOrStdout(), withNewline(res.Output)); err != nil {
			return err
		}
	}

	if showStats {
		fmt.Fprint(cmd.ErrOrStderr(), res.Stats.String())
	}

	if report != nil {
		rec := output.NewRecord(src.Name, kind, dir, res, nil)
		rec.Target = outPath
		if err := report.Write(rec); err != nil {
			return err
		}
		return report.Close()
	}
	return nil
}

// loadSource reads the input from a URL, a file argument or stdin.
func loadSource(ctx context.Context, stdin io.Reader, args []string, rawURL, selector string, cfg *config.Config) (*source.Source, error) {
	opts := source.Options{
		MaxSize:  cfg.MaxInputBytes(),
		Selector: selector,
	}

	switch {
	case rawURL != "":
		return source.Fetch(ctx, rawURL, source.FetchOptions{
			Options:   opts,
			UserAgent: cfg.Fetch.UserAgent,
			Timeout:   cfg.Fetch.Timeout,
		})
	case len(args) > 0 && args[0] != "-":
		return source.ReadFile(args[0], opts)
	default:
		return source.Read(stdin, "-", opts)
	}
}

// resolveKind picks the transform kind: the explicit flag, then the selector,
// then the source name, then its content type.
func resolveKind(typeFlag string, src *source.Source, selector string) (transform.Kind, error) {
	if typeFlag != "" {
		return transform.ParseKind(typeFlag)
	}
	if selector != "" {
		if kind, ok := kindFromSelector(selector); ok {
			return kind, nil
		}
	}

	name := src.Name
	if u, err := url.Parse(name); err == nil && u.Scheme != "" {
		name = u.Path
	}
	if kind, err := transform.KindFromPath(name); err == nil {
		return kind, nil
	}
	if kind, ok := kindFromContentType(src.ContentType); ok && selector == "" {
		return kind, nil
	}
	return "", fmt.Errorf("cannot infer input type for %s, use --type", src.Name)
}

// kindFromSelector maps selectors that target raw-text elements to the
// language inside them.
func kindFromSelector(selector string) (transform.Kind, bool) {
	first, _, _ := strings.Cut(strings.TrimSpace(selector), ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return "", false
	}
	last := strings.ToLower(fields[len(fields)-1])
	switch {
	case strings.HasPrefix(last, "style"):
		return transform.KindCSS, true
	case strings.HasPrefix(last, "script[type=application/ld+json]"),
		strings.HasPrefix(last, `script[type="application/ld+json"]`),
		strings.HasPrefix(last, `script[type="application/json"]`):
		return transform.KindJSON, true
	case strings.HasPrefix(last, "script"):
		return transform.KindJS, true
	}
	return "", false
}

func kindFromContentType(contentType string) (transform.Kind, bool) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	switch mt {
	case "text/html", "application/xhtml+xml":
		return transform.KindHTML, true
	case "text/css":
		return transform.KindCSS, true
	case "text/javascript", "application/javascript", "application/x-javascript":
		return transform.KindJS, true
	case "application/json", "application/ld+json":
		return transform.KindJSON, true
	}
	if strings.HasSuffix(mt, "+json") {
		return transform.KindJSON, true
	}
	return "", false
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// elapsed formats a duration for progress messages.
func elapsed(start time.Time) string {
	return time.Since(start).Round(time.Millisecond).String()
}
