package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/snipfmt/internal/config"
	"github.com/jmylchreest/snipfmt/internal/logger"
	"github.com/jmylchreest/snipfmt/internal/output"
	"github.com/jmylchreest/snipfmt/internal/source"
	"github.com/jmylchreest/snipfmt/pkg/transform"
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Minify or beautify many files concurrently",
	Long: `Process many files at once. Each input is written next to itself with a
suffix before the extension: app.css becomes app.min.css, or app.pretty.css
with -d beautify.

The type of each file is inferred from its extension unless --type is set.
Inputs that already carry the suffix are skipped. A failure in one file does
not stop the others; the command exits non-zero if any file failed.

Examples:
  snipfmt batch assets/*.css assets/*.js
  snipfmt batch -d beautify --suffix .pretty dist/*.json
  snipfmt batch -c 16 --report json src/**/*.html > report.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	flags := batchCmd.Flags()
	flags.StringP("direction", "d", string(transform.Minify), "minify or beautify")
	flags.StringP("type", "t", "", "force the input type for every file")
	flags.IntP("concurrency", "c", config.DefaultConcurrency, "files processed at once")
	flags.String("suffix", "", "suffix inserted before the extension of output files (default .min, or .pretty with -d beautify)")
	flags.String("report", "text", "report format: json, jsonl, yaml, text")
}

// batchOptions is the resolved configuration of a batch run.
type batchOptions struct {
	Direction   transform.Direction
	Kind        transform.Kind // empty means infer per file
	Concurrency int
	Suffix      string
	MaxSize     uint64
}

func runBatch(cmd *cobra.Command, args []string) error {
	bindFlags(cmd.Flags(), map[string]string{
		"batch.concurrency": "concurrency",
		"batch.suffix":      "suffix",
		"report.format":     "report",
	})
	cfg, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dirFlag, _ := cmd.Flags().GetString("direction")
	dir, err := transform.ParseDirection(dirFlag)
	if err != nil {
		return err
	}
	opts := batchOptions{
		Direction:   dir,
		Concurrency: cfg.Batch.Concurrency,
		Suffix:      cfg.Batch.SuffixFor(dir),
		MaxSize:     cfg.MaxInputBytes(),
	}
	if typeFlag, _ := cmd.Flags().GetString("type"); typeFlag != "" {
		if opts.Kind, err = transform.ParseKind(typeFlag); err != nil {
			return err
		}
	}

	format := output.FormatText
	if cfg.Report.Format != "" {
		if format, err = output.ParseFormat(cfg.Report.Format); err != nil {
			return err
		}
	}
	report, err := output.NewWriter(cmd.OutOrStdout(), format)
	if err != nil {
		return err
	}

	start := time.Now()
	records, err := processBatch(ctx, args, opts)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errNoFiles
	}

	if err := report.WriteAll(records); err != nil {
		return err
	}
	if err := report.Close(); err != nil {
		return err
	}

	failed := 0
	for _, rec := range records {
		if rec.Failed() {
			failed++
		}
	}
	logger.Info("batch complete", "files", len(records), "failed", failed, "elapsed", elapsed(start))
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(records))
	}
	return nil
}

// processBatch transforms files with at most opts.Concurrency in flight.
// Records come back in input order; per-file failures are recorded rather
// than returned.
func processBatch(ctx context.Context, files []string, opts batchOptions) ([]output.Record, error) {
	files = dedupe(files)
	records := make([]output.Record, len(files))
	skipped := make([]bool, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))

	for i, path := range files {
		if hasSuffix(path, opts.Suffix) {
			logger.Info("skipping already processed file", "file", path)
			skipped[i] = true
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records[i] = processFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := records[:0]
	for i, rec := range records {
		if !skipped[i] {
			out = append(out, rec)
		}
	}
	return out, nil
}

func processFile(path string, opts batchOptions) output.Record {
	kind := opts.Kind
	if kind == "" {
		k, err := transform.KindFromPath(path)
		if err != nil {
			return output.NewRecord(path, "", opts.Direction, nil, err)
		}
		kind = k
	}

	src, err := source.ReadFile(path, source.Options{MaxSize: opts.MaxSize})
	if err != nil {
		return output.NewRecord(path, kind, opts.Direction, nil, err)
	}

	res, err := transform.Process(kind, opts.Direction, src.Text)
	if err != nil {
		return output.NewRecord(path, kind, opts.Direction, nil, err)
	}

	target := outputName(path, opts.Suffix, kind)
	if err := os.WriteFile(target, []byte(res.Output), 0o644); err != nil { //#nosec G306 -- outputs sit next to their inputs
		return output.NewRecord(path, kind, opts.Direction, nil, fmt.Errorf("failed to write %s: %w", target, err))
	}
	logger.Debug("file processed", "file", path, "target", target, "saved", res.Stats.SavedPercentage)

	rec := output.NewRecord(path, kind, opts.Direction, res, nil)
	rec.Target = target
	return rec
}

// outputName inserts suffix before the extension: app.css -> app.min.css.
// A path without an extension gets the one of kind: data -> data.min.json.
func outputName(path, suffix string, kind transform.Kind) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return path + suffix + kind.Extension()
	}
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// hasSuffix reports whether path already looks like an output of outputName.
func hasSuffix(path, suffix string) bool {
	ext := filepath.Ext(path)
	return strings.HasSuffix(strings.TrimSuffix(path, ext), suffix)
}

func dedupe(files []string) []string {
	seen := make(map[string]bool, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		key := filepath.Clean(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}

// errNoFiles is returned when every input was skipped.
var errNoFiles = errors.New("no files to process")
