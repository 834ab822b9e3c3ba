package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/snipfmt/internal/config"
	"github.com/jmylchreest/snipfmt/internal/logger"
	"github.com/jmylchreest/snipfmt/internal/source"
	"github.com/jmylchreest/snipfmt/pkg/base64img"
	"github.com/jmylchreest/snipfmt/pkg/transform"
)

var base64Cmd = &cobra.Command{
	Use:   "base64",
	Short: "Encode and decode Base64 text and image data URLs",
	Long: `Encode and decode Base64.

Examples:
  echo -n 'Hello World' | snipfmt base64 encode
  snipfmt base64 decode token.txt
  snipfmt base64 image logo.png -o logo.txt
  snipfmt base64 image --info logo.png
  snipfmt base64 extract logo.txt`,
}

var base64EncodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode UTF-8 text to Base64",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBase64Text(cmd, args, base64img.Encoder())
	},
}

var base64DecodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode Base64 to UTF-8 text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBase64Text(cmd, args, base64img.Decoder())
	},
}

var base64ImageCmd = &cobra.Command{
	Use:   "image <file>",
	Short: "Convert an image file to a data URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runBase64Image,
}

var base64ExtractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Write the image inside a data URL to a file",
	Long: `Decode an image data URL and write the image bytes to a file.

The file is named image.<type> (e.g. image.png) unless -o is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBase64Extract,
}

func init() {
	rootCmd.AddCommand(base64Cmd)
	base64Cmd.AddCommand(base64EncodeCmd, base64DecodeCmd, base64ImageCmd, base64ExtractCmd)

	for _, c := range []*cobra.Command{base64EncodeCmd, base64DecodeCmd, base64ImageCmd, base64ExtractCmd} {
		c.Flags().StringP("output", "o", "", "output file (default: stdout)")
	}
	base64ImageCmd.Flags().Bool("info", false, "print the image type and encoded size instead of the data URL")
}

func runBase64Text(cmd *cobra.Command, args []string, t transform.Transformer) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	src, err := readTextArg(cmd, args, cfg)
	if err != nil {
		return err
	}

	out, err := t.Transform(src.Text)
	if err != nil {
		return err
	}
	logger.Debug("base64 complete", "transformer", t.Name(), "source", src.Name)
	return writeResult(cmd, out)
}

func runBase64Image(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	data, err := readBinary(args[0], cfg.MaxInputBytes())
	if err != nil {
		return err
	}

	dataURL, err := base64img.EncodeImage(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	logger.Debug("image encoded", "file", args[0], "type", base64img.ExtractImageType(dataURL))

	if info, _ := cmd.Flags().GetBool("info"); info {
		fmt.Fprintf(cmd.OutOrStdout(), "Type: %s\nSize: %.2f KB (%s file)\n",
			base64img.ExtractImageType(dataURL),
			base64img.SizeKB(dataURL),
			humanize.Bytes(uint64(len(data))))
		return nil
	}
	return writeResult(cmd, dataURL)
}

func runBase64Extract(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	src, err := readTextArg(cmd, args, cfg)
	if err != nil {
		return err
	}

	data, d, err := base64img.DecodeImage(src.Text)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = d.FileName()
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil { //#nosec G306 -- image is a user-requested file
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	logInfo("wrote %s (%s, %s)", outPath, d.Extension, humanize.Bytes(uint64(len(data))))
	return nil
}

// readTextArg loads the file argument, or stdin when there is none.
func readTextArg(cmd *cobra.Command, args []string, cfg *config.Config) (*source.Source, error) {
	opts := source.Options{MaxSize: cfg.MaxInputBytes()}
	if len(args) > 0 && args[0] != "-" {
		return source.ReadFile(args[0], opts)
	}
	return source.Read(cmd.InOrStdin(), "-", opts)
}

// readBinary reads a file without text normalization.
func readBinary(path string, limit uint64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := io.Reader(f)
	if limit > 0 {
		r = io.LimitReader(f, int64(limit)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if limit > 0 && uint64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s is larger than %s", source.ErrTooLarge, path, humanize.Bytes(limit))
	}
	return data, nil
}

// writeResult writes s to the -o file, or to stdout with a trailing newline.
func writeResult(cmd *cobra.Command, s string) error {
	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), withNewline(s))
		return err
	}
	if err := os.WriteFile(outPath, []byte(s), 0o644); err != nil { //#nosec G306 -- output is a user-requested text file
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	logInfo("wrote %s", outPath)
	return nil
}
