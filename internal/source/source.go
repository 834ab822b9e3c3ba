// Package source loads the text to transform from a file, a reader or a URL.
//
// Every loader normalizes the bytes to UTF-8 and can optionally narrow an
// HTML document down to the text of the elements matching a CSS selector.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/snipfmt/internal/logger"
)

// ErrTooLarge is returned when an input exceeds Options.MaxSize.
var ErrTooLarge = errors.New("input too large")

// Options controls loading.
type Options struct {
	// MaxSize caps the raw input in bytes. Zero means no limit.
	MaxSize uint64

	// Selector, when set, replaces the input with the text of the matching
	// elements, e.g. "style" or "script[type=module]".
	Selector string
}

// Source is loaded input text.
type Source struct {
	Name        string // path, URL or "-" for stdin
	ContentType string
	Encoding    string // encoding the raw bytes were decoded from
	Size        int    // raw size in bytes
	Text        string
}

// ReadFile loads a local file.
func ReadFile(path string, opts Options) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if opts.MaxSize > 0 {
		if st, err := f.Stat(); err == nil && uint64(st.Size()) > opts.MaxSize {
			return nil, tooLarge(path, uint64(st.Size()), opts.MaxSize)
		}
	}
	return Read(f, path, opts)
}

// Read loads from r. name is used for messages and content type detection.
func Read(r io.Reader, name string, opts Options) (*Source, error) {
	if opts.MaxSize > 0 {
		r = io.LimitReader(r, int64(opts.MaxSize)+1)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return fromBytes(raw, name, detectContentType(name, raw), opts)
}

// fromBytes is the common tail of every loader.
func fromBytes(raw []byte, name, contentType string, opts Options) (*Source, error) {
	if opts.MaxSize > 0 && uint64(len(raw)) > opts.MaxSize {
		return nil, tooLarge(name, uint64(len(raw)), opts.MaxSize)
	}

	text, enc, err := ToUTF8(raw, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	src := &Source{
		Name:        name,
		ContentType: contentType,
		Encoding:    enc,
		Size:        len(raw),
		Text:        string(text),
	}

	if opts.Selector != "" {
		selected, err := Select(src.Text, opts.Selector)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		src.Text = selected
	}

	logger.Debug("source loaded",
		"name", name,
		"content_type", contentType,
		"encoding", enc,
		"size", humanize.Bytes(uint64(len(raw))))
	return src, nil
}

func tooLarge(name string, size, limit uint64) error {
	return fmt.Errorf("%w: %s is %s, limit is %s",
		ErrTooLarge, name, humanize.Bytes(size), humanize.Bytes(limit))
}
