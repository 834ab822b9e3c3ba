package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// TextWriter writes a human-readable line per record and, on Close, a
// summary line when more than one record was written.
type TextWriter struct {
	w         *bufio.Writer
	count     int
	failed    int
	original  int
	processed int
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Write writes a single record.
func (w *TextWriter) Write(rec Record) error {
	w.count++

	var err error
	switch {
	case rec.Failed():
		w.failed++
		_, err = fmt.Fprintf(w.w, "%s: error: %s\n", rec.Source, rec.Error)
	case rec.Stats != nil:
		w.original += rec.Stats.OriginalSize
		w.processed += rec.Stats.ProcessedSize
		_, err = fmt.Fprintf(w.w, "%s: %s %s %s -> %s (%s saved)\n",
			rec.Source, rec.Direction, rec.Kind,
			humanize.Bytes(uint64(rec.Stats.OriginalSize)),
			humanize.Bytes(uint64(rec.Stats.ProcessedSize)),
			rec.Stats.SavedPercentage)
	default:
		_, err = fmt.Fprintf(w.w, "%s: %s %s\n", rec.Source, rec.Direction, rec.Kind)
	}
	if err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteAll writes multiple records.
func (w *TextWriter) WriteAll(recs []Record) error {
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}

// Close writes the summary and flushes.
func (w *TextWriter) Close() error {
	if w.count > 1 {
		fmt.Fprintf(w.w, "%d files, %d failed, %s -> %s\n",
			w.count, w.failed,
			humanize.Bytes(uint64(w.original)),
			humanize.Bytes(uint64(w.processed)))
	}
	return w.Flush()
}
