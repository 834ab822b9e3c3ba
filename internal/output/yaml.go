package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter buffers records and writes them as one YAML document on Flush.
type YAMLWriter struct {
	w       *bufio.Writer
	records []Record
	flushed bool
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{w: bufio.NewWriter(w)}
}

// Write buffers a single record.
func (w *YAMLWriter) Write(rec Record) error {
	w.records = append(w.records, rec)
	w.flushed = false
	return nil
}

// WriteAll buffers multiple records.
func (w *YAMLWriter) WriteAll(recs []Record) error {
	w.records = append(w.records, recs...)
	w.flushed = false
	return nil
}

// Flush writes the buffered records.
func (w *YAMLWriter) Flush() error {
	if w.flushed {
		return nil
	}

	enc := yaml.NewEncoder(w.w)
	enc.SetIndent(2)

	var v any = w.records
	if len(w.records) == 1 {
		v = w.records[0]
	} else if w.records == nil {
		v = []Record{}
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	w.flushed = true
	return w.w.Flush()
}

// Close flushes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}
