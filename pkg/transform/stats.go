package transform

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
)

// Stats captures how much a transform changed the input.
type Stats struct {
	// Size metrics, in bytes
	OriginalSize  int `json:"original_size" yaml:"original_size"`
	ProcessedSize int `json:"processed_size" yaml:"processed_size"`

	// SavedPercentage is the size reduction formatted to two decimals with a
	// trailing "%", or "0%" for empty input.
	SavedPercentage string `json:"saved_percentage" yaml:"saved_percentage"`

	// Gzipped sizes, for comparing on-the-wire savings
	GzipOriginal  int `json:"gzip_original" yaml:"gzip_original"`
	GzipProcessed int `json:"gzip_processed" yaml:"gzip_processed"`

	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// NewStats computes stats for an input/output pair.
func NewStats(original, processed string) *Stats {
	return &Stats{
		OriginalSize:    len(original),
		ProcessedSize:   len(processed),
		SavedPercentage: SavedPercentage(len(original), len(processed)),
		GzipOriginal:    gzipSize(original),
		GzipProcessed:   gzipSize(processed),
	}
}

// SavedPercentage formats (original-processed)/original*100 to two decimals.
// A negative value means the output grew, which is normal for beautifiers.
func SavedPercentage(original, processed int) string {
	if original <= 0 {
		return "0%"
	}
	saved := float64(original-processed) / float64(original) * 100
	return fmt.Sprintf("%.2f%%", saved)
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %s -> %s (%s saved)\n",
		humanize.Bytes(uint64(s.OriginalSize)),
		humanize.Bytes(uint64(s.ProcessedSize)),
		s.SavedPercentage))

	if s.GzipOriginal > 0 {
		sb.WriteString(fmt.Sprintf("Gzip: %s -> %s (%s saved)\n",
			humanize.Bytes(uint64(s.GzipOriginal)),
			humanize.Bytes(uint64(s.GzipProcessed)),
			SavedPercentage(s.GzipOriginal, s.GzipProcessed)))
	}

	sb.WriteString(fmt.Sprintf("Time: %v\n", s.Duration.Round(time.Microsecond)))

	return sb.String()
}

// gzipSize returns the compressed size of s, or 0 for empty input.
func gzipSize(s string) int {
	if s == "" {
		return 0
	}
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return 0
	}
	if _, err := zw.Write([]byte(s)); err != nil {
		return 0
	}
	if err := zw.Close(); err != nil {
		return 0
	}
	return buf.Len()
}
