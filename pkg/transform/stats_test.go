package transform

import (
	"strings"
	"testing"
)

func TestSavedPercentage(t *testing.T) {
	tests := []struct {
		name      string
		original  int
		processed int
		want      string
	}{
		{"zero original", 0, 0, "0%"},
		{"half", 200, 100, "50.00%"},
		{"no change", 10, 10, "0.00%"},
		{"rounded", 3, 1, "66.67%"},
		{"grew", 100, 150, "-50.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SavedPercentage(tt.original, tt.processed); got != tt.want {
				t.Errorf("SavedPercentage(%d, %d) = %q, want %q", tt.original, tt.processed, got, tt.want)
			}
		})
	}
}

func TestNewStats(t *testing.T) {
	s := NewStats("body { color: red; }", "body{color:red}")

	if s.OriginalSize != 20 {
		t.Errorf("OriginalSize = %d, want 20", s.OriginalSize)
	}
	if s.ProcessedSize != 15 {
		t.Errorf("ProcessedSize = %d, want 15", s.ProcessedSize)
	}
	if s.SavedPercentage != "25.00%" {
		t.Errorf("SavedPercentage = %q, want %q", s.SavedPercentage, "25.00%")
	}
	if s.GzipOriginal == 0 || s.GzipProcessed == 0 {
		t.Errorf("expected gzip sizes to be computed, got %d and %d", s.GzipOriginal, s.GzipProcessed)
	}
}

func TestNewStats_Empty(t *testing.T) {
	s := NewStats("", "")
	if s.SavedPercentage != "0%" {
		t.Errorf("SavedPercentage = %q, want 0%%", s.SavedPercentage)
	}
	if s.GzipOriginal != 0 {
		t.Errorf("GzipOriginal = %d, want 0", s.GzipOriginal)
	}
}

func TestStats_String(t *testing.T) {
	s := NewStats(strings.Repeat("a ", 1000), "a")
	out := s.String()

	for _, want := range []string{"Size:", "2.0 kB", "1 B", "Gzip:", "Time:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
