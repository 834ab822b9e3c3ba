package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// --- ReadFile / Read Tests ---

func TestReadFile(t *testing.T) {
	path := writeFile(t, "app.css", []byte("body { color: red; }"))

	src, err := ReadFile(path, Options{})
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if src.Text != "body { color: red; }" {
		t.Errorf("Text = %q", src.Text)
	}
	if src.ContentType != "text/css" || src.Encoding != "utf-8" || src.Size != 20 {
		t.Errorf("unexpected source %+v", src)
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.js"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestReadFile_TooLarge(t *testing.T) {
	path := writeFile(t, "big.json", []byte(strings.Repeat("1", 100)))

	_, err := ReadFile(path, Options{MaxSize: 10})
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if !strings.Contains(err.Error(), "100 B") {
		t.Errorf("expected human size in %q", err.Error())
	}
}

func TestRead_TooLarge(t *testing.T) {
	_, err := Read(strings.NewReader(strings.Repeat("a", 11)), "-", Options{MaxSize: 10})
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}

	src, err := Read(strings.NewReader(strings.Repeat("a", 10)), "-", Options{MaxSize: 10})
	if err != nil {
		t.Fatalf("Read() at the limit error = %v", err)
	}
	if len(src.Text) != 10 {
		t.Errorf("len(Text) = %d", len(src.Text))
	}
}

func TestRead_Selector(t *testing.T) {
	doc := "<html><head><style>\n  a { color: red; }\n</style></head><body><p>x</p></body></html>"

	src, err := Read(strings.NewReader(doc), "page.html", Options{Selector: "style"})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if src.Text != "a { color: red; }" {
		t.Errorf("Text = %q", src.Text)
	}
}

// --- Encoding Tests ---

func TestToUTF8(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		input       []byte
		want        string
		wantEnc     string
	}{
		{
			name:    "utf-8 unchanged",
			input:   []byte("Héllo wörld"),
			want:    "Héllo wörld",
			wantEnc: "utf-8",
		},
		{
			name:    "utf-8 BOM stripped",
			input:   []byte("\xEF\xBB\xBFa{b:c}"),
			want:    "a{b:c}",
			wantEnc: "utf-8",
		},
		{
			name:        "charset from content type",
			contentType: "text/css; charset=windows-1252",
			input:       []byte("/* caf\xe9 */"),
			want:        "/* café */",
			wantEnc:     "windows-1252",
		},
		{
			name:    "utf-16 BOM",
			input:   []byte{0xFF, 0xFE, 'a', 0, 'b', 0},
			want:    "ab",
			wantEnc: "utf-16le",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc, err := ToUTF8(tt.input, tt.contentType)
			if err != nil {
				t.Fatalf("ToUTF8() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ToUTF8() = %q, want %q", got, tt.want)
			}
			if enc != tt.wantEnc {
				t.Errorf("encoding = %q, want %q", enc, tt.wantEnc)
			}
		})
	}
}

func TestToUTF8_HTMLMetaCharset(t *testing.T) {
	doc := []byte(`<html><head><meta charset="iso-8859-1"></head><body><p>caf` + "\xe9" + `</p></body></html>`)

	got, _, err := ToUTF8(doc, "text/html")
	if err != nil {
		t.Fatalf("ToUTF8() error = %v", err)
	}
	if !strings.Contains(string(got), "<p>café</p>") {
		t.Errorf("expected decoded text, got %q", got)
	}
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"index.HTML", "", "text/html"},
		{"a.mjs", "", "text/javascript"},
		{"data.json", "", "application/json"},
		{"-", "plain words", "text/plain; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectContentType(tt.name, []byte(tt.raw)); got != tt.want {
				t.Errorf("detectContentType() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Select Tests ---

func TestSelect(t *testing.T) {
	doc := `<html><body>
<script>var a = 1;</script>
<div class="x"><p>one</p></div>
<script type="module">import x from "y";</script>
</body></html>`

	tests := []struct {
		selector string
		want     string
	}{
		{"script", "var a = 1;\nimport x from \"y\";"},
		{"script[type=module]", `import x from "y";`},
		{"div.x p", "one"},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			got, err := Select(doc, tt.selector)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Select() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelect_Errors(t *testing.T) {
	if _, err := Select("<p>x</p>", "table"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
	if _, err := Select("<p>x</p>", "p["); err == nil || !strings.Contains(err.Error(), "invalid selector") {
		t.Errorf("expected invalid selector error, got %v", err)
	}
}

// --- Fetch Tests ---

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><style>p { margin: 0; }</style></head><body><p>` + r.UserAgent() + `</p></body></html>`))
	})
	mux.HandleFunc("/data.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"a": 1}`))
	})
	mux.HandleFunc("/big", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := newServer(t)

	src, err := Fetch(context.Background(), srv.URL+"/data.json", FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if src.Text != `{"a": 1}` {
		t.Errorf("Text = %q", src.Text)
	}
	if src.Name != srv.URL+"/data.json" || src.ContentType != "application/json" {
		t.Errorf("unexpected source %+v", src)
	}
}

func TestFetch_SelectorAndUserAgent(t *testing.T) {
	srv := newServer(t)

	src, err := Fetch(context.Background(), srv.URL+"/page", FetchOptions{
		Options:   Options{Selector: "style"},
		UserAgent: "snipfmt-test",
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if src.Text != "p { margin: 0; }" {
		t.Errorf("Text = %q", src.Text)
	}

	src, err = Fetch(context.Background(), srv.URL+"/page", FetchOptions{
		Options:   Options{Selector: "body p"},
		UserAgent: "snipfmt-test",
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if src.Text != "snipfmt-test" {
		t.Errorf("expected user agent echoed, got %q", src.Text)
	}
}

func TestFetch_Errors(t *testing.T) {
	srv := newServer(t)

	if _, err := Fetch(context.Background(), srv.URL+"/missing", FetchOptions{}); err == nil {
		t.Error("expected error for 404")
	}
	if _, err := Fetch(context.Background(), "ftp://example.com/a.css", FetchOptions{}); err == nil {
		t.Error("expected error for non-http scheme")
	}
	if _, err := Fetch(context.Background(), srv.URL+"/big", FetchOptions{Options: Options{MaxSize: 1024}}); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}
