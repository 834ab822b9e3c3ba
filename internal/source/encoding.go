package source

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/jmylchreest/snipfmt/internal/logger"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// minChardetConfidence is the lowest chardet score trusted over the
// Windows-1252 fallback.
const minChardetConfidence = 50

// ToUTF8 converts raw to UTF-8 and strips a leading UTF-8 BOM. It returns the
// name of the source encoding.
//
// Valid UTF-8 is passed through. Otherwise the encoding is taken from a BOM,
// the content type charset or an HTML meta tag, and for plain text a
// statistical guess is tried when those are inconclusive.
func ToUTF8(raw []byte, contentType string) ([]byte, string, error) {
	if utf8.Valid(raw) {
		return bytes.TrimPrefix(raw, utf8BOM), "utf-8", nil
	}

	enc, name, certain := charset.DetermineEncoding(raw, contentType)
	if !certain && !isHTML(contentType) {
		if guessed, guessedName := guessEncoding(raw); guessed != nil {
			enc, name = guessed, guessedName
		}
	}
	if !certain {
		logger.Debug("encoding detection uncertain", "encoding", name, "content_type", contentType)
	}

	if enc == encoding.Nop || enc == unicode.UTF8 {
		return bytes.TrimPrefix(raw, utf8BOM), name, nil
	}
	out, err := io.ReadAll(enc.NewDecoder().Reader(bytes.NewReader(raw)))
	if err != nil {
		return nil, name, fmt.Errorf("failed to decode %s to UTF-8: %w", name, err)
	}
	return bytes.TrimPrefix(out, utf8BOM), name, nil
}

func guessEncoding(raw []byte) (encoding.Encoding, string) {
	res, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil || res.Confidence < minChardetConfidence {
		return nil, ""
	}
	enc, err := htmlindex.Get(res.Charset)
	if err != nil {
		return nil, ""
	}
	logger.Debug("chardet detection", "charset", res.Charset, "confidence", res.Confidence)
	return enc, res.Charset
}

func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && (mt == "text/html" || mt == "application/xhtml+xml")
}

// detectContentType picks a content type from the file extension, falling
// back to sniffing the bytes.
func detectContentType(name string, raw []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return "text/html"
	case ".css":
		return "text/css"
	case ".js", ".mjs", ".cjs":
		return "text/javascript"
	case ".json":
		return "application/json"
	}
	return mimetype.Detect(raw).String()
}
