// Package base64img encodes and decodes Base64 text and inspects image data
// URLs of the form data:<mime>;base64,<payload>.
package base64img

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jmylchreest/snipfmt/pkg/transform"
)

// Unknown is returned by ExtractImageType when the input is not an image data URL.
const Unknown = "Unknown"

var (
	imageTypeRe  = regexp.MustCompile(`^data:image/(\w+);base64,`)
	imageParseRe = regexp.MustCompile(`^data:(image/\w+);base64,(.+)$`)
)

// ErrNotImage is returned when raw bytes are not a supported image.
var ErrNotImage = errors.New("not an image")

// EncodeText encodes the UTF-8 bytes of input with the standard padded alphabet.
func EncodeText(input string) string {
	return base64.StdEncoding.EncodeToString([]byte(input))
}

// DecodeText decodes Base64 to text. ASCII whitespace is ignored, one or two
// trailing "=" are accepted when the length is a multiple of four, and
// unpadded input is accepted. The decoded bytes must be valid UTF-8.
func DecodeText(input string) (string, error) {
	b, err := decode(input)
	if err != nil {
		return "", decodeError(err)
	}
	if !utf8.Valid(b) {
		return "", decodeError(errors.New("decoded bytes are not valid UTF-8"))
	}
	return string(b), nil
}

func decode(input string) ([]byte, error) {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, input)

	if len(s)%4 == 0 {
		if strings.HasSuffix(s, "==") {
			s = s[:len(s)-2]
		} else if strings.HasSuffix(s, "=") {
			s = s[:len(s)-1]
		}
	}
	if len(s)%4 == 1 {
		return nil, errors.New("incorrect padding")
	}
	return base64.RawStdEncoding.DecodeString(s)
}

func decodeError(err error) error {
	return transform.NewError(transform.KindInvalidBase64, "Error decoding Base64: "+err.Error(), err)
}

// ExtractImageType returns the upper-cased image subtype of a data URL
// ("PNG", "JPEG"), or Unknown.
func ExtractImageType(dataURL string) string {
	m := imageTypeRe.FindStringSubmatch(dataURL)
	if m == nil {
		return Unknown
	}
	return strings.ToUpper(m[1])
}

// IsValidImage reports whether s is an image data URL with a non-empty payload.
// Only the header shape is checked, not the payload.
func IsValidImage(s string) bool {
	return imageParseRe.MatchString(s)
}

// SizeKB returns the length of a Base64 string in kilobytes, unrounded.
// Length is counted in UTF-16 code units.
func SizeKB(b64 string) float64 {
	n := 0
	for _, r := range b64 {
		n += utf16.RuneLen(r)
	}
	return float64(n) / 1024
}

// DataURL is a parsed image data URL.
type DataURL struct {
	MimeType    string  `json:"mime_type" yaml:"mime_type"`
	Extension   string  `json:"extension" yaml:"extension"`
	Payload     string  `json:"-" yaml:"-"`
	PayloadSize int     `json:"payload_size" yaml:"payload_size"`
	SizeKB      float64 `json:"size_kb" yaml:"size_kb"`
}

// Parse splits an image data URL into its parts.
func Parse(dataURL string) (DataURL, error) {
	m := imageParseRe.FindStringSubmatch(dataURL)
	if m == nil {
		return DataURL{}, transform.NewError(transform.KindInvalidBase64,
			"Error decoding Base64: not an image data URL", nil)
	}
	payload := m[2]
	return DataURL{
		MimeType:    m[1],
		Extension:   ExtractImageType(dataURL),
		Payload:     payload,
		PayloadSize: decodedLen(payload),
		SizeKB:      SizeKB(dataURL),
	}, nil
}

// decodedLen estimates the decoded size from the payload length.
func decodedLen(payload string) int {
	n := len(payload) * 3 / 4
	switch {
	case strings.HasSuffix(payload, "=="):
		n -= 2
	case strings.HasSuffix(payload, "="):
		n--
	}
	return n
}

// FileName returns the name used when saving the decoded image, e.g. "image.png".
func (d DataURL) FileName() string {
	return "image." + strings.ToLower(d.Extension)
}

// EncodeImage sniffs the content type of raw image bytes and returns a data URL.
func EncodeImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrNotImage)
	}

	mt := mimetype.Detect(data)
	mime := mt.String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}

	dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	// image/svg+xml and friends do not fit the data URL shape the rest of
	// this package accepts.
	if !IsValidImage(dataURL) {
		return "", fmt.Errorf("%w: unsupported image type %s", ErrNotImage, mime)
	}
	return dataURL, nil
}

// DecodeImage returns the payload bytes of an image data URL along with its
// parsed header.
func DecodeImage(dataURL string) ([]byte, DataURL, error) {
	d, err := Parse(strings.TrimSpace(dataURL))
	if err != nil {
		return nil, DataURL{}, err
	}
	b, err := decode(d.Payload)
	if err != nil {
		return nil, DataURL{}, decodeError(err)
	}
	d.PayloadSize = len(b)
	return b, d, nil
}

// Encoder returns EncodeText as a transformer.
func Encoder() transform.Transformer {
	return transform.Total("base64-encode", EncodeText)
}

// Decoder returns DecodeText as a transformer.
func Decoder() transform.Transformer {
	return transform.NewFunc("base64-decode", DecodeText)
}
