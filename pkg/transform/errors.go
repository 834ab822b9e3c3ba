package transform

import "errors"

// Sentinel errors. Check with errors.Is(err, transform.ErrInvalidJSON).
var (
	// ErrInvalidJSON indicates the input could not be parsed as JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrInvalidBase64 indicates malformed Base64 alphabet, padding or UTF-8.
	ErrInvalidBase64 = errors.New("invalid Base64")
	// ErrEmptyInput is returned by Process when there is nothing to transform.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnsupported indicates an unknown kind or direction.
	ErrUnsupported = errors.New("unsupported")
)

// ErrorKind tags a transform failure.
type ErrorKind int

const (
	KindInvalidJSON ErrorKind = iota + 1
	KindInvalidBase64
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidJSON:
		return "InvalidJSON"
	case KindInvalidBase64:
		return "InvalidBase64"
	default:
		return "Unknown"
	}
}

// Error is a transform failure carrying a human-readable message.
// The message is shown to users verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error // underlying parser/decoder error, may be nil
}

// NewError creates a tagged error.
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindInvalidJSON:
		return target == ErrInvalidJSON
	case KindInvalidBase64:
		return target == ErrInvalidBase64
	}
	return false
}
