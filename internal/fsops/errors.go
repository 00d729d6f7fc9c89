package fsops

import (
	"errors"
	"io/fs"
	"syscall"

	"github.com/petasbytes/recordshim/internal/safety"
)

// Kind classifies a façade failure.
type Kind int

const (
	KindIO Kind = iota
	KindNotFound
	KindPermission
	KindIsDirectory
	KindEncoding
	KindPolicy
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission_denied"
	case KindIsDirectory:
		return "is_directory"
	case KindEncoding:
		return "encoding"
	case KindPolicy:
		return "policy"
	default:
		return "io"
	}
}

// ErrInvalidUTF8 is reported when a loaded file is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// Error records a failed save or load.
type Error struct {
	Op   string // "save" or "load"
	Path string // path as supplied by the caller
	Kind Kind
	Err  error
}

// Error returns the underlying error's message unchanged.
func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindIO when err is not an *Error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindIO
}

func wrap(op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Kind: classify(err), Err: err}
}

func classify(err error) Kind {
	var pe safety.PolicyError
	switch {
	case errors.As(err, &pe):
		return KindPolicy
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	case errors.Is(err, syscall.EISDIR):
		return KindIsDirectory
	case errors.Is(err, ErrInvalidUTF8):
		return KindEncoding
	default:
		return KindIO
	}
}
