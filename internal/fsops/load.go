package fsops

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
	"unicode/utf8"
)

// EmptyList is returned by Load when nothing exists at the path yet.
const EmptyList = "[]"

// Load returns the text stored at path, or EmptyList when the path is absent.
// An existing empty file yields "", not EmptyList.
func Load(path string) (string, error) {
	// Read directly and treat not-found as absence; there is no separate
	// existence check to race against.
	b, err := os.ReadFile(path)
	if err != nil {
		if absent(err) {
			return EmptyList, nil
		}
		return "", wrap("load", path, err)
	}
	if !utf8.Valid(b) {
		return "", wrap("load", path, &fs.PathError{Op: "read", Path: path, Err: ErrInvalidUTF8})
	}
	return string(b), nil
}

// absent reports whether err means nothing readable exists at the path. A
// non-directory parent component and a symlink loop count as absent too.
func absent(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ELOOP)
}
