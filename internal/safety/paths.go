// Package safety provides an optional path policy for the persistence façade.
//
// With no root configured, paths pass through verbatim. With a root, every
// path must resolve inside it.
package safety

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PolicyError is a machine-readable error body for surfacing back to the caller.
type PolicyError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string.
func (e PolicyError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

const (
	CodeOutsideRoot = "ERR_PATH_OUTSIDE_ROOT"
	CodeDeniedWrite = "ERR_DENIED_WRITE"
	CodeInvalidPath = "ERR_INVALID_PATH"
)

// Policy decides how caller-supplied paths map onto the host filesystem.
// The zero value applies no restriction.
type Policy struct {
	root       string
	denyWrites []string // relative to root, slash-separated
}

// NewPolicy resolves root to an absolute, symlink-free directory. An empty root
// yields the pass-through policy. denyWrites lists directories that may not be
// written to: relative entries are taken relative to root, absolute entries are
// symlink-resolved and ignored when they lie outside root.
func NewPolicy(root string, denyWrites ...string) (Policy, error) {
	if root == "" {
		return Policy{}, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return Policy{}, fmt.Errorf("abs(root): %w", err)
	}
	// Resolve symlinks where possible so boundary checks are reliable.
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return Policy{}, fmt.Errorf("stat root: %w", err)
	}
	if !fi.IsDir() {
		return Policy{}, fmt.Errorf("root %s is not a directory", abs)
	}

	p := Policy{root: abs}
	for _, d := range denyWrites {
		if d == "" {
			continue
		}
		if filepath.IsAbs(d) {
			rel, err := filepath.Rel(abs, resolveExisting(filepath.Clean(d)))
			if err != nil || escapes(rel) {
				continue
			}
			d = rel
		}
		p.denyWrites = append(p.denyWrites, filepath.ToSlash(filepath.Clean(d)))
	}
	return p, nil
}

// Root returns the confinement root, or "" when the policy is pass-through.
func (p Policy) Root() string { return p.root }

// Enabled reports whether a root is configured.
func (p Policy) Enabled() bool { return p.root != "" }

// ResolveRead maps path to the location to read.
func (p Policy) ResolveRead(path string) (string, error) {
	if !p.Enabled() {
		return path, nil
	}
	abs, _, err := p.resolve(path)
	return abs, err
}

// ResolveWrite maps path to the location to write, additionally rejecting
// targets under denied directories.
func (p Policy) ResolveWrite(path string) (string, error) {
	if !p.Enabled() {
		return path, nil
	}
	abs, rel, err := p.resolve(path)
	if err != nil {
		return "", err
	}
	relSlash := filepath.ToSlash(rel)
	for _, d := range p.denyWrites {
		if relSlash == d || strings.HasPrefix(relSlash, d+"/") {
			return "", PolicyError{Code: CodeDeniedWrite, Message: fmt.Sprintf("writes under %s/ are not allowed", d)}
		}
	}
	return abs, nil
}

// resolve joins path onto the root (absolute inputs are taken as-is), resolves
// symlinks on the deepest existing ancestor and checks the result stays inside.
func (p Policy) resolve(path string) (abs string, rel string, err error) {
	if path == "" {
		return "", "", PolicyError{Code: CodeInvalidPath, Message: "path is empty"}
	}

	candidate := path
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(p.root, candidate)
	}
	candidate = filepath.Clean(candidate)

	candidate = resolveExisting(candidate)
	// Any symlink left at the leaf is dangling; writing through it could land anywhere.
	if fi, err := os.Lstat(candidate); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		return "", "", PolicyError{Code: CodeOutsideRoot, Message: "requested path is a dangling symlink"}
	}

	rel, err = filepath.Rel(p.root, candidate)
	if err != nil || escapes(rel) {
		return "", "", PolicyError{Code: CodeOutsideRoot, Message: "requested path resolves outside the root"}
	}
	return candidate, rel, nil
}

// ResolveDir makes path absolute against the working directory and resolves
// symlinks in its deepest existing ancestor. The directory need not exist yet.
func ResolveDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs(%s): %w", path, err)
	}
	return resolveExisting(abs), nil
}

// resolveExisting resolves symlinks in the longest existing prefix of the
// absolute, clean path p and rejoins the missing tail. This reveals escapes
// through a symlinked ancestor for files not yet created.
func resolveExisting(p string) string {
	var tail []string
	cur := p
	for {
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			return filepath.Join(append([]string{resolved}, tail...)...)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return p
		}
		tail = append([]string{filepath.Base(cur)}, tail...)
		cur = parent
	}
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel)
}
