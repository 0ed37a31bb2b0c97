// Package sandbox confines client-supplied paths to a fixed root directory.
//
// A Sandbox is created once with an absolute root and is immutable
// afterwards; it is safe for concurrent use. Every rejection is reported
// as an error wrapping ErrNotFound, so callers can map all of them to a
// single "not found" response without leaking why a path was refused.
package sandbox

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrNotFound is wrapped by every rejection.
	ErrNotFound = errors.New("not found")

	ErrOutsideRoot  = fmt.Errorf("%w: path escapes root", ErrNotFound)
	ErrMalformed    = fmt.Errorf("%w: malformed path", ErrNotFound)
	ErrNotDirectory = fmt.Errorf("%w: not a directory", ErrNotFound)
	ErrNotRegular   = fmt.Errorf("%w: not a regular file", ErrNotFound)
	ErrLinkLoop     = fmt.Errorf("%w: too many levels of symbolic links", ErrNotFound)
)

// Sandbox resolves relative paths against Root.
type Sandbox struct {
	fs       afero.Fs
	root     string
	realRoot string
	links    linkFs // nil when fs cannot report symlinks
}

// New creates a Sandbox for root, which must be an absolute path to an
// existing directory on fs.
func New(fs afero.Fs, root string) (*Sandbox, error) {
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("sandbox root %q must be absolute", root)
	}
	root = filepath.Clean(root)

	info, err := fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("sandbox root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sandbox root %q is not a directory", root)
	}

	s := &Sandbox{fs: fs, root: root, realRoot: root}
	if lfs, ok := fs.(linkFs); ok {
		s.links = lfs
		real, err := realPath(lfs, root)
		if err != nil {
			return nil, fmt.Errorf("sandbox root %q: %w", root, err)
		}
		s.realRoot = real
	}
	return s, nil
}

// Root returns the normalized absolute root.
func (s *Sandbox) Root() string {
	return s.root
}

// Fs returns the filesystem the sandbox resolves against.
func (s *Sandbox) Fs() afero.Fs {
	return s.fs
}

// Resolve maps relative to an absolute path inside Root.
//
// relative is percent-decoded exactly once, backslashes are treated as
// separators and a leading slash is root-relative. The result is
// lexically normalized; when the filesystem supports symlinks, the real
// location of the path must also lie inside the real root. Resolve does
// not require the target to exist.
func (s *Sandbox) Resolve(relative string) (string, error) {
	decoded, err := url.PathUnescape(relative)
	if err != nil || strings.ContainsRune(decoded, 0) {
		return "", ErrMalformed
	}

	normalized := filepath.FromSlash(strings.ReplaceAll(decoded, `\`, "/"))
	resolved := filepath.Join(s.root, normalized)
	if !within(s.root, resolved) {
		return "", ErrOutsideRoot
	}

	if s.links != nil {
		real, err := realPath(s.links, resolved)
		if err != nil {
			return "", err
		}
		if !within(s.realRoot, real) {
			return "", ErrOutsideRoot
		}
	}

	return resolved, nil
}

// ResolveDir resolves relative and requires it to name a directory.
func (s *Sandbox) ResolveDir(relative string) (string, error) {
	resolved, err := s.Resolve(relative)
	if err != nil {
		return "", err
	}

	info, err := s.fs.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if !info.IsDir() {
		return "", ErrNotDirectory
	}
	return resolved, nil
}

// ResolveFile resolves relative and requires it to name a regular file.
func (s *Sandbox) ResolveFile(relative string) (string, os.FileInfo, error) {
	resolved, err := s.Resolve(relative)
	if err != nil {
		return "", nil, err
	}

	info, err := s.fs.Stat(resolved)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if !info.Mode().IsRegular() {
		return "", nil, ErrNotRegular
	}
	return resolved, info, nil
}

// Contains reports whether the absolute path p, with every symlink
// expanded, lies inside the real root. Loops and read errors count as
// outside.
func (s *Sandbox) Contains(p string) bool {
	p = filepath.Clean(p)
	if !within(s.root, p) {
		return false
	}
	if s.links == nil {
		return true
	}
	real, err := realPath(s.links, p)
	return err == nil && within(s.realRoot, real)
}

// within reports whether p equals root or lies below it on a segment boundary.
func within(root, p string) bool {
	if p == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(p, prefix)
}
