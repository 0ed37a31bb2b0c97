// Package listing enumerates the immediate children of a directory.
package listing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Kind classifies a directory entry.
type Kind string

const (
	KindFile Kind = "file"
	KindDir  Kind = "dir"
)

// ErrNotDirectory is returned when the listed path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// DirEntry is one child of a listed directory.
type DirEntry struct {
	Name string `json:"name"`
	Kind Kind   `json:"type"`
}

// Option adjusts how List classifies entries.
type Option func(*options)

type options struct {
	follow func(path string) bool
}

// FollowLinksIf makes List classify a symlink by its target only when
// allow returns true for the link's path. Other links are reported as
// files.
func FollowLinksIf(allow func(path string) bool) Option {
	return func(o *options) { o.follow = allow }
}

// List returns the children of dir sorted by name. Symlinks are classified
// by their target; a link whose target cannot be read is reported as a
// file. An empty directory yields an empty, non-nil slice.
//
// dir must already be confined by the caller.
func List(fs afero.Fs, dir string, opts ...Option) ([]DirEntry, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	f, err := fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	infos, err := f.Readdir(-1)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	entries := make([]DirEntry, 0, len(infos))
	for _, fi := range infos {
		entries = append(entries, DirEntry{
			Name: fi.Name(),
			Kind: o.classify(fs, dir, fi),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func (o options) classify(fs afero.Fs, dir string, fi os.FileInfo) Kind {
	if fi.Mode()&os.ModeSymlink != 0 {
		link := filepath.Join(dir, fi.Name())
		if o.follow != nil && !o.follow(link) {
			return KindFile
		}
		target, err := fs.Stat(link)
		if err != nil {
			return KindFile
		}
		fi = target
	}
	if fi.IsDir() {
		return KindDir
	}
	return KindFile
}
