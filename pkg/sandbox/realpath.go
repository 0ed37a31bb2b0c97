package sandbox

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// maxLinkHops bounds symlink expansion, matching the usual kernel limit.
const maxLinkHops = 40

type linkFs interface {
	afero.Lstater
	afero.LinkReader
}

// realPath expands every symlink in the absolute path p, walking one
// component at a time. Components past the first missing one are joined
// lexically, so nonexistent targets still get a containment answer.
func realPath(lfs linkFs, p string) (string, error) {
	volume := filepath.VolumeName(p)
	top := volume + string(filepath.Separator)

	resolved := top
	pending := splitPath(p[len(volume):])
	hops := 0

	for len(pending) > 0 {
		name := pending[0]
		pending = pending[1:]

		switch name {
		case "", ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, name)
		info, lstatCalled, err := lfs.LstatIfPossible(next)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscallNotDir) {
				return filepath.Join(append([]string{next}, pending...)...), nil
			}
			return "", fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		if !lstatCalled || info.Mode()&os.ModeSymlink == 0 {
			resolved = next
			continue
		}

		hops++
		if hops > maxLinkHops {
			return "", ErrLinkLoop
		}

		target, err := lfs.ReadlinkIfPossible(next)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		if filepath.IsAbs(target) {
			targetVolume := filepath.VolumeName(target)
			resolved = targetVolume + string(filepath.Separator)
			target = target[len(targetVolume):]
		}
		pending = append(splitPath(target), pending...)
	}

	return resolved, nil
}

func splitPath(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool {
		return r == filepath.Separator || r == '/'
	})
}
