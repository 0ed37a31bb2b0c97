package listing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSortedWithKinds(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/root/zeta", 0o755))
	require.NoError(t, fs.MkdirAll("/root/alpha/nested", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/root/b.txt", []byte("b"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/root/a.txt", []byte("a"), 0o644))

	entries, err := List(fs, "/root")
	require.NoError(t, err)

	assert.Equal(t, []DirEntry{
		{Name: "a.txt", Kind: KindFile},
		{Name: "alpha", Kind: KindDir},
		{Name: "b.txt", Kind: KindFile},
		{Name: "zeta", Kind: KindDir},
	}, entries)
}

func TestListEmptyDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/empty", 0o755))

	entries, err := List(fs, "/empty")
	require.NoError(t, err)
	require.NotNil(t, entries)
	assert.Empty(t, entries)

	data, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestListErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/file.txt", []byte("x"), 0o644))

	_, err := List(fs, "/file.txt")
	assert.ErrorIs(t, err, ErrNotDirectory)

	_, err = List(fs, "/missing")
	assert.Error(t, err)
}

func TestDirEntryJSON(t *testing.T) {
	data, err := json.Marshal(DirEntry{Name: "docs", Kind: KindDir})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"docs","type":"dir"}`, string(data))
}

func TestListClassifiesSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "real"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file"), nil, 0o644))

	if err := os.Symlink("real", filepath.Join(dir, "dirlink")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink("file", filepath.Join(dir, "filelink")))
	require.NoError(t, os.Symlink("nowhere", filepath.Join(dir, "dangling")))

	entries, err := List(afero.NewOsFs(), dir)
	require.NoError(t, err)

	assert.Equal(t, []DirEntry{
		{Name: "dangling", Kind: KindFile},
		{Name: "dirlink", Kind: KindDir},
		{Name: "file", Kind: KindFile},
		{Name: "filelink", Kind: KindFile},
		{Name: "real", Kind: KindDir},
	}, entries)
}

func TestListFollowLinksIf(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "real"), 0o755))

	if err := os.Symlink("real", filepath.Join(dir, "inlink")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "outlink")))

	allow := func(p string) bool { return filepath.Base(p) != "outlink" }
	entries, err := List(afero.NewOsFs(), dir, FollowLinksIf(allow))
	require.NoError(t, err)

	assert.Equal(t, []DirEntry{
		{Name: "inlink", Kind: KindDir},
		{Name: "outlink", Kind: KindFile},
		{Name: "real", Kind: KindDir},
	}, entries)
}
