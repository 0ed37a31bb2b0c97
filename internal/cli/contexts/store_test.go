package contexts

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPath = "/home/user/.config/treeportctl/config.json"

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store, err := NewStoreAt(fs, testPath)
	require.NoError(t, err)
	return store, fs
}

func TestNewStoreAt_MissingFile(t *testing.T) {
	store, fs := newTestStore(t)

	assert.Empty(t, store.Names())
	assert.Equal(t, "", store.CurrentName())

	_, err := store.Current()
	assert.ErrorIs(t, err, ErrNoCurrentContext)

	exists, err := afero.Exists(fs, testPath)
	require.NoError(t, err)
	assert.False(t, exists, "file should only be created on write")
}

func TestStore_SetAndReload(t *testing.T) {
	store, fs := newTestStore(t)

	require.NoError(t, store.Set("local", "http://localhost:8080/"))
	require.NoError(t, store.Set("prod", "https://files.example.com"))

	assert.Equal(t, "local", store.CurrentName(), "first context becomes current")

	reloaded, err := NewStoreAt(fs, testPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"local", "prod"}, reloaded.Names())
	current, err := reloaded.Current()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", current.ServerURL)

	info, err := fs.Stat(testPath)
	require.NoError(t, err)
	assert.Equal(t, "config.json", filepath.Base(info.Name()))
}

func TestStore_SetRejectsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	assert.Error(t, store.Set("", "http://x"))
	assert.Error(t, store.Set("x", "  "))
}

func TestStore_Use(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("a", "http://a"))
	require.NoError(t, store.Set("b", "http://b"))

	require.NoError(t, store.Use("b"))
	assert.Equal(t, "b", store.CurrentName())

	assert.ErrorIs(t, store.Use("missing"), ErrContextNotFound)
	assert.Equal(t, "b", store.CurrentName())
}

func TestStore_Rename(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("a", "http://a"))
	require.NoError(t, store.Set("b", "http://b"))

	require.NoError(t, store.Rename("a", "alpha"))
	assert.Equal(t, "alpha", store.CurrentName())
	assert.Equal(t, []string{"alpha", "b"}, store.Names())

	assert.Error(t, store.Rename("alpha", "b"))
	assert.ErrorIs(t, store.Rename("nope", "x"), ErrContextNotFound)
}

func TestStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("a", "http://a"))

	require.NoError(t, store.Delete("a"))
	assert.Empty(t, store.Names())
	assert.Equal(t, "", store.CurrentName())

	assert.ErrorIs(t, store.Delete("a"), ErrContextNotFound)
}

func TestStore_Preferences(t *testing.T) {
	store, fs := newTestStore(t)

	require.NoError(t, store.SetPreferences(Preferences{DefaultOutput: "json", Color: "never"}))

	reloaded, err := NewStoreAt(fs, testPath)
	require.NoError(t, err)
	assert.Equal(t, "json", reloaded.Preferences().DefaultOutput)
	assert.Equal(t, "never", reloaded.Preferences().Color)
}

func TestNewStoreAt_InvalidJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testPath, []byte("{nope"), 0o600))

	_, err := NewStoreAt(fs, testPath)
	assert.Error(t, err)
}

func TestDefaultPath_UsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "treeportctl", "config.json"), path)
}
