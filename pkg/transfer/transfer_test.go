package transfer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkRecorder records the size of every Write call.
type chunkRecorder struct {
	bytes.Buffer
	writes []int
}

func (c *chunkRecorder) Write(p []byte) (int, error) {
	c.writes = append(c.writes, len(p))
	return c.Buffer.Write(p)
}

type failingWriter struct {
	after int
	seen  int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.seen+len(p) > f.after {
		return 0, errors.New("connection reset")
	}
	f.seen += len(p)
	return len(p), nil
}

func memFile(t *testing.T, size int) (afero.Fs, []byte) {
	t.Helper()
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data.bin", data, 0o644))
	return fs, data
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "preview", ModePreview.String())
	assert.Equal(t, "full", ModeFull.String())
}

func TestPreviewLength(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int64
	}{
		{"empty file", 0, 0},
		{"smaller than limit", 10, 10},
		{"exactly limit", DefaultPreviewLimit, DefaultPreviewLimit},
		{"larger than limit", 5000, DefaultPreviewLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, data := memFile(t, tt.size)

			s, err := Open(fs, Spec{Path: "/data.bin", Mode: ModePreview})
			require.NoError(t, err)
			defer s.Close()

			assert.Equal(t, tt.want, s.Length())
			assert.Equal(t, int64(tt.size), s.Size())
			assert.Equal(t, "data.bin", s.Name())

			var out bytes.Buffer
			n, err := s.Copy(context.Background(), &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
			assert.Equal(t, data[:tt.want], out.Bytes())
		})
	}
}

func TestPreviewCustomLimit(t *testing.T) {
	fs, data := memFile(t, 100)

	var out bytes.Buffer
	n, err := Transfer(context.Background(), fs, Spec{Path: "/data.bin", Mode: ModePreview, Limit: 16}, &out)
	require.NoError(t, err)
	assert.Equal(t, int64(16), n)
	assert.Equal(t, data[:16], out.Bytes())
}

func TestFullTransferChunks(t *testing.T) {
	size := 2*DefaultChunkSize + 100
	fs, data := memFile(t, size)

	s, err := Open(fs, Spec{Path: "/data.bin", Mode: ModeFull})
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, int64(size), s.Length())

	rec := &chunkRecorder{}
	n, err := s.Copy(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, int64(size), n)
	assert.Equal(t, data, rec.Bytes())
	assert.Equal(t, []int{DefaultChunkSize, DefaultChunkSize, 100}, rec.writes)
}

func TestCustomChunkSize(t *testing.T) {
	fs, _ := memFile(t, 10)

	rec := &chunkRecorder{}
	_, err := Transfer(context.Background(), fs, Spec{Path: "/data.bin", ChunkSize: 4}, rec)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4, 2}, rec.writes)
}

func TestOpenFailures(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/dir", 0o755))

	_, err := Open(fs, Spec{Path: "/missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Open(fs, Spec{Path: "/dir"})
	assert.ErrorIs(t, err, ErrNotFound)

	var out bytes.Buffer
	n, err := Transfer(context.Background(), fs, Spec{Path: "/missing"}, &out)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, n)
	assert.Zero(t, out.Len())
}

func TestWriteFailureAborts(t *testing.T) {
	fs, _ := memFile(t, 3*DefaultChunkSize)

	w := &failingWriter{after: DefaultChunkSize}
	n, err := Transfer(context.Background(), fs, Spec{Path: "/data.bin"}, w)
	require.Error(t, err)
	assert.Equal(t, int64(DefaultChunkSize), n)
}

func TestCancelledContext(t *testing.T) {
	fs, _ := memFile(t, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	n, err := Transfer(ctx, fs, Spec{Path: "/data.bin"}, &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestFileShrinksDuringTransfer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shrinking.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 4*DefaultChunkSize), 0o644))

	s, err := Open(afero.NewOsFs(), Spec{Path: path})
	require.NoError(t, err)
	defer s.Close()
	require.Equal(t, int64(4*DefaultChunkSize), s.Length())

	require.NoError(t, os.Truncate(path, DefaultChunkSize))

	var out bytes.Buffer
	n, err := s.Copy(context.Background(), &out)
	assert.ErrorIs(t, err, ErrShortRead)
	assert.Equal(t, int64(DefaultChunkSize), n)
}

func TestFileGrowsDuringTransfer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "growing.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 100), 0o644))

	s, err := Open(afero.NewOsFs(), Spec{Path: path})
	require.NoError(t, err)
	defer s.Close()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.Write(make([]byte, 500))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	var out bytes.Buffer
	n, err := s.Copy(context.Background(), &out)
	require.NoError(t, err)
	assert.Equal(t, int64(100), n)
	assert.Equal(t, 100, out.Len())
}

func TestCloseIdempotent(t *testing.T) {
	fs, _ := memFile(t, 1)
	s, err := Open(fs, Spec{Path: "/data.bin"})
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
