// Package transfer streams file contents to a writer in bounded chunks.
//
// A Stream is opened once, announces its exact length before any byte is
// written, and then copies at most that many bytes. The length is fixed at
// open time, so a file that grows while it is being sent does not push
// extra bytes past the announced length, and a file that shrinks is
// reported as a short read rather than silently truncated.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/marmos91/treeport/pkg/bufpool"
)

const (
	// DefaultPreviewLimit is the number of leading bytes sent in preview mode.
	DefaultPreviewLimit = 1024

	// DefaultChunkSize is the size of each read/write step.
	DefaultChunkSize = 8 << 10
)

var (
	// ErrNotFound is returned when the file cannot be opened for streaming.
	ErrNotFound = errors.New("not found")

	// ErrShortRead is returned when the file ends before the announced length.
	ErrShortRead = errors.New("file shorter than announced length")
)

// Mode selects how much of a file is sent.
type Mode int

const (
	// ModeFull sends the whole file.
	ModeFull Mode = iota
	// ModePreview sends at most the preview limit.
	ModePreview
)

func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModePreview:
		return "preview"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Spec describes one transfer.
type Spec struct {
	// Path is the already-confined absolute file path.
	Path string
	Mode Mode
	// Limit caps preview length. Zero means DefaultPreviewLimit.
	Limit int64
	// ChunkSize is the copy step. Zero means DefaultChunkSize.
	ChunkSize int
}

// Stream is an open, length-bounded file transfer.
type Stream struct {
	file      afero.File
	name      string
	mode      Mode
	size      int64
	length    int64
	chunkSize int
	closed    bool
}

// Open opens spec.Path on fs and computes the transfer length. Any failure
// to open or stat the file, or a target that is not a regular file, is
// reported as ErrNotFound before anything is written.
func Open(fs afero.Fs, spec Spec) (*Stream, error) {
	f, err := fs.Open(spec.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, spec.Path)
	}

	chunk := spec.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}

	size := info.Size()
	length := size
	if spec.Mode == ModePreview {
		limit := spec.Limit
		if limit <= 0 {
			limit = DefaultPreviewLimit
		}
		length = min(size, limit)
	}

	return &Stream{
		file:      f,
		name:      filepath.Base(spec.Path),
		mode:      spec.Mode,
		size:      size,
		length:    length,
		chunkSize: chunk,
	}, nil
}

// Length is the exact number of bytes Copy will write.
func (s *Stream) Length() int64 { return s.length }

// Size is the file size observed at open time.
func (s *Stream) Size() int64 { return s.size }

// Name is the base name of the file.
func (s *Stream) Name() string { return s.name }

// Mode is the transfer mode.
func (s *Stream) Mode() Mode { return s.mode }

// Copy writes exactly Length bytes to w in chunks. It stops at the first
// read or write failure or when ctx is cancelled, returning the number of
// bytes already written.
func (s *Stream) Copy(ctx context.Context, w io.Writer) (int64, error) {
	buf := bufpool.Get(s.chunkSize)
	defer bufpool.Put(buf)

	var sent int64
	for sent < s.length {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		want := min(int64(len(buf)), s.length-sent)
		n, err := io.ReadFull(s.file, buf[:want])
		if n > 0 {
			written, werr := w.Write(buf[:n])
			sent += int64(written)
			if werr != nil {
				return sent, werr
			}
			if written != n {
				return sent, io.ErrShortWrite
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return sent, fmt.Errorf("%w: sent %d of %d bytes", ErrShortRead, sent, s.length)
			}
			return sent, err
		}
	}
	return sent, nil
}

// Close releases the file. It is safe to call more than once.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}

// Transfer opens spec, copies it to w and closes it.
func Transfer(ctx context.Context, fs afero.Fs, spec Spec, w io.Writer) (int64, error) {
	s, err := Open(fs, spec)
	if err != nil {
		return 0, err
	}
	defer func() { _ = s.Close() }()
	return s.Copy(ctx, w)
}
