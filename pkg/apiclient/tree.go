package apiclient

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"

	"github.com/marmos91/treeport/pkg/listing"
)

// ListResponse is the body of GET /list.
type ListResponse struct {
	Files []listing.DirEntry `json:"files"`
}

// List returns the entries of dir, relative to the served root.
func (c *Client) List(ctx context.Context, dir string) ([]listing.DirEntry, error) {
	var resp ListResponse
	if err := c.getJSON(ctx, "/list", url.Values{"path": {dir}}, &resp); err != nil {
		return nil, err
	}
	if resp.Files == nil {
		resp.Files = []listing.DirEntry{}
	}
	return resp.Files, nil
}

// StreamInfo describes a completed download or preview.
type StreamInfo struct {
	// Filename is taken from Content-Disposition, falling back to the
	// last element of the requested path.
	Filename string
	// Length is the announced Content-Length, or -1 if none was sent.
	Length int64
	// Written is the number of bytes copied to the destination.
	Written int64
}

// Download streams the full contents of file into w.
func (c *Client) Download(ctx context.Context, file string, w io.Writer) (*StreamInfo, error) {
	return c.stream(ctx, "/download", file, w)
}

// Preview streams the leading bytes of file into w.
func (c *Client) Preview(ctx context.Context, file string, w io.Writer) (*StreamInfo, error) {
	return c.stream(ctx, "/preview", file, w)
}

func (c *Client) stream(ctx context.Context, endpoint, file string, w io.Writer) (*StreamInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, url.Values{"file": {file}}, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	info := &StreamInfo{
		Filename: filenameFrom(resp.Header, file),
		Length:   resp.ContentLength,
	}

	info.Written, err = io.Copy(w, resp.Body)
	if err != nil {
		return info, fmt.Errorf("stream %s: %w", file, err)
	}
	if info.Length >= 0 && info.Written != info.Length {
		return info, fmt.Errorf("%w: got %d of %d bytes", ErrIncompleteTransfer, info.Written, info.Length)
	}
	return info, nil
}

// filenameFrom prefers the RFC 5987 filename* parameter, which
// mime.ParseMediaType decodes, over the ASCII filename.
func filenameFrom(h http.Header, requested string) string {
	if cd := h.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			return path.Base(params["filename"])
		}
	}
	return path.Base(path.Clean("/" + requested))
}
