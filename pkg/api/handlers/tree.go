package handlers

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/marmos91/treeport/internal/logger"
	"github.com/marmos91/treeport/internal/telemetry"
	"github.com/marmos91/treeport/pkg/listing"
	"github.com/marmos91/treeport/pkg/metrics"
	"github.com/marmos91/treeport/pkg/sandbox"
	"github.com/marmos91/treeport/pkg/transfer"
)

// TreeOptions tunes the tree handlers.
type TreeOptions struct {
	// PreviewSize caps preview responses. Zero means transfer.DefaultPreviewLimit.
	PreviewSize int64
	// ChunkSize is the copy step. Zero means transfer.DefaultChunkSize.
	ChunkSize int
	Metrics   metrics.ServerMetrics
}

// TreeHandler serves listings, previews and downloads from one sandbox.
type TreeHandler struct {
	sandbox *sandbox.Sandbox
	opts    TreeOptions
}

// ListResponse is the body of GET /list.
type ListResponse struct {
	Files []listing.DirEntry `json:"files"`
}

// NewTreeHandler creates a tree handler rooted at sb.
func NewTreeHandler(sb *sandbox.Sandbox, opts TreeOptions) *TreeHandler {
	if opts.PreviewSize <= 0 {
		opts.PreviewSize = transfer.DefaultPreviewLimit
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = transfer.DefaultChunkSize
	}
	return &TreeHandler{sandbox: sb, opts: opts}
}

// List handles GET /list?path=<dir>. An absent path lists the root.
func (h *TreeHandler) List(w http.ResponseWriter, r *http.Request) {
	raw, _ := QueryParam(r, "path")
	ctx, span := telemetry.StartTreeSpan(r.Context(), "list", raw)
	defer span.End()
	ctx = withOperation(ctx, "list")

	dir, err := h.sandbox.ResolveDir(raw)
	if err != nil {
		h.reject(ctx, w, "list", raw, err)
		return
	}

	entries, err := listing.List(h.sandbox.Fs(), dir, listing.FollowLinksIf(h.sandbox.Contains))
	if err != nil {
		if isMissing(err) {
			h.reject(ctx, w, "list", raw, err)
			return
		}
		telemetry.RecordError(ctx, err)
		logger.ErrorCtx(ctx, "Failed to list directory", logger.Resolved(dir), logger.Err(err))
		InternalServerError(w, "failed to list directory")
		return
	}

	telemetry.SetAttributes(ctx, telemetry.Resolved(dir), telemetry.Entries(len(entries)))
	logger.DebugCtx(ctx, "Listed directory", logger.Resolved(dir), logger.Entries(len(entries)))
	WriteJSON(w, http.StatusOK, ListResponse{Files: entries})
}

// Download handles GET /download?file=<path> and streams the whole file.
func (h *TreeHandler) Download(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, transfer.ModeFull)
}

// Preview handles GET /preview?file=<path> and streams the head of the file.
func (h *TreeHandler) Preview(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, transfer.ModePreview)
}

func (h *TreeHandler) stream(w http.ResponseWriter, r *http.Request, mode transfer.Mode) {
	op := "download"
	if mode == transfer.ModePreview {
		op = "preview"
	}

	raw, ok := requiredParam(w, r, "file")
	if !ok {
		return
	}

	ctx, span := telemetry.StartTreeSpan(r.Context(), op, raw)
	defer span.End()
	ctx = withOperation(ctx, op)

	path, _, err := h.sandbox.ResolveFile(raw)
	if err != nil {
		h.reject(ctx, w, op, raw, err)
		return
	}

	s, err := transfer.Open(h.sandbox.Fs(), transfer.Spec{
		Path:      path,
		Mode:      mode,
		Limit:     h.opts.PreviewSize,
		ChunkSize: h.opts.ChunkSize,
	})
	if err != nil {
		h.reject(ctx, w, op, raw, err)
		return
	}
	defer func() { _ = s.Close() }()

	header := w.Header()
	header.Set("Content-Length", strconv.FormatInt(s.Length(), 10))
	header.Set("X-Content-Type-Options", "nosniff")
	header.Set("Content-Type", "application/octet-stream")
	if mode == transfer.ModeFull {
		header.Set("Content-Disposition", ContentDisposition(s.Name()))
	}
	w.WriteHeader(http.StatusOK)

	copyCtx, copySpan := telemetry.StartTransferSpan(ctx, mode.String(),
		telemetry.TransferSize(s.Size()), telemetry.TransferLength(s.Length()))
	start := time.Now()
	sent, err := s.Copy(copyCtx, w)
	elapsed := time.Since(start)
	copySpan.SetAttributes(telemetry.BytesSent(sent))
	metrics.ObserveTransfer(h.opts.Metrics, mode.String(), sent, elapsed, err)

	if err != nil {
		telemetry.RecordError(copyCtx, err)
		copySpan.End()
		logger.WarnCtx(ctx, "Transfer aborted",
			logger.Resolved(path), logger.Mode(mode.String()),
			logger.KeyLength, s.Length(), logger.BytesSent(sent), logger.Err(err))
		// Headers are already sent.
		panic(http.ErrAbortHandler)
	}
	copySpan.End()

	logger.DebugCtx(ctx, "Transfer completed",
		logger.Resolved(path), logger.Mode(mode.String()),
		logger.BytesSent(sent), logger.DurationMs(elapsed))
}

// reject answers 404 for any path the sandbox refuses or that does not
// exist. The reason is logged, never returned.
func (h *TreeHandler) reject(ctx context.Context, w http.ResponseWriter, op, raw string, err error) {
	metrics.ObserveRejection(h.opts.Metrics, op)
	logger.DebugCtx(ctx, "Path rejected", logger.Path(raw), logger.Err(err))
	NotFound(w, NotFoundDetail)
}

func isMissing(err error) bool {
	return errors.Is(err, listing.ErrNotDirectory) ||
		errors.Is(err, sandbox.ErrNotFound) ||
		errors.Is(err, transfer.ErrNotFound) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission)
}

func withOperation(ctx context.Context, op string) context.Context {
	lc := logger.FromContext(ctx)
	if lc == nil {
		return ctx
	}
	return logger.WithContext(ctx, lc.WithOperation(op))
}

// ContentDisposition builds an attachment header carrying name both as a
// quoted ASCII fallback and as an RFC 5987 UTF-8 value.
func ContentDisposition(name string) string {
	var fallback strings.Builder
	for _, r := range name {
		switch {
		case r == '"' || r == '\\' || r < 0x20 || r > 0x7e:
			fallback.WriteByte('_')
		default:
			fallback.WriteRune(r)
		}
	}
	return `attachment; filename="` + fallback.String() + `"; filename*=UTF-8''` + extValue(name)
}

// extValue percent-encodes every byte outside the RFC 5987 attr-char set.
func extValue(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}
