package api

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/marmos91/treeport/internal/logger"
	"github.com/marmos91/treeport/internal/telemetry"
	"github.com/marmos91/treeport/pkg/api/handlers"
	"github.com/marmos91/treeport/pkg/command"
	"github.com/marmos91/treeport/pkg/metrics"
	"github.com/marmos91/treeport/pkg/sandbox"
)

// Dependencies are the collaborators the router dispatches to.
type Dependencies struct {
	Sandbox  *sandbox.Sandbox
	Executor command.Executor
	Metrics  metrics.ServerMetrics

	PreviewSize    int64
	ChunkSize      int
	MaxCommandBody int64
}

// NewRouter creates the chi router with all middleware and routes.
//
// Routes:
//   - GET  /list      - directory listing
//   - GET  /download  - full file stream
//   - GET  /preview   - head of a file
//   - GET  /encode    - encode a command line
//   - POST /command   - run a command payload
//   - GET  /health, /health/ready
//
// Every route answers any other method with 405 and an Allow header.
func NewRouter(config APIConfig, deps Dependencies) http.Handler {
	config.ApplyDefaults()

	executor := deps.Executor
	if executor == nil {
		executor = command.EncodeExecutor{}
	}

	tree := handlers.NewTreeHandler(deps.Sandbox, handlers.TreeOptions{
		PreviewSize: deps.PreviewSize,
		ChunkSize:   deps.ChunkSize,
		Metrics:     deps.Metrics,
	})
	cmd := handlers.NewCommandHandler(executor, deps.MaxCommandBody, deps.Metrics)
	health := handlers.NewHealthHandler(deps.Sandbox)

	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(deps.Metrics))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.NotFound(w, handlers.NotFoundDetail)
	})

	// Streaming routes run as long as the transfer needs.
	r.Group(func(r chi.Router) {
		r.HandleFunc("/download", only(http.MethodGet, tree.Download))
		r.HandleFunc("/preview", only(http.MethodGet, tree.Preview))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(config.RequestTimeout))

		r.HandleFunc("/list", only(http.MethodGet, tree.List))
		r.HandleFunc("/encode", only(http.MethodGet, cmd.Encode))
		r.HandleFunc("/command", only(http.MethodPost, cmd.Command))
		r.HandleFunc("/health", only(http.MethodGet, health.Liveness))
		r.HandleFunc("/health/ready", only(http.MethodGet, health.Readiness))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	return otelhttp.NewHandler(r, "treeport",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

// only rejects every method but method with 405 before h runs.
func only(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			handlers.MethodNotAllowed(w, method)
			return
		}
		h(w, r)
	}
}

// requestLogger logs each request through the internal logger and stores
// a LogContext on the request for handlers to use.
//
// It logs:
//   - Request start (DEBUG level): method, path
//   - Request completion (INFO level): method, path, status, duration
//   - Aborted requests (WARN level) when a handler panics
func requestLogger(m metrics.ServerMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			lc := logger.NewLogContext(middleware.GetReqID(ctx), clientIP(r)).
				WithTrace(telemetry.TraceID(ctx), telemetry.SpanID(ctx))
			ctx = logger.WithContext(ctx, lc)

			logger.DebugCtx(ctx, "API request started",
				logger.KeyMethod, r.Method,
				logger.KeyPath, r.URL.Path,
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			completed := false

			defer func() {
				duration := time.Since(start)
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				metrics.ObserveRequest(m, routePattern(r), r.Method, status, duration)

				args := []any{
					logger.KeyMethod, r.Method,
					logger.KeyPath, r.URL.Path,
					logger.KeyStatus, status,
					"bytes", ww.BytesWritten(),
					logger.DurationMs(duration),
				}
				if completed {
					logger.InfoCtx(ctx, "API request completed", args...)
				} else {
					logger.WarnCtx(ctx, "API request aborted", args...)
				}
			}()

			next.ServeHTTP(ww, r.WithContext(ctx))
			completed = true
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
