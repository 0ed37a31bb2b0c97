package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/marmos91/treeport/internal/logger"
	"github.com/marmos91/treeport/internal/telemetry"
	"github.com/marmos91/treeport/pkg/command"
	"github.com/marmos91/treeport/pkg/metrics"
)

// DefaultMaxCommandBody caps POST /command bodies.
const DefaultMaxCommandBody = 64 << 10

// ExecutionIDHeader carries the execution ID of tracked runs.
const ExecutionIDHeader = "X-Execution-ID"

// ExitCodeHeader carries the status of a program that exited non-zero.
// Its output is still relayed with 200.
const ExitCodeHeader = "X-Exit-Code"

// CommandHandler serves the command endpoints.
type CommandHandler struct {
	executor command.Executor
	maxBody  int64
	metrics  metrics.ServerMetrics
}

// NewCommandHandler creates a command handler. maxBody <= 0 selects
// DefaultMaxCommandBody.
func NewCommandHandler(executor command.Executor, maxBody int64, m metrics.ServerMetrics) *CommandHandler {
	if maxBody <= 0 {
		maxBody = DefaultMaxCommandBody
	}
	return &CommandHandler{executor: executor, maxBody: maxBody, metrics: m}
}

// Command handles POST /command. The body is passed to the executor
// byte for byte and the executor output is returned verbatim.
func (h *CommandHandler) Command(w http.ResponseWriter, r *http.Request) {
	ctx := withOperation(r.Context(), "command")

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			PayloadTooLarge(w, "command body exceeds "+strconv.FormatInt(h.maxBody, 10)+" bytes")
			return
		}
		BadRequest(w, "failed to read command body")
		return
	}

	ctx, span := telemetry.StartCommandSpan(ctx, h.executor.Name())
	defer span.End()

	start := time.Now()
	res, err := h.executor.Execute(ctx, payload)
	elapsed := time.Since(start)
	metrics.ObserveCommand(h.metrics, h.executor.Name(), elapsed, err)

	if res.ExecutionID != "" {
		w.Header().Set(ExecutionIDHeader, res.ExecutionID)
		telemetry.SetAttributes(ctx, telemetry.ExecutionID(res.ExecutionID))
	}

	var exitErr *command.ExitError
	if errors.As(err, &exitErr) {
		telemetry.AddEvent(ctx, "command.exited", telemetry.ExitCode(exitErr.Code))
		logger.WarnCtx(ctx, "Command exited non-zero",
			logger.KeyExecutor, h.executor.Name(),
			logger.KeyExitCode, exitErr.Code,
			logger.ExecutionID(res.ExecutionID),
			logger.DurationMs(elapsed))
		w.Header().Set(ExitCodeHeader, strconv.Itoa(exitErr.Code))
		if exitErr.Output != nil {
			res.Output = exitErr.Output
		}
		err = nil
	}

	if err != nil {
		telemetry.RecordError(ctx, err)
		args := []any{logger.KeyExecutor, h.executor.Name(), logger.DurationMs(elapsed), logger.Err(err)}
		if res.ExecutionID != "" {
			args = append(args, logger.ExecutionID(res.ExecutionID))
		}
		logger.ErrorCtx(ctx, "Command execution failed", args...)
		InternalServerError(w, err.Error())
		return
	}

	contentType := res.ContentType
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Output)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Output)

	logger.InfoCtx(ctx, "Command executed",
		logger.KeyExecutor, h.executor.Name(),
		logger.Size(int64(len(payload))),
		logger.DurationMs(elapsed))
}

// Encode handles GET /encode?cmd=<line> and returns the encoded line.
func (h *CommandHandler) Encode(w http.ResponseWriter, r *http.Request) {
	raw, ok := requiredParam(w, r, "cmd")
	if !ok {
		return
	}
	line, err := url.PathUnescape(raw)
	if err != nil {
		BadRequest(w, "malformed percent-encoding in \"cmd\"")
		return
	}

	enc := command.Encode(line)
	telemetry.SetAttributes(r.Context(), telemetry.CommandCode(enc.Code), telemetry.CommandType(enc.Type))
	logger.DebugCtx(withOperation(r.Context(), "encode"), "Encoded command",
		logger.KeyCommandCode, enc.Code, logger.KeyCommandType, enc.Type)

	out := enc.String()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, out)
}
