package command

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/google/uuid"

	"github.com/marmos91/treeport/internal/logger"
)

const (
	// DefaultProcessTimeout bounds a single process run.
	DefaultProcessTimeout = 30 * time.Second

	// DefaultMaxOutput caps combined stdout and stderr.
	DefaultMaxOutput = 1 << 20
)

var (
	// ErrTimeout is returned when the process outlives its timeout.
	ErrTimeout = errors.New("command timed out")

	// ErrOutputLimit is returned when the process writes more than MaxOutput bytes.
	ErrOutputLimit = errors.New("command output exceeds limit")
)

// ExitError reports a process that exited with a non-zero status.
type ExitError struct {
	Code   int
	Output []byte
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.Code)
}

// ProcessOptions configures a ProcessExecutor.
type ProcessOptions struct {
	Program   string
	Args      []string
	Timeout   time.Duration
	MaxOutput int64
}

// ProcessExecutor runs Program with Args followed by the payload as one
// final argument. No shell is involved.
type ProcessExecutor struct {
	opts ProcessOptions
}

// NewProcessExecutor validates opts and fills in defaults.
func NewProcessExecutor(opts ProcessOptions) (*ProcessExecutor, error) {
	if opts.Program == "" {
		return nil, errors.New("process executor requires a program")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultProcessTimeout
	}
	if opts.MaxOutput <= 0 {
		opts.MaxOutput = DefaultMaxOutput
	}
	opts.Args = append([]string(nil), opts.Args...)
	return &ProcessExecutor{opts: opts}, nil
}

func (p *ProcessExecutor) Name() string { return KindProcess }

func (p *ProcessExecutor) Execute(ctx context.Context, payload []byte) (Result, error) {
	id := uuid.NewString()
	res := Result{ContentType: "text/plain; charset=utf-8", ExecutionID: id}

	runCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	args := append(append([]string(nil), p.opts.Args...), string(payload))
	cmd := exec.CommandContext(runCtx, p.opts.Program, args...)
	out := &limitedBuffer{limit: p.opts.MaxOutput}
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.WaitDelay = time.Second

	lc := logger.FromContext(ctx)
	if lc == nil {
		lc = logger.NewLogContext("", "")
	}
	logCtx := logger.WithContext(ctx, lc.WithOperation("command.process"))

	start := time.Now()
	logger.DebugCtx(logCtx, "Starting command process",
		logger.ExecutionID(id), "program", p.opts.Program, "payload_bytes", len(payload))

	err := cmd.Run()
	res.Output = out.Bytes()
	elapsed := time.Since(start)

	switch {
	case runCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil:
		err = fmt.Errorf("%w after %s", ErrTimeout, p.opts.Timeout)
	case ctx.Err() != nil:
		err = ctx.Err()
	case out.overflow:
		err = fmt.Errorf("%w of %d bytes", ErrOutputLimit, p.opts.MaxOutput)
	case err != nil:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = &ExitError{Code: exitErr.ExitCode(), Output: res.Output}
		} else {
			err = fmt.Errorf("run %s: %w", p.opts.Program, err)
		}
	}

	if err != nil {
		logger.WarnCtx(logCtx, "Command process failed",
			logger.ExecutionID(id), logger.DurationMs(elapsed), logger.Err(err))
		return res, err
	}

	logger.DebugCtx(logCtx, "Command process finished",
		logger.ExecutionID(id), logger.DurationMs(elapsed), logger.Size(int64(len(res.Output))))
	return res, nil
}

// limitedBuffer keeps at most limit bytes and records whether more were
// offered. Writes always report success so the child never blocks on a
// full pipe.
type limitedBuffer struct {
	buf      []byte
	limit    int64
	overflow bool
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	room := b.limit - int64(len(b.buf))
	if int64(len(p)) > room {
		b.overflow = true
		if room > 0 {
			b.buf = append(b.buf, p[:room]...)
		}
		return len(p), nil
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *limitedBuffer) Bytes() []byte {
	if b.buf == nil {
		return []byte{}
	}
	return b.buf
}
