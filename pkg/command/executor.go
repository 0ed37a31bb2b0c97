package command

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Executor kinds accepted by NewExecutor.
const (
	KindEncode  = "encode"
	KindParse   = "parse"
	KindProcess = "process"
)

// Result is the output of one execution.
type Result struct {
	Output      []byte
	ContentType string
	// ExecutionID is set by executors that track individual runs.
	ExecutionID string
}

// Executor runs a raw command payload. The payload is passed exactly as
// received; executors must not reinterpret it through a shell.
type Executor interface {
	Name() string
	Execute(ctx context.Context, payload []byte) (Result, error)
}

// NewExecutor returns the executor registered under kind. opts is only
// used by the process executor.
func NewExecutor(kind string, opts ProcessOptions) (Executor, error) {
	switch strings.ToLower(kind) {
	case "", KindEncode:
		return EncodeExecutor{}, nil
	case KindParse:
		return ParseExecutor{}, nil
	case KindProcess:
		return NewProcessExecutor(opts)
	default:
		return nil, fmt.Errorf("unknown command executor %q", kind)
	}
}

// EncodeExecutor replies with the encoded form of the payload.
type EncodeExecutor struct{}

func (EncodeExecutor) Name() string { return KindEncode }

func (EncodeExecutor) Execute(_ context.Context, payload []byte) (Result, error) {
	return Result{
		Output:      []byte(Encode(string(payload)).String() + "\n"),
		ContentType: "text/plain; charset=utf-8",
	}, nil
}

// ParseReport is the document produced by ParseExecutor.
type ParseReport struct {
	Parsed
	Type    string  `json:"type"`
	Encoded Encoded `json:"encoded"`
	Line    string  `json:"line"`
}

// ParseExecutor replies with a JSON description of the parsed payload.
type ParseExecutor struct{}

func (ParseExecutor) Name() string { return KindParse }

func (ParseExecutor) Execute(_ context.Context, payload []byte) (Result, error) {
	parsed := Parse(string(payload))
	enc := parsed.Encode()

	report := ParseReport{
		Parsed:  parsed,
		Type:    enc.Type,
		Encoded: enc,
		Line:    enc.String(),
	}
	out, err := json.Marshal(report)
	if err != nil {
		return Result{}, fmt.Errorf("marshal parse report: %w", err)
	}
	return Result{
		Output:      append(out, '\n'),
		ContentType: "application/json",
	}, nil
}
