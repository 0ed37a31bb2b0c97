package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for tree and command operations.
const (
	AttrClientIP = "client.ip"

	AttrOperation = "tree.operation" // list, download, preview
	AttrPath      = "tree.path"      // client-supplied relative path
	AttrResolved  = "tree.resolved"  // sandbox-resolved absolute path
	AttrEntries   = "tree.entries"

	AttrTransferMode  = "transfer.mode"
	AttrTransferSize  = "transfer.file_size"
	AttrTransferLen   = "transfer.length"
	AttrTransferBytes = "transfer.bytes_sent"

	AttrCommandCode     = "command.code"
	AttrCommandType     = "command.type"
	AttrCommandExecutor = "command.executor"
	AttrCommandExecID   = "command.execution_id"
	AttrCommandExitCode = "command.exit_code"
)

func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

func Path(p string) attribute.KeyValue {
	return attribute.String(AttrPath, p)
}

func Resolved(p string) attribute.KeyValue {
	return attribute.String(AttrResolved, p)
}

func Entries(n int) attribute.KeyValue {
	return attribute.Int(AttrEntries, n)
}

func TransferMode(m string) attribute.KeyValue {
	return attribute.String(AttrTransferMode, m)
}

func TransferSize(n int64) attribute.KeyValue {
	return attribute.Int64(AttrTransferSize, n)
}

func TransferLength(n int64) attribute.KeyValue {
	return attribute.Int64(AttrTransferLen, n)
}

func BytesSent(n int64) attribute.KeyValue {
	return attribute.Int64(AttrTransferBytes, n)
}

func CommandCode(code string) attribute.KeyValue {
	return attribute.String(AttrCommandCode, code)
}

func CommandType(t string) attribute.KeyValue {
	return attribute.String(AttrCommandType, t)
}

func CommandExecutor(name string) attribute.KeyValue {
	return attribute.String(AttrCommandExecutor, name)
}

func ExecutionID(id string) attribute.KeyValue {
	return attribute.String(AttrCommandExecID, id)
}

func ExitCode(code int) attribute.KeyValue {
	return attribute.Int(AttrCommandExitCode, code)
}

// StartTreeSpan starts a span for a list/download/preview operation.
func StartTreeSpan(ctx context.Context, operation, path string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	all := append([]attribute.KeyValue{
		attribute.String(AttrOperation, operation),
		Path(path),
	}, attrs...)
	return StartSpan(ctx, "tree."+operation, trace.WithAttributes(all...))
}

// StartTransferSpan starts a span covering one bounded copy.
func StartTransferSpan(ctx context.Context, mode string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	all := append([]attribute.KeyValue{TransferMode(mode)}, attrs...)
	return StartSpan(ctx, "transfer.copy", trace.WithAttributes(all...))
}

// StartCommandSpan starts a span for executing one command payload.
func StartCommandSpan(ctx context.Context, executor string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	all := append([]attribute.KeyValue{CommandExecutor(executor)}, attrs...)
	return StartSpan(ctx, "command.execute", trace.WithAttributes(all...))
}
