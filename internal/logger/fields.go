package logger

import (
	"log/slog"
	"time"
)

// Standard field keys. Using the constants keeps log queries stable
// across packages.
const (
	KeyTraceID   = "trace_id"
	KeySpanID    = "span_id"
	KeyRequestID = "request_id"
	KeyOperation = "operation" // list, download, preview, command, encode
	KeyClientIP  = "client_ip"

	KeyRoot     = "root"
	KeyPath     = "path"     // client-supplied relative path
	KeyResolved = "resolved" // sandbox-resolved absolute path
	KeyKind     = "kind"     // file or dir
	KeySize     = "size"
	KeyEntries  = "entries"

	KeyMode      = "mode" // full or preview
	KeyLength    = "length"
	KeyBytesSent = "bytes_sent"
	KeyChunkSize = "chunk_size"

	KeyExecutor    = "executor"
	KeyExecutionID = "execution_id"
	KeyCommandCode = "command_code"
	KeyCommandType = "command_type"
	KeyExitCode    = "exit_code"

	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyDurationMs = "duration_ms"
	KeyError      = "error"
)

func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

func Resolved(p string) slog.Attr {
	return slog.String(KeyResolved, p)
}

func Size(n int64) slog.Attr {
	return slog.Int64(KeySize, n)
}

func Entries(n int) slog.Attr {
	return slog.Int(KeyEntries, n)
}

// BytesSent records the number of bytes written to a client.
func BytesSent(n int64) slog.Attr {
	return slog.Int64(KeyBytesSent, n)
}

func Mode(m string) slog.Attr {
	return slog.String(KeyMode, m)
}

func ExecutionID(id string) slog.Attr {
	return slog.String(KeyExecutionID, id)
}

// DurationMs records an elapsed duration as fractional milliseconds.
func DurationMs(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMs, float64(d.Microseconds())/1000.0)
}

// Err records an error. A nil error yields an empty attribute, which handlers drop.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
