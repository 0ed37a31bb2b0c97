package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects logger output to a buffer and restores the
// previous settings when the test finishes.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)

	mu.Lock()
	originalOutput, originalColor := output, useColor
	mu.Unlock()
	originalLevel := Level(currentLevel.Load())
	originalFormat, _ := currentFormat.Load().(string)

	InitWithWriter(buf, "", "text", false)

	t.Cleanup(func() {
		mu.Lock()
		output, useColor = originalOutput, originalColor
		mu.Unlock()
		currentLevel.Store(int32(originalLevel))
		currentFormat.Store(originalFormat)
		reconfigure()
	})
	return buf
}

func TestLevelFiltering(t *testing.T) {
	t.Run("DebugShowsEverything", func(t *testing.T) {
		buf := captureOutput(t)
		SetLevel("DEBUG")

		Debug("debug message")
		Info("info message")
		Warn("warn message")
		Error("error message")

		out := buf.String()
		for _, want := range []string{"[DEBUG] debug message", "[INFO] info message", "[WARN] warn message", "[ERROR] error message"} {
			assert.Contains(t, out, want)
		}
	})

	t.Run("WarnFiltersDebugAndInfo", func(t *testing.T) {
		buf := captureOutput(t)
		SetLevel("warn")

		Debug("debug message")
		Info("info message")
		Warn("warn message")

		out := buf.String()
		assert.NotContains(t, out, "debug message")
		assert.NotContains(t, out, "info message")
		assert.Contains(t, out, "warn message")
	})

	t.Run("ErrorIsNeverFiltered", func(t *testing.T) {
		buf := captureOutput(t)
		SetLevel("ERROR")

		Warn("warn message")
		Error("error message")

		assert.NotContains(t, buf.String(), "warn message")
		assert.Contains(t, buf.String(), "error message")
	})
}

func TestSetLevelIgnoresInvalidValues(t *testing.T) {
	captureOutput(t)
	SetLevel("WARN")
	SetLevel("LOUD")
	assert.Equal(t, LevelWarn, Level(currentLevel.Load()))
}

func TestParseLevel(t *testing.T) {
	l, ok := ParseLevel("warning")
	assert.True(t, ok)
	assert.Equal(t, LevelWarn, l)

	_, ok = ParseLevel("verbose")
	assert.False(t, ok)

	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestTextFormatting(t *testing.T) {
	buf := captureOutput(t)

	Info("listing served", KeyPath, "docs/a b", KeyEntries, 3, KeyError, errors.New("boom"))

	line := buf.String()
	assert.Contains(t, line, "[INFO] listing served")
	assert.Contains(t, line, `path="docs/a b"`)
	assert.Contains(t, line, "entries=3")
	assert.Contains(t, line, `error="boom"`)
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestTextHandlerGroupsAndAttrs(t *testing.T) {
	buf := captureOutput(t)

	With("component", "transfer").WithGroup("stream").Info("copied", "bytes", 10)

	line := buf.String()
	assert.Contains(t, line, "component=transfer")
	assert.Contains(t, line, "stream.bytes=10")
}

func TestEmptyAttrIsDropped(t *testing.T) {
	buf := captureOutput(t)

	Info("no error", Err(nil))

	assert.NotContains(t, buf.String(), KeyError)
}

func TestJSONFormat(t *testing.T) {
	buf := captureOutput(t)
	setFormat("json")

	Info("preview served", BytesSent(1024), Mode("preview"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "preview served", record["msg"])
	assert.Equal(t, float64(1024), record[KeyBytesSent])
	assert.Equal(t, "preview", record[KeyMode])
}

func TestUnknownFormatIsIgnored(t *testing.T) {
	buf := captureOutput(t)
	setFormat("xml")

	Info("still text")
	assert.Contains(t, buf.String(), "[INFO] still text")
}

func TestContextFields(t *testing.T) {
	buf := captureOutput(t)

	lc := NewLogContext("req-1", "10.0.0.7").WithOperation("download").WithTrace("abc", "def")
	ctx := WithContext(context.Background(), lc)

	InfoCtx(ctx, "download complete", KeySize, 42)

	line := buf.String()
	assert.Contains(t, line, "request_id=req-1")
	assert.Contains(t, line, "operation=download")
	assert.Contains(t, line, "client_ip=10.0.0.7")
	assert.Contains(t, line, "trace_id=abc")
	assert.Less(t, strings.Index(line, "request_id"), strings.Index(line, "size=42"))
}

func TestContextWithoutLogContext(t *testing.T) {
	buf := captureOutput(t)

	WarnCtx(context.Background(), "plain")
	assert.Contains(t, buf.String(), "[WARN] plain")
	assert.Nil(t, FromContext(nil)) //nolint:staticcheck
}

func TestLogContextClone(t *testing.T) {
	var nilCtx *LogContext
	assert.Nil(t, nilCtx.Clone())
	assert.Zero(t, nilCtx.DurationMs())

	lc := NewLogContext("r", "ip")
	op := lc.WithOperation("list")
	assert.Empty(t, lc.Operation)
	assert.Equal(t, "list", op.Operation)
	assert.GreaterOrEqual(t, op.DurationMs(), 0.0)
}

func TestInitWithFileOutput(t *testing.T) {
	captureOutput(t)

	path := filepath.Join(t.TempDir(), "treeport.log")
	require.NoError(t, Init(Config{Level: "INFO", Format: "text", Output: path}))
	t.Cleanup(func() {
		mu.Lock()
		if logFile != nil {
			_ = logFile.Close()
			logFile = nil
		}
		mu.Unlock()
	})

	Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestInitRejectsBadLevel(t *testing.T) {
	captureOutput(t)
	assert.Error(t, Init(Config{Level: "chatty"}))
}

func TestConcurrentLogging(t *testing.T) {
	buf := captureOutput(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				Info("tick", "worker", i, "n", j)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 500, strings.Count(buf.String(), "\n"))
}
