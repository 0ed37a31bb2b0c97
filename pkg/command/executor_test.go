package command

import (
	"context"
	"encoding/json"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExecutor(t *testing.T) {
	e, err := NewExecutor("", ProcessOptions{})
	require.NoError(t, err)
	assert.Equal(t, KindEncode, e.Name())

	e, err = NewExecutor("PARSE", ProcessOptions{})
	require.NoError(t, err)
	assert.Equal(t, KindParse, e.Name())

	_, err = NewExecutor(KindProcess, ProcessOptions{})
	assert.Error(t, err, "process executor without a program")

	_, err = NewExecutor("shell", ProcessOptions{})
	assert.Error(t, err)
}

func TestEncodeExecutor(t *testing.T) {
	res, err := EncodeExecutor{}.Execute(context.Background(), []byte(`001 download -t "arg"`))
	require.NoError(t, err)
	assert.Equal(t, "001 201 1101 104d6e2b30091\n", string(res.Output))
	assert.Contains(t, res.ContentType, "text/plain")
	assert.Empty(t, res.ExecutionID)
}

func TestParseExecutor(t *testing.T) {
	res, err := ParseExecutor{}.Execute(context.Background(), []byte(`001 ping -v host other`))
	require.NoError(t, err)
	assert.Equal(t, "application/json", res.ContentType)

	var report struct {
		Code      string   `json:"code"`
		Command   string   `json:"command"`
		Type      string   `json:"type"`
		Flags     []string `json:"flags"`
		Argument  string   `json:"argument"`
		Discarded []string `json:"discarded"`
		Line      string   `json:"line"`
		Encoded   Encoded  `json:"encoded"`
	}
	require.NoError(t, json.Unmarshal(res.Output, &report))

	assert.Equal(t, "001", report.Code)
	assert.Equal(t, "ping", report.Command)
	assert.Equal(t, "203", report.Type)
	assert.Equal(t, []string{"-v"}, report.Flags)
	assert.Equal(t, "other", report.Argument)
	assert.Equal(t, []string{"host"}, report.Discarded)
	assert.Equal(t, Encode(`001 ping -v host other`).String(), report.Line)
	assert.Equal(t, "1101", report.Encoded.Flags)
}

func requireProgram(t *testing.T, name string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("process tests need a POSIX userland")
	}
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
	return path
}

func TestProcessExecutorPassesPayloadVerbatim(t *testing.T) {
	echo := requireProgram(t, "echo")

	exe, err := NewProcessExecutor(ProcessOptions{Program: echo, Args: []string{"-n"}})
	require.NoError(t, err)

	payload := `001 get "$(id); rm -rf /" 'x' > out`
	res, err := exe.Execute(context.Background(), []byte(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, string(res.Output))

	_, err = uuid.Parse(res.ExecutionID)
	assert.NoError(t, err)
}

func TestProcessExecutorUniqueIDs(t *testing.T) {
	echo := requireProgram(t, "echo")

	exe, err := NewProcessExecutor(ProcessOptions{Program: echo})
	require.NoError(t, err)

	a, err := exe.Execute(context.Background(), []byte("a"))
	require.NoError(t, err)
	b, err := exe.Execute(context.Background(), []byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a.ExecutionID, b.ExecutionID)
}

func TestProcessExecutorNonZeroExit(t *testing.T) {
	sh := requireProgram(t, "sh")

	exe, err := NewProcessExecutor(ProcessOptions{
		Program: sh,
		Args:    []string{"-c", `printf '%s' "$0"; exit 3`},
	})
	require.NoError(t, err)

	res, err := exe.Execute(context.Background(), []byte("boom"))
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "boom", string(exitErr.Output))
	assert.Equal(t, "boom", string(res.Output))
}

func TestProcessExecutorTimeout(t *testing.T) {
	sleep := requireProgram(t, "sleep")

	exe, err := NewProcessExecutor(ProcessOptions{Program: sleep, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	start := time.Now()
	_, err = exe.Execute(context.Background(), []byte("5"))
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestProcessExecutorOutputLimit(t *testing.T) {
	echo := requireProgram(t, "echo")

	exe, err := NewProcessExecutor(ProcessOptions{Program: echo, MaxOutput: 8})
	require.NoError(t, err)

	res, err := exe.Execute(context.Background(), []byte(strings.Repeat("x", 64)))
	assert.ErrorIs(t, err, ErrOutputLimit)
	assert.Len(t, res.Output, 8)
}

func TestLimitedBuffer(t *testing.T) {
	b := &limitedBuffer{limit: 5}

	n, err := b.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, b.overflow)

	n, err = b.Write([]byte("defg"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.True(t, b.overflow)
	assert.Equal(t, "abcde", string(b.Bytes()))

	assert.Equal(t, []byte{}, (&limitedBuffer{limit: 1}).Bytes())
}
