package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "treeport", cfg.ServiceName)
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 1.0, cfg.SampleRate)
}

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()

	shutdown, err := Init(ctx, DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(ctx))
	assert.False(t, IsEnabled())
	assert.NotNil(t, Tracer())
}

func TestSpanHelpersWithNoopTracer(t *testing.T) {
	ctx := context.Background()

	ctx, span := StartTreeSpan(ctx, "list", "docs", Entries(3))
	require.NotNil(t, span)
	defer span.End()

	SetAttributes(ctx, Resolved("/srv/docs"))
	AddEvent(ctx, "listed", Entries(3))
	AddEvent(ctx, "command.exited", ExitCode(2))
	RecordError(ctx, errors.New("boom"))
	RecordError(ctx, nil)

	// The no-op tracer produces invalid span contexts.
	assert.Empty(t, TraceID(ctx))
	assert.Empty(t, SpanID(ctx))
}

func TestStartTransferAndCommandSpans(t *testing.T) {
	ctx := context.Background()

	tctx, tspan := StartTransferSpan(ctx, "preview", TransferLength(1024))
	require.NotNil(t, tctx)
	tspan.End()

	cctx, cspan := StartCommandSpan(ctx, "encode", CommandCode("042"), CommandType("201"))
	require.NotNil(t, cctx)
	cspan.End()
}

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		name string
		attr attribute.KeyValue
		key  string
		want string
	}{
		{"Path", Path("a/b"), AttrPath, "a/b"},
		{"ClientIP", ClientIP("10.0.0.1"), AttrClientIP, "10.0.0.1"},
		{"TransferMode", TransferMode("full"), AttrTransferMode, "full"},
		{"ExecutionID", ExecutionID("x"), AttrCommandExecID, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, string(tt.attr.Key))
			assert.Equal(t, tt.want, tt.attr.Value.AsString())
		})
	}

	assert.Equal(t, AttrTransferBytes, string(BytesSent(7).Key))
	assert.Equal(t, int64(7), BytesSent(7).Value.AsInt64())
	assert.Equal(t, int64(10), TransferSize(10).Value.AsInt64())
}

func TestParseProfileTypes(t *testing.T) {
	types, err := ParseProfileTypes([]string{"cpu", "goroutines"})
	require.NoError(t, err)
	assert.Equal(t, []pyroscope.ProfileType{pyroscope.ProfileCPU, pyroscope.ProfileGoroutines}, types)

	_, err = ParseProfileTypes([]string{"heap"})
	assert.Error(t, err)
}

func TestInitProfilingDisabled(t *testing.T) {
	shutdown, err := InitProfiling(ProfilingConfig{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown())
	assert.False(t, IsProfilingEnabled())
}

func TestExitCodeAttribute(t *testing.T) {
	kv := ExitCode(3)
	assert.Equal(t, AttrCommandExitCode, string(kv.Key))
	assert.Equal(t, int64(3), kv.Value.AsInt64())
}
