package apiclient

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/treeport/pkg/api"
	"github.com/marmos91/treeport/pkg/command"
	"github.com/marmos91/treeport/pkg/listing"
	"github.com/marmos91/treeport/pkg/sandbox"
)

func newTreeServer(t *testing.T) *httptest.Server {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/srv/tree/docs/2024 q1", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/srv/tree/docs/report.txt", []byte(strings.Repeat("r", 3000)), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/srv/tree/docs/2024 q1/plan.md", []byte("# plan"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/srv/secret.txt", []byte("secret"), 0o644))

	sb, err := sandbox.New(fs, "/srv/tree")
	require.NoError(t, err)

	handler := api.NewRouter(api.APIConfig{}, api.Dependencies{
		Sandbox:  sb,
		Executor: command.EncodeExecutor{},
	})
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestIntegration_BrowseAndFetch(t *testing.T) {
	client := New(newTreeServer(t).URL)
	ctx := context.Background()

	entries, err := client.List(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, []listing.DirEntry{
		{Name: "2024 q1", Kind: listing.KindDir},
		{Name: "report.txt", Kind: listing.KindFile},
	}, entries)

	entries, err = client.List(ctx, "docs/2024 q1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "plan.md", entries[0].Name)

	var full bytes.Buffer
	info, err := client.Download(ctx, "docs/report.txt", &full)
	require.NoError(t, err)
	assert.Equal(t, "report.txt", info.Filename)
	assert.Equal(t, 3000, full.Len())

	var head bytes.Buffer
	info, err = client.Preview(ctx, "docs/report.txt", &head)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), info.Written)
}

func TestIntegration_EscapesAreNotFound(t *testing.T) {
	client := New(newTreeServer(t).URL)
	ctx := context.Background()

	_, err := client.List(ctx, "..")
	assert.True(t, IsNotFound(err))

	var buf bytes.Buffer
	_, err = client.Download(ctx, "../secret.txt", &buf)
	assert.True(t, IsNotFound(err))
	assert.Zero(t, buf.Len())

	_, err = client.Preview(ctx, "docs", &buf)
	assert.True(t, IsNotFound(err))
}

func TestIntegration_Commands(t *testing.T) {
	client := New(newTreeServer(t).URL)
	ctx := context.Background()

	encoded, err := client.Encode(ctx, `001 download -t "arg"`)
	require.NoError(t, err)
	assert.Equal(t, "001 201 1101 104d6e2b30091", encoded)

	res, err := client.Command(ctx, []byte(`001 download -t "arg"`))
	require.NoError(t, err)
	assert.Equal(t, "001 201 1101 104d6e2b30091\n", string(res.Output))
	assert.Empty(t, res.ExecutionID)
}

func TestIntegration_Health(t *testing.T) {
	client := New(newTreeServer(t).URL)

	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, health.Healthy())

	ready, err := client.Ready(context.Background())
	require.NoError(t, err)
	assert.True(t, ready.Healthy())
	assert.Equal(t, "available", ready.Data.Tree)
}
