package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// CommandResult is the response to POST /command.
type CommandResult struct {
	Output      []byte
	ContentType string
	ExecutionID string
	// ExitCode is the status of a program that exited non-zero, else 0.
	ExitCode int
}

// Command posts payload to the server's configured executor.
func (c *Client) Command(ctx context.Context, payload []byte) (*CommandResult, error) {
	body, header, err := c.do(ctx, http.MethodPost, "/command", nil, payload, "text/plain; charset=utf-8")
	if err != nil {
		return nil, err
	}
	res := &CommandResult{
		Output:      body,
		ContentType: header.Get("Content-Type"),
		ExecutionID: header.Get(ExecutionIDHeader),
	}
	if v := header.Get(ExitCodeHeader); v != "" {
		code, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s header %q", ExitCodeHeader, v)
		}
		res.ExitCode = code
	}
	return res, nil
}

// Encode asks the server to encode one command line.
func (c *Client) Encode(ctx context.Context, cmd string) (string, error) {
	body, _, err := c.do(ctx, http.MethodGet, "/encode", url.Values{"cmd": {cmd}}, nil, "")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(body), "\n"), nil
}
