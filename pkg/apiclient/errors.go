package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// ErrIncompleteTransfer is returned when a stream ends before the
// announced Content-Length.
var ErrIncompleteTransfer = errors.New("transfer ended before announced length")

// APIError is an error response from the server. Problem responses
// (application/problem+json) fill Title and Detail; other bodies land in Detail.
type APIError struct {
	StatusCode int    `json:"status"`
	Type       string `json:"type,omitempty"`
	Title      string `json:"title,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

func (e *APIError) Error() string {
	switch {
	case e.Title != "" && e.Detail != "":
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Title, e.Detail)
	case e.Detail != "":
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Detail)
	case e.Title != "":
		return fmt.Sprintf("%d %s", e.StatusCode, e.Title)
	default:
		return fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
}

// IsNotFound reports a 404, which the server returns for both missing and
// refused paths.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

func (e *APIError) IsTooLarge() bool {
	return e.StatusCode == http.StatusRequestEntityTooLarge
}

// IsNotFound reports whether err wraps a 404 APIError.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNotFound()
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &APIError{}
	if strings.Contains(resp.Header.Get("Content-Type"), "json") && json.Unmarshal(body, apiErr) == nil && (apiErr.Title != "" || apiErr.Detail != "") {
		apiErr.StatusCode = resp.StatusCode
		return apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Detail:     strings.TrimSpace(string(body)),
	}
}
