package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryParam(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		key     string
		want    string
		present bool
	}{
		{"exact key", "/x?file=a.txt", "file", "a.txt", true},
		{"upper case key", "/x?FILE=a.txt", "file", "a.txt", true},
		{"mixed case key", "/x?FiLe=a.txt", "file", "a.txt", true},
		{"value stays encoded", "/x?file=a%2Fb%20c", "file", "a%2Fb%20c", true},
		{"plus becomes encoded space", "/x?file=my+file", "file", "my%20file", true},
		{"first match wins", "/x?file=one&File=two", "file", "one", true},
		{"encoded key", "/x?fi%6Ce=a", "file", "a", true},
		{"empty value", "/x?file=", "file", "", true},
		{"bare key", "/x?file", "file", "", true},
		{"absent", "/x?path=a", "file", "", false},
		{"no query", "/x", "file", "", false},
		{"value with equals", "/x?cmd=a=b", "cmd", "a=b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := QueryParam(httptest.NewRequest("GET", tt.target, nil), tt.key)
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t,
		`attachment; filename="report.pdf"; filename*=UTF-8''report.pdf`,
		ContentDisposition("report.pdf"))

	assert.Equal(t,
		`attachment; filename="my file;1.txt"; filename*=UTF-8''my%20file%3B1.txt`,
		ContentDisposition("my file;1.txt"))

	assert.Equal(t,
		`attachment; filename="r_sum_.txt"; filename*=UTF-8''r%C3%A9sum%C3%A9.txt`,
		ContentDisposition("résumé.txt"))

	assert.Equal(t,
		`attachment; filename="a_b_.txt"; filename*=UTF-8''a%22b%5C.txt`,
		ContentDisposition(`a"b\.txt`))
}
