package handlers

import (
	"net/http"
	"net/url"
	"strings"
)

// QueryParam returns the raw value of the first query parameter whose key
// matches name case-insensitively. The value is not percent-decoded; only
// '+' is rewritten to an encoded space, so that a single later decode
// yields what the client sent.
func QueryParam(r *http.Request, name string) (string, bool) {
	for _, pair := range strings.Split(r.URL.RawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if strings.EqualFold(key, name) {
			return strings.ReplaceAll(value, "+", "%20"), true
		}
	}
	return "", false
}

// requiredParam returns the named parameter or writes a 400 and reports
// false when it is absent or empty.
func requiredParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v, ok := QueryParam(r, name)
	if !ok || v == "" {
		BadRequest(w, "missing required parameter \""+name+"\"")
		return "", false
	}
	return v, true
}
