// Package command turns a free-form command line into a fixed-shape
// numeric token string and runs command payloads through pluggable
// executors.
//
// The encoding is an obfuscation format, not a cryptographic one: the
// argument digest is truncated and cannot be reversed.
package command

import "regexp"

// tokenPattern matches a double-quoted span or a maximal run of
// non-space characters, whichever starts first.
var tokenPattern = regexp.MustCompile(`"([^"]*)"|(\S+)`)

// Tokenize splits input on whitespace. A double-quoted span becomes one
// token with the quotes removed. There is no escape syntax, and an
// unterminated quote is kept literally.
func Tokenize(input string) []string {
	matches := tokenPattern.FindAllStringSubmatchIndex(input, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		if m[2] >= 0 {
			tokens = append(tokens, input[m[2]:m[3]])
			continue
		}
		tokens = append(tokens, input[m[4]:m[5]])
	}
	return tokens
}
