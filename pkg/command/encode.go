package command

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultCode is used when the input has no tokens.
	DefaultCode = "000"

	// NoFlags is the flag field when no flag tokens are present.
	NoFlags = "0000"

	// NoArgument is the argument field when no argument token is present.
	NoArgument = "0000"

	// argDigestBytes is how much of the SHA-1 digest ends up in the argument field.
	argDigestBytes = 6
)

// commandTypes maps known command names to their type index. Lookup is
// case-sensitive.
var commandTypes = map[string]int{
	"download": 1,
	"update":   2,
	"ping":     3,
	"get":      4,
}

// Parsed is the intermediate structure of a command line.
type Parsed struct {
	Code        string   `json:"code"`
	Name        string   `json:"command"`
	Flags       []string `json:"flags"`
	Argument    string   `json:"argument,omitempty"`
	HasArgument bool     `json:"has_argument"`
	// Discarded holds non-flag tokens superseded by a later one.
	Discarded []string `json:"discarded,omitempty"`
}

// Parse tokenizes input and classifies the tokens. The first token is the
// code and the second the command name. Of the rest, tokens starting with
// "-" are flags and the last other token is the argument.
func Parse(input string) Parsed {
	tokens := Tokenize(input)

	p := Parsed{Code: DefaultCode, Flags: []string{}}
	if len(tokens) > 0 {
		p.Code = tokens[0]
	}
	if len(tokens) > 1 {
		p.Name = tokens[1]
	}
	if len(tokens) <= 2 {
		return p
	}

	for _, tok := range tokens[2:] {
		if strings.HasPrefix(tok, "-") {
			p.Flags = append(p.Flags, tok)
			continue
		}
		if p.HasArgument {
			p.Discarded = append(p.Discarded, p.Argument)
		}
		p.Argument = tok
		p.HasArgument = true
	}
	return p
}

// Encode builds the encoded form of p.
func (p Parsed) Encode() Encoded {
	return Encoded{
		Code:  p.Code,
		Type:  TypeField(p.Name),
		Flags: FlagField(len(p.Flags)),
		Arg:   ArgField(p.Argument, p.HasArgument),
	}
}

// Encoded is the four-field encoding of a command line.
type Encoded struct {
	Code  string `json:"code"`
	Type  string `json:"type"`
	Flags string `json:"flags"`
	Arg   string `json:"arg"`
}

// String joins the fields with single spaces.
func (e Encoded) String() string {
	return e.Code + " " + e.Type + " " + e.Flags + " " + e.Arg
}

// Encode parses and encodes input in one step.
func Encode(input string) Encoded {
	return Parse(input).Encode()
}

// TypeField returns "2" followed by the two-digit type index of name.
func TypeField(name string) string {
	return fmt.Sprintf("2%02d", commandTypes[name])
}

// FlagField returns NoFlags for zero flags, otherwise "1", the count, and
// each one-based position as two digits.
func FlagField(count int) string {
	if count <= 0 {
		return NoFlags
	}
	var b strings.Builder
	b.WriteString("1")
	b.WriteString(strconv.Itoa(count))
	for i := 1; i <= count; i++ {
		fmt.Fprintf(&b, "%02d", i)
	}
	return b.String()
}

// ArgField returns NoArgument when ok is false, otherwise "1" followed by
// the lowercase hex of the first six bytes of SHA-1(arg).
func ArgField(arg string, ok bool) string {
	if !ok {
		return NoArgument
	}
	sum := sha1.Sum([]byte(arg))
	return "1" + hex.EncodeToString(sum[:argDigestBytes])
}
