// Package output renders treeportctl results as tables, JSON or YAML.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Format selects how results are rendered.
type Format string

const (
	// FormatTable renders TableRenderer values as aligned columns.
	FormatTable Format = "table"
	// FormatJSON renders results as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders results as YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat parses a --output flag value. An empty value means table.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: table, json, yaml)", s)
	}
}

func (f Format) String() string {
	return string(f)
}

// ANSI color codes used for status lines.
const (
	colorRed    = "31"
	colorGreen  = "32"
	colorYellow = "33"
)

// Printer writes results in one format. Status lines (Success, Warning,
// Error) go to errOut so piped data on out stays clean.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	format Format
	color  bool
}

// NewPrinter creates a Printer that writes data and status lines to out.
func NewPrinter(out io.Writer, format Format, color bool) *Printer {
	return &Printer{
		out:    out,
		errOut: out,
		format: format,
		color:  color,
	}
}

// DefaultPrinter writes tables to stdout and status lines to stderr.
func DefaultPrinter() *Printer {
	p := NewPrinter(os.Stdout, FormatTable, true)
	p.errOut = os.Stderr
	return p
}

// WithStatusWriter returns a copy of p that writes status lines to w.
func (p *Printer) WithStatusWriter(w io.Writer) *Printer {
	cp := *p
	cp.errOut = w
	return &cp
}

func (p *Printer) Format() Format {
	return p.format
}

func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) ColorEnabled() bool {
	return p.color
}

// Print renders data in the configured format. Table output needs a
// TableRenderer; anything else falls back to JSON.
func (p *Printer) Print(data any) error {
	switch p.format {
	case FormatTable:
		if renderer, ok := data.(TableRenderer); ok {
			return PrintTable(p.out, renderer)
		}
		return PrintJSON(p.out, data)
	case FormatJSON:
		return PrintJSON(p.out, data)
	case FormatYAML:
		return PrintYAML(p.out, data)
	default:
		return fmt.Errorf("unknown format: %s", p.format)
	}
}

func (p *Printer) Println(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Success prints a green status line.
func (p *Printer) Success(msg string) {
	p.status(colorGreen, msg)
}

// Error prints a red status line.
func (p *Printer) Error(msg string) {
	p.status(colorRed, msg)
}

// Warning prints a yellow status line.
func (p *Printer) Warning(msg string) {
	p.status(colorYellow, msg)
}

func (p *Printer) status(code, msg string) {
	if p.color {
		_, _ = fmt.Fprintf(p.errOut, "\033[%sm%s\033[0m\n", code, msg)
		return
	}
	_, _ = fmt.Fprintln(p.errOut, msg)
}
