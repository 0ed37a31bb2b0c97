// Package cmdutil provides shared helpers for treeportctl commands.
package cmdutil

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/marmos91/treeport/internal/cli/contexts"
	"github.com/marmos91/treeport/internal/cli/output"
	"github.com/marmos91/treeport/internal/cli/prompt"
	"github.com/marmos91/treeport/pkg/apiclient"
)

// DefaultServerURL is used when no flag, environment variable or context
// names a server.
const DefaultServerURL = "http://localhost:8080"

// EnvServer overrides the stored context's server URL.
const EnvServer = "TREEPORT_SERVER"

// Flags stores global flag values accessible by subcommands.
var Flags = &GlobalFlags{}

// GlobalFlags holds the global flag values.
type GlobalFlags struct {
	ServerURL string
	Output    string
	NoColor   bool
	Verbose   bool
	Timeout   time.Duration
	UserAgent string
}

// ResolveServerURL picks the server in order: --server, $TREEPORT_SERVER,
// the current context, DefaultServerURL.
func ResolveServerURL() (string, error) {
	if Flags.ServerURL != "" {
		return Flags.ServerURL, nil
	}
	if env := os.Getenv(EnvServer); env != "" {
		return env, nil
	}

	store, err := contexts.NewStore()
	if err != nil {
		return "", fmt.Errorf("failed to open context store: %w", err)
	}
	if ctx, err := store.Current(); err == nil && ctx.ServerURL != "" {
		return ctx.ServerURL, nil
	}
	return DefaultServerURL, nil
}

// ApplyPreferences fills in output and color from the stored preferences
// unless the matching flag was given explicitly.
func ApplyPreferences(outputSet, colorSet bool) {
	store, err := contexts.NewStore()
	if err != nil {
		return
	}
	prefs := store.Preferences()
	if !outputSet && prefs.DefaultOutput != "" {
		Flags.Output = prefs.DefaultOutput
	}
	if !colorSet {
		switch prefs.Color {
		case "never":
			Flags.NoColor = true
		case "always":
			Flags.NoColor = false
		}
	}
}

// GetClient returns an API client for the resolved server.
func GetClient() (*apiclient.Client, error) {
	url, err := ResolveServerURL()
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("invalid server URL %q: must start with http:// or https://", url)
	}

	client := apiclient.New(url)
	if Flags.Timeout > 0 {
		client = client.WithTimeout(Flags.Timeout)
	}
	if Flags.UserAgent != "" {
		client = client.WithUserAgent(Flags.UserAgent)
	}
	Verbosef("Using server %s", url)
	return client, nil
}

// GetOutputFormatParsed returns the parsed --output value.
func GetOutputFormatParsed() (output.Format, error) {
	return output.ParseFormat(Flags.Output)
}

// Printer returns a printer for the selected format. Status lines go to stderr.
func Printer() (*output.Printer, error) {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(os.Stdout, format, !Flags.NoColor).WithStatusWriter(os.Stderr), nil
}

// PrintOutput prints data as JSON or YAML, or as a table. In table mode an
// empty result prints emptyMsg instead.
func PrintOutput(w io.Writer, data any, isEmpty bool, emptyMsg string, tableRenderer output.TableRenderer) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		if isEmpty {
			_, _ = fmt.Fprintln(w, emptyMsg)
			return nil
		}
		return output.PrintTable(w, tableRenderer)
	}
}

// PrintSuccess prints msg on stderr in table mode only.
func PrintSuccess(msg string) {
	format, err := GetOutputFormatParsed()
	if err != nil || format != output.FormatTable {
		return
	}
	output.NewPrinter(os.Stderr, format, !Flags.NoColor).Success(msg)
}

// Verbosef prints to stderr when --verbose is set.
func Verbosef(format string, args ...any) {
	if !Flags.Verbose {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// HandleAbort turns a prompt abort into a clean exit.
func HandleAbort(err error) error {
	if prompt.IsAborted(err) {
		_, _ = fmt.Fprintln(os.Stderr, "\nAborted.")
		return nil
	}
	return err
}

// EmptyOr returns value, or fallback when value is empty.
func EmptyOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// JoinRemote joins a remote directory and an entry name with "/".
func JoinRemote(dir, name string) string {
	dir = strings.TrimRight(dir, "/")
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// ParentRemote returns the parent of a remote directory, "" for the root.
func ParentRemote(dir string) string {
	dir = strings.TrimRight(dir, "/")
	i := strings.LastIndex(dir, "/")
	if i < 0 {
		return ""
	}
	return dir[:i]
}
