package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/cmd/treeportctl/cmdutil"
	"github.com/marmos91/treeport/internal/cli/output"
	"github.com/marmos91/treeport/pkg/command"
)

var (
	encodeRemote bool
	encodeParse  bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode <command line...>",
	Short: "Encode a command line",
	Long: `Encode a command line into its four-field form.

Arguments are joined with single spaces. Quote the line to keep its exact
spacing and quoting. Encoding happens locally unless --remote is set.

Examples:
  treeportctl encode '123 download -v "my file.txt"'
  treeportctl encode --remote -- 7 ping -a host
  treeportctl encode --parse -o json '9 get -x a b'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().BoolVar(&encodeRemote, "remote", false, "Ask the server to encode")
	encodeCmd.Flags().BoolVar(&encodeParse, "parse", false, "Show the parsed fields (local only)")
}

// EncodeReport is the structured result of a local encode.
type EncodeReport struct {
	Input   string         `json:"input" yaml:"input"`
	Parsed  command.Parsed `json:"parsed" yaml:"parsed"`
	Encoded string         `json:"encoded" yaml:"encoded"`
}

// Headers implements TableRenderer.
func (r EncodeReport) Headers() []string {
	return []string{"FIELD", "VALUE"}
}

// Rows implements TableRenderer.
func (r EncodeReport) Rows() [][]string {
	enc := r.Parsed.Encode()
	rows := [][]string{
		{"Code", r.Parsed.Code},
		{"Command", cmdutil.EmptyOr(r.Parsed.Name, "-")},
		{"Flags", cmdutil.EmptyOr(strings.Join(r.Parsed.Flags, " "), "-")},
		{"Argument", argumentOf(r.Parsed)},
	}
	if len(r.Parsed.Discarded) > 0 {
		rows = append(rows, []string{"Discarded", strings.Join(r.Parsed.Discarded, " ")})
	}
	return append(rows,
		[]string{"Type field", enc.Type},
		[]string{"Flag field", enc.Flags},
		[]string{"Arg field", enc.Arg},
		[]string{"Encoded", r.Encoded},
	)
}

func argumentOf(p command.Parsed) string {
	if !p.HasArgument {
		return "-"
	}
	return fmt.Sprintf("%q", p.Argument)
}

func runEncode(cmd *cobra.Command, args []string) error {
	line := strings.Join(args, " ")

	if encodeRemote {
		if encodeParse {
			return fmt.Errorf("--parse cannot be combined with --remote")
		}
		client, err := cmdutil.GetClient()
		if err != nil {
			return err
		}
		encoded, err := client.Encode(contextOf(cmd), line)
		if err != nil {
			return fmt.Errorf("failed to encode: %w", err)
		}
		return printEncoded(line, encoded)
	}

	parsed := command.Parse(line)
	report := EncodeReport{Input: line, Parsed: parsed, Encoded: parsed.Encode().String()}
	if encodeParse {
		return cmdutil.PrintOutput(os.Stdout, report, false, "", report)
	}
	return printEncoded(line, report.Encoded)
}

func printEncoded(line, encoded string) error {
	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	data := map[string]string{"input": line, "encoded": encoded}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, data)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, data)
	default:
		_, err := fmt.Fprintln(os.Stdout, encoded)
		return err
	}
}
