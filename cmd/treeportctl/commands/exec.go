package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/cmd/treeportctl/cmdutil"
	"github.com/marmos91/treeport/pkg/apiclient"
)

var execCmd = &cobra.Command{
	Use:     "exec <payload...|->",
	Aliases: []string{"run"},
	Short:   "Submit a command payload to the server",
	Long: `Submit a raw payload to the server's command executor and print its
output. A program that exits non-zero still has its output printed, and
treeportctl then fails with its status.

Arguments are joined with single spaces. Pass "-" to read the payload from
stdin unchanged.

Examples:
  treeportctl exec 123 download -v file.txt
  echo -n '7 ping host' | treeportctl exec -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func runExec(cmd *cobra.Command, args []string) error {
	payload, err := readPayload(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	res, err := client.Command(contextOf(cmd), payload)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.IsTooLarge() {
			return fmt.Errorf("payload of %d bytes rejected by server: %w", len(payload), err)
		}
		return fmt.Errorf("command failed: %w", err)
	}

	if res.ExecutionID != "" {
		cmdutil.Verbosef("Execution ID: %s", res.ExecutionID)
	}
	if _, err := os.Stdout.Write(res.Output); err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("command exited with status %d", res.ExitCode)
	}
	return nil
}

func readPayload(args []string, stdin io.Reader) ([]byte, error) {
	if len(args) == 1 && args[0] == "-" {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdin); err != nil {
			return nil, fmt.Errorf("failed to read payload from stdin: %w", err)
		}
		return buf.Bytes(), nil
	}
	return []byte(strings.Join(args, " ")), nil
}
