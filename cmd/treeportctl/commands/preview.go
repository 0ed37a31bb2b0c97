package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/cmd/treeportctl/cmdutil"
)

var previewCmd = &cobra.Command{
	Use:     "preview <file>",
	Aliases: []string{"head"},
	Short:   "Print the first bytes of a file",
	Long: `Print the leading bytes of a file on the server to stdout.

The server decides how many bytes a preview holds (tree.preview_size).`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	info, err := client.Preview(contextOf(cmd), args[0], os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to preview %q: %w", args[0], err)
	}
	cmdutil.Verbosef("\n%d bytes previewed from %s", info.Written, info.Filename)
	return nil
}
