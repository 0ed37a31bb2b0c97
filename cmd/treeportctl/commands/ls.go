package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/cmd/treeportctl/cmdutil"
	"github.com/marmos91/treeport/pkg/listing"
)

var lsCmd = &cobra.Command{
	Use:     "ls [dir]",
	Aliases: []string{"list"},
	Short:   "List a directory on the server",
	Long: `List the entries of a directory below the served root.

Directories are shown with a trailing "/". Without an argument the root
itself is listed.

Examples:
  # List the root
  treeportctl ls

  # List a subdirectory as JSON
  treeportctl ls docs/2024 -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

// EntryList is a listing rendered as a table.
type EntryList []listing.DirEntry

// Headers implements TableRenderer.
func (l EntryList) Headers() []string {
	return []string{"NAME", "TYPE"}
}

// Rows implements TableRenderer.
func (l EntryList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, e := range l {
		rows = append(rows, []string{displayName(e), string(e.Kind)})
	}
	return rows
}

func displayName(e listing.DirEntry) string {
	if e.Kind == listing.KindDir {
		return e.Name + "/"
	}
	return e.Name
}

func runLs(cmd *cobra.Command, args []string) error {
	dir := ""
	if len(args) == 1 {
		dir = args[0]
	}

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	entries, err := client.List(contextOf(cmd), dir)
	if err != nil {
		return fmt.Errorf("failed to list %q: %w", cmdutil.EmptyOr(dir, "/"), err)
	}

	return cmdutil.PrintOutput(os.Stdout, entries, len(entries) == 0, "Directory is empty.", EntryList(entries))
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
