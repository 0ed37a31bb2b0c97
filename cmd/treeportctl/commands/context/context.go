// Package context implements context management subcommands for treeportctl.
package context

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/internal/cli/contexts"
)

// Cmd is the context subcommand.
var Cmd = &cobra.Command{
	Use:   "context",
	Short: "Manage server contexts",
	Long: `Manage named treeport servers.

Contexts let you save and switch between servers, similar to kubectl
contexts.

Subcommands:
  add      Add or update a context
  list     List all configured contexts
  use      Switch to a different context
  current  Show current context
  rename   Rename a context
  delete   Delete a context
  prefs    Show or change output preferences`,
}

// openStore is replaced in tests.
var openStore = contexts.NewStore

func loadStore() (*contexts.Store, error) {
	store, err := openStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open context store: %w", err)
	}
	return store, nil
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(useCmd)
	Cmd.AddCommand(currentCmd)
	Cmd.AddCommand(renameCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(prefsCmd)
}
