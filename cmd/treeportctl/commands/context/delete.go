package context

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/cmd/treeportctl/cmdutil"
	"github.com/marmos91/treeport/internal/cli/contexts"
	"github.com/marmos91/treeport/internal/cli/prompt"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a context",
	Long: `Delete a server context.

Examples:
  # Delete context named "staging"
  treeportctl context delete staging

  # Delete without confirmation
  treeportctl context delete staging --force`,
	Args: cobra.ExactArgs(1),
	RunE: runContextDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
}

func runContextDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	store, err := loadStore()
	if err != nil {
		return err
	}
	if _, err := store.Get(name); err != nil {
		if errors.Is(err, contexts.ErrContextNotFound) {
			return fmt.Errorf("context '%s' not found", name)
		}
		return fmt.Errorf("failed to get context: %w", err)
	}

	if !deleteForce {
		ok, err := prompt.Confirm(fmt.Sprintf("Delete context '%s'", name), false)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := store.Delete(name); err != nil {
		return fmt.Errorf("failed to delete context: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Context %q deleted\n", name)
	return nil
}
