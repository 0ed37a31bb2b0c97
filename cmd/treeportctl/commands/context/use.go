package context

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/internal/cli/contexts"
	"github.com/marmos91/treeport/internal/cli/prompt"
)

var useCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Switch to a different context",
	Long: `Switch the current context. Without a name, pick one interactively.

Examples:
  treeportctl context use prod
  treeportctl context use`,
	Args: cobra.MaximumNArgs(1),
	RunE: runContextUse,
}

func runContextUse(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		names := store.Names()
		if len(names) == 0 {
			return errors.New("no contexts configured")
		}
		options := make([]prompt.SelectOption, 0, len(names))
		for _, n := range names {
			ctx, _ := store.Get(n)
			options = append(options, prompt.SelectOption{Label: n, Value: n, Description: ctx.ServerURL})
		}
		name, err = prompt.Select("Select context", options)
		if err != nil {
			if prompt.IsAborted(err) {
				return nil
			}
			return err
		}
	}

	if err := store.Use(name); err != nil {
		if errors.Is(err, contexts.ErrContextNotFound) {
			return fmt.Errorf("context '%s' not found", name)
		}
		return fmt.Errorf("failed to switch context: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Switched to context %q\n", name)
	return nil
}
