package context

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

var addUse bool

var addCmd = &cobra.Command{
	Use:   "add <name> <server-url>",
	Short: "Add or update a context",
	Long: `Save a server URL under a name. An existing context of that name is
replaced. The first context added becomes current.

Examples:
  treeportctl context add local http://localhost:8080
  treeportctl context add prod https://files.example.com --use`,
	Args: cobra.ExactArgs(2),
	RunE: runContextAdd,
}

func init() {
	addCmd.Flags().BoolVar(&addUse, "use", false, "Switch to the context after adding it")
}

func runContextAdd(cmd *cobra.Command, args []string) error {
	name, serverURL := args[0], args[1]

	u, err := url.Parse(serverURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server URL %q: expected http(s)://host[:port]", serverURL)
	}

	store, err := loadStore()
	if err != nil {
		return err
	}
	if err := store.Set(name, serverURL); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	if addUse {
		if err := store.Use(name); err != nil {
			return fmt.Errorf("failed to switch context: %w", err)
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Context %q saved\n", name)
	return nil
}
