package context

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/cmd/treeportctl/cmdutil"
	"github.com/marmos91/treeport/internal/cli/output"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show current context",
	Args:  cobra.NoArgs,
	RunE:  runContextCurrent,
}

func runContextCurrent(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	name := store.CurrentName()
	if name == "" {
		return fmt.Errorf("no current context set\n\n" +
			"Add one first:\n" +
			"  treeportctl context add local http://localhost:8080")
	}
	ctx, err := store.Get(name)
	if err != nil {
		return fmt.Errorf("failed to get context: %w", err)
	}

	info := ContextInfo{Name: name, Current: true, ServerURL: ctx.ServerURL}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(out, info)
	case output.FormatYAML:
		return output.PrintYAML(out, info)
	default:
		_, _ = fmt.Fprintf(out, "Current context: %s\n", name)
		_, _ = fmt.Fprintf(out, "  Server:    %s\n", ctx.ServerURL)
		if env := os.Getenv(cmdutil.EnvServer); env != "" {
			_, _ = fmt.Fprintf(out, "  Note:      $%s=%s takes precedence\n", cmdutil.EnvServer, env)
		}
	}
	return nil
}
