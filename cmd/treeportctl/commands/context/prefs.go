package context

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/cmd/treeportctl/cmdutil"
	"github.com/marmos91/treeport/internal/cli/output"
)

var (
	prefsOutput string
	prefsColor  string
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change output preferences",
	Long: `Show or change the defaults applied when -o and --no-color are not given.

Examples:
  treeportctl context prefs
  treeportctl context prefs --default-output json --color never`,
	Args: cobra.NoArgs,
	RunE: runContextPrefs,
}

func init() {
	prefsCmd.Flags().StringVar(&prefsOutput, "default-output", "", "Default output format (table|json|yaml)")
	prefsCmd.Flags().StringVar(&prefsColor, "color", "", "Color mode (auto|always|never)")
}

func runContextPrefs(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}
	prefs := store.Preferences()

	changed := false
	if cmd.Flags().Changed("default-output") {
		format, err := output.ParseFormat(prefsOutput)
		if err != nil {
			return err
		}
		prefs.DefaultOutput = format.String()
		changed = true
	}
	if cmd.Flags().Changed("color") {
		switch prefsColor {
		case "auto", "always", "never":
		default:
			return fmt.Errorf("invalid color mode %q (valid: auto, always, never)", prefsColor)
		}
		prefs.Color = prefsColor
		changed = true
	}

	if changed {
		if err := store.SetPreferences(prefs); err != nil {
			return fmt.Errorf("failed to save preferences: %w", err)
		}
	}

	return output.SimpleTable(cmd.OutOrStdout(), [][2]string{
		{"Default output", cmdutil.EmptyOr(prefs.DefaultOutput, "table")},
		{"Color", cmdutil.EmptyOr(prefs.Color, "auto")},
		{"File", store.Path()},
	})
}
