package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the treeport configuration file.

Checks for syntax errors, missing required fields, and invalid values, then
warns about settings that will fail at start-up.

Examples:
  # Validate default config
  treeport config validate

  # Validate specific config file
  treeport config validate --config /etc/treeport/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Configuration file: %s\n", displayPath)
	_, _ = fmt.Fprintln(out, "Validation: OK")

	if warnings := checkRuntime(cfg); len(warnings) > 0 {
		_, _ = fmt.Fprintln(out, "\nWarnings:")
		for _, w := range warnings {
			_, _ = fmt.Fprintf(out, "  - %s\n", w)
		}
	}

	_, _ = fmt.Fprintf(out, "\nConfiguration summary:\n")
	_, _ = fmt.Fprintf(out, "  Tree root:       %s\n", cfg.Tree.Root)
	_, _ = fmt.Fprintf(out, "  API port:        %d\n", cfg.Server.Port)
	_, _ = fmt.Fprintf(out, "  Executor:        %s\n", cfg.Command.Executor)
	_, _ = fmt.Fprintf(out, "  Preview size:    %s\n", cfg.Tree.PreviewSize)
	_, _ = fmt.Fprintf(out, "  Log level:       %s\n", cfg.Logging.Level)
	return nil
}

// checkRuntime reports problems that only show up against the live system.
func checkRuntime(cfg *config.Config) []string {
	var warnings []string

	info, err := os.Stat(cfg.Tree.Root)
	switch {
	case err != nil:
		warnings = append(warnings, fmt.Sprintf("tree root %s is not accessible: %v", cfg.Tree.Root, err))
	case !info.IsDir():
		warnings = append(warnings, fmt.Sprintf("tree root %s is not a directory", cfg.Tree.Root))
	}

	if cfg.Command.Executor == "process" {
		if _, err := os.Stat(cfg.Command.Program); err != nil {
			warnings = append(warnings, fmt.Sprintf("command program %s is not accessible: %v", cfg.Command.Program, err))
		}
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Port == cfg.Server.Port {
		warnings = append(warnings, "metrics port equals API port")
	}

	return warnings
}
