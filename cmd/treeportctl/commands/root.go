// Package commands implements the treeportctl client CLI.
package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/cmd/treeportctl/cmdutil"
	ctxcmd "github.com/marmos91/treeport/cmd/treeportctl/commands/context"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "treeportctl",
	Short: "treeportctl - client for treeport servers",
	Long: `treeportctl browses and fetches files from a treeport server and
submits command lines to it.

The server is taken from --server, then $TREEPORT_SERVER, then the current
context (see 'treeportctl context'), then http://localhost:8080.

Use "treeportctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cmdutil.Flags.ServerURL, _ = cmd.Flags().GetString("server")
		cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
		cmdutil.Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
		cmdutil.Flags.Verbose, _ = cmd.Flags().GetBool("verbose")
		cmdutil.Flags.Timeout, _ = cmd.Flags().GetDuration("timeout")
		cmdutil.Flags.UserAgent = "treeportctl/" + Version
		cmdutil.ApplyPreferences(cmd.Flags().Changed("output"), cmd.Flags().Changed("no-color"))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Server URL (overrides context and $TREEPORT_SERVER)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Timeout for non-streaming requests")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(ctxcmd.Cmd)
	rootCmd.AddCommand(completionCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
