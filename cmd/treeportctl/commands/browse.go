package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/cmd/treeportctl/cmdutil"
	"github.com/marmos91/treeport/internal/cli/prompt"
	"github.com/marmos91/treeport/pkg/apiclient"
	"github.com/marmos91/treeport/pkg/listing"
)

var browseCmd = &cobra.Command{
	Use:   "browse [dir]",
	Short: "Browse the served tree interactively",
	Long: `Walk the served tree with an interactive menu.

Selecting a directory enters it and ".." goes up. Selecting a file offers to
preview or download it. Press Ctrl+C to leave.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

const (
	actionPreview  = "preview"
	actionDownload = "download"
	actionBack     = "back"
)

func runBrowse(cmd *cobra.Command, args []string) error {
	dir := ""
	if len(args) == 1 {
		dir = args[0]
	}

	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	for {
		entries, err := client.List(contextOf(cmd), dir)
		if err != nil {
			return fmt.Errorf("failed to list %q: %w", cmdutil.EmptyOr(dir, "/"), err)
		}

		options := browseOptions(dir, entries)
		idx, err := prompt.SelectIndex("/"+dir, options)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}

		choice := options[idx]
		switch {
		case choice.Value == "..":
			dir = cmdutil.ParentRemote(dir)
		case choice.Description == string(listing.KindDir):
			dir = cmdutil.JoinRemote(dir, choice.Value)
		default:
			if err := fileAction(cmd, client, cmdutil.JoinRemote(dir, choice.Value)); err != nil {
				return cmdutil.HandleAbort(err)
			}
		}
	}
}

// browseOptions builds the menu for dir. Below the root the first option
// leads to the parent.
func browseOptions(dir string, entries []listing.DirEntry) []prompt.SelectOption {
	options := make([]prompt.SelectOption, 0, len(entries)+1)
	if dir != "" {
		options = append(options, prompt.SelectOption{Label: "../", Value: "..", Description: "parent"})
	}
	for _, e := range entries {
		options = append(options, prompt.SelectOption{
			Label:       displayName(e),
			Value:       e.Name,
			Description: string(e.Kind),
		})
	}
	return options
}

func fileAction(cmd *cobra.Command, client *apiclient.Client, remote string) error {
	action, err := prompt.Select(remote, []prompt.SelectOption{
		{Label: "Preview", Value: actionPreview},
		{Label: "Download", Value: actionDownload},
		{Label: "Back", Value: actionBack},
	})
	if err != nil {
		return err
	}

	switch action {
	case actionPreview:
		if _, err := client.Preview(contextOf(cmd), remote, os.Stdout); err != nil {
			return fmt.Errorf("failed to preview %q: %w", remote, err)
		}
		_, _ = fmt.Fprintln(os.Stdout)
	case actionDownload:
		return download(cmd, client, remote, "", false)
	}
	return nil
}
