package context

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/cmd/treeportctl/cmdutil"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all contexts",
	Long:    `List all configured server contexts. The current one is marked with "*".`,
	Args:    cobra.NoArgs,
	RunE:    runContextList,
}

// ContextInfo describes one context.
type ContextInfo struct {
	Name      string `json:"name" yaml:"name"`
	Current   bool   `json:"current" yaml:"current"`
	ServerURL string `json:"server_url" yaml:"server_url"`
}

// ContextList is a list of contexts for table rendering.
type ContextList []ContextInfo

// Headers implements TableRenderer.
func (cl ContextList) Headers() []string {
	return []string{"CURRENT", "NAME", "SERVER"}
}

// Rows implements TableRenderer.
func (cl ContextList) Rows() [][]string {
	rows := make([][]string, 0, len(cl))
	for _, c := range cl {
		current := ""
		if c.Current {
			current = "*"
		}
		rows = append(rows, []string{current, c.Name, c.ServerURL})
	}
	return rows
}

func runContextList(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	currentName := store.CurrentName()
	list := make(ContextList, 0)
	for _, name := range store.Names() {
		ctx, err := store.Get(name)
		if err != nil {
			continue
		}
		list = append(list, ContextInfo{
			Name:      name,
			Current:   name == currentName,
			ServerURL: ctx.ServerURL,
		})
	}

	return cmdutil.PrintOutput(cmd.OutOrStdout(), list, len(list) == 0,
		"No contexts configured. Add one with: treeportctl context add <name> <server-url>", list)
}
