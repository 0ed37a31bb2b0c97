package commands

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/cmd/treeportctl/cmdutil"
	"github.com/marmos91/treeport/internal/bytesize"
	"github.com/marmos91/treeport/internal/cli/prompt"
	"github.com/marmos91/treeport/pkg/apiclient"
)

var (
	getOutput string
	getForce  bool
)

var getCmd = &cobra.Command{
	Use:     "get <file>",
	Aliases: []string{"download"},
	Short:   "Download a file from the server",
	Long: `Download a file from the server.

The file is saved under the name the server announces, in the current
directory, unless -O is given. Use -O - to write to stdout.

Examples:
  # Download into the current directory
  treeportctl get docs/report.pdf

  # Save under another name, replacing any existing file
  treeportctl get docs/report.pdf -O /tmp/r.pdf --force`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVarP(&getOutput, "output-file", "O", "", "Destination path, or - for stdout")
	getCmd.Flags().BoolVarP(&getForce, "force", "f", false, "Overwrite an existing file without asking")
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}
	return download(cmd, client, args[0], getOutput, getForce)
}

// download fetches remote into dest. An empty dest means the file name the
// server announces, in the current directory.
func download(cmd *cobra.Command, client *apiclient.Client, remote, dest string, force bool) error {
	if dest == "-" {
		if _, err := client.Download(contextOf(cmd), remote, os.Stdout); err != nil {
			return fmt.Errorf("failed to download %q: %w", remote, err)
		}
		return nil
	}

	dir := "."
	if dest != "" {
		dir = filepath.Dir(dest)
		ok, err := confirmReplace(dest, force)
		if err != nil || !ok {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, ".treeportctl-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	info, err := client.Download(contextOf(cmd), remote, tmp)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to download %q: %w", remote, err)
	}

	if dest == "" {
		if dest, err = localName(info.Filename, remote); err != nil {
			return err
		}
		ok, err := confirmReplace(dest, force)
		if err != nil || !ok {
			return err
		}
	}

	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("failed to save %s: %w", dest, err)
	}
	committed = true

	cmdutil.PrintSuccess(fmt.Sprintf("Saved %s (%s)", dest, bytesize.ByteSize(info.Written)))
	return nil
}

// confirmReplace reports whether dest may be written. An abort or a "no"
// answer yields false with a nil error.
func confirmReplace(dest string, force bool) (bool, error) {
	if _, err := os.Stat(dest); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("failed to check %s: %w", dest, err)
	}

	ok, err := prompt.ConfirmOverwrite(dest, force)
	if err != nil {
		return false, cmdutil.HandleAbort(err)
	}
	if !ok {
		_, _ = fmt.Fprintln(os.Stderr, "Aborted.")
	}
	return ok, nil
}

// localName picks a plain file name for a download: the announced name if
// usable, else the last element of remote.
func localName(announced, remote string) (string, error) {
	for _, candidate := range []string{announced, path.Base(strings.ReplaceAll(remote, `\`, "/"))} {
		name := filepath.Base(filepath.FromSlash(candidate))
		switch name {
		case "", ".", "..", string(filepath.Separator):
			continue
		}
		return name, nil
	}
	return "", fmt.Errorf("cannot derive a file name from %q; use -O", remote)
}
