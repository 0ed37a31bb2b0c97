package commands

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/cmd/treeportctl/cmdutil"
	"github.com/marmos91/treeport/internal/cli/output"
	"github.com/marmos91/treeport/internal/cli/timeutil"
	"github.com/marmos91/treeport/pkg/apiclient"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Long: `Query the liveness and readiness endpoints of the server.

The command fails when the server is unreachable or not ready.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

// HealthReport combines both probes.
type HealthReport struct {
	Server   string                    `json:"server" yaml:"server"`
	Liveness *apiclient.HealthResponse `json:"liveness" yaml:"liveness"`
	Ready    *apiclient.HealthResponse `json:"readiness" yaml:"readiness"`
}

func (r HealthReport) pairs() [][2]string {
	live := r.Liveness.Data
	pairs := [][2]string{
		{"Server", r.Server},
		{"Service", cmdutil.EmptyOr(live.Service, "-")},
		{"Status", r.Liveness.Status},
		{"Ready", strconv.FormatBool(r.Ready.Healthy())},
		{"Tree", cmdutil.EmptyOr(r.Ready.Data.Tree, "-")},
	}
	if live.UptimeSec > 0 {
		pairs = append(pairs, [2]string{"Uptime", timeutil.FormatUptime(time.Duration(live.UptimeSec) * time.Second)})
	}
	if r.Ready.Error != "" {
		pairs = append(pairs, [2]string{"Error", r.Ready.Error})
	}
	return pairs
}

func runHealth(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	live, err := client.Health(contextOf(cmd))
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	ready, err := client.Ready(contextOf(cmd))
	if err != nil {
		return fmt.Errorf("readiness check failed: %w", err)
	}

	report := HealthReport{Server: client.BaseURL(), Liveness: live, Ready: ready}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		err = output.PrintJSON(os.Stdout, report)
	case output.FormatYAML:
		err = output.PrintYAML(os.Stdout, report)
	default:
		err = output.SimpleTable(os.Stdout, report.pairs())
	}
	if err != nil {
		return err
	}

	if !ready.Healthy() {
		return fmt.Errorf("server is not ready")
	}
	return nil
}
