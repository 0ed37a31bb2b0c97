package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/treeport/internal/cli/output"
	"github.com/marmos91/treeport/internal/cli/timeutil"
	"github.com/marmos91/treeport/pkg/apiclient"
	"github.com/marmos91/treeport/pkg/config"
)

var (
	statusOutput  string
	statusPidFile string
	statusAPIPort int
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	Long: `Display the current status of the local treeport server.

The PID file is checked first, then /health and /health/ready are queried.
The port is read from the configuration unless --api-port is given.

Examples:
  # Check status
  treeport status

  # Check status with a custom API port
  treeport status --api-port 9080

  # Output as JSON
  treeport status --output json`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusPidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/treeport/treeport.pid)")
	statusCmd.Flags().IntVar(&statusAPIPort, "api-port", 0, "API server port (default: from configuration)")
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

// ServerStatus is what `treeport status` reports.
type ServerStatus struct {
	Running   bool   `json:"running" yaml:"running"`
	PID       int    `json:"pid,omitempty" yaml:"pid,omitempty"`
	Healthy   bool   `json:"healthy" yaml:"healthy"`
	Ready     bool   `json:"ready" yaml:"ready"`
	Message   string `json:"message" yaml:"message"`
	StartedAt string `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	UptimeSec int64  `json:"uptime_sec,omitempty" yaml:"uptime_sec,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(statusOutput)
	if err != nil {
		return err
	}

	pidPath := statusPidFile
	if pidPath == "" {
		pidPath = GetDefaultPidFile()
	}

	status := ServerStatus{Message: "Server is not running"}
	if pid, running := isProcessRunning(pidPath); running {
		status.Running = true
		status.PID = pid
	}

	client := apiclient.New(fmt.Sprintf("http://localhost:%d", statusPort())).WithTimeout(2 * time.Second)
	probeStatus(cmd.Context(), client, &status)

	out := cmd.OutOrStdout()
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(out, status)
	case output.FormatYAML:
		return output.PrintYAML(out, status)
	default:
		return printStatusTable(out, status)
	}
}

// statusPort prefers the flag, then the configured port, then the default.
func statusPort() int {
	if statusAPIPort > 0 {
		return statusAPIPort
	}
	if cfg, err := config.Load(GetConfigFile()); err == nil {
		return cfg.Server.Port
	}
	return config.GetDefaultConfig().Server.Port
}

// probeStatus fills in health fields from the running server.
func probeStatus(ctx context.Context, client *apiclient.Client, status *ServerStatus) {
	if ctx == nil {
		ctx = context.Background()
	}

	health, err := client.Health(ctx)
	if err != nil {
		if status.Running {
			status.Message = "Server process exists but health check failed"
		}
		return
	}

	status.Running = true
	status.Healthy = health.Healthy()
	status.StartedAt = health.Data.StartedAt
	status.UptimeSec = health.Data.UptimeSec

	ready, err := client.Ready(ctx)
	switch {
	case err != nil:
		status.Message = "Server is running but readiness check failed"
	case !ready.Healthy():
		status.Message = fmt.Sprintf("Server is running but not ready: %s", ready.Error)
	default:
		status.Ready = true
		status.Message = "Server is running and serving its tree"
	}
}

func printStatusTable(w io.Writer, status ServerStatus) error {
	state := "Stopped"
	switch {
	case status.Running && status.Ready:
		state = "Running"
	case status.Running:
		state = "Running (not ready)"
	}

	pairs := [][2]string{{"Status", state}}
	if status.PID > 0 {
		pairs = append(pairs, [2]string{"PID", fmt.Sprintf("%d", status.PID)})
	}
	if status.StartedAt != "" {
		pairs = append(pairs, [2]string{"Started", timeutil.FormatTime(status.StartedAt)})
		pairs = append(pairs, [2]string{"Uptime", timeutil.FormatUptime(time.Duration(status.UptimeSec) * time.Second)})
	}
	pairs = append(pairs, [2]string{"Message", status.Message})

	return output.SimpleTable(w, pairs)
}
