//go:build windows

package commands

import (
	"fmt"
	"os"
)

// isProcessRunning only checks that the PID file is readable; Windows has
// no signal 0 probe.
func isProcessRunning(pidPath string) (int, bool) {
	pid, err := readPidFile(pidPath)
	if err != nil {
		return 0, false
	}
	if _, err := os.FindProcess(pid); err != nil {
		return 0, false
	}
	return pid, true
}

func startDaemon() error {
	return fmt.Errorf("daemon mode is not supported on Windows, use --foreground")
}
