//go:build !windows

package cmd

import (
	"os"
	"syscall"
)

// isProcessRunning probes pid with signal 0.
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
