//go:build !windows

package cmd

import (
	"fmt"
	"os"
	"syscall"
	"time"
)

var (
	shutdownTimeout = 5 * time.Second
	pollInterval    = 100 * time.Millisecond
)

// killDaemon sends SIGTERM and waits for the process to exit, falling back
// to SIGKILL after shutdownTimeout.
func killDaemon(pid int) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("process not found: %w", err)
	}
	if err := process.Signal(syscall.Signal(0)); err != nil {
		return fmt.Errorf("daemon not running (PID %d): %w", pid, err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send SIGTERM: %w", err)
	}

	deadline := time.Now().Add(shutdownTimeout)
	for time.Now().Before(deadline) {
		if err := process.Signal(syscall.Signal(0)); err != nil {
			return nil
		}
		time.Sleep(pollInterval)
	}

	fmt.Println("Graceful shutdown timeout, forcing kill...")
	if err := process.Signal(syscall.SIGKILL); err != nil {
		return fmt.Errorf("failed to send SIGKILL: %w", err)
	}
	time.Sleep(5 * pollInterval)
	return nil
}
