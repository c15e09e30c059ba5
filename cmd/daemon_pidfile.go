package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/warpdl/warptimer/common"
)

const pidFileName = "daemon.pid"

func getPidFilePath() string {
	return common.ConfigPath(pidFileName)
}

// WritePidFile writes the current process ID to the PID file.
func WritePidFile() error {
	return os.WriteFile(getPidFilePath(), []byte(strconv.Itoa(os.Getpid())), 0644)
}

// ReadPidFile reads and returns the PID from the PID file.
func ReadPidFile() (int, error) {
	data, err := os.ReadFile(getPidFilePath())
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %w", err)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("invalid PID: %d", pid)
	}
	return pid, nil
}

// RemovePidFile removes the PID file. A missing file is not an error.
func RemovePidFile() error {
	err := os.Remove(getPidFilePath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// ErrDaemonAlreadyRunning is returned when the PID file names a live process.
var ErrDaemonAlreadyRunning = errors.New("daemon already running")

// CleanupStalePidFile removes a PID file that is unreadable or names a
// process that is gone. It fails with ErrDaemonAlreadyRunning when the
// recorded process is still alive.
func CleanupStalePidFile() error {
	pid, err := ReadPidFile()
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return RemovePidFile()
	case isProcessRunning(pid):
		return fmt.Errorf("%w (PID %d)", ErrDaemonAlreadyRunning, pid)
	}
	return RemovePidFile()
}
