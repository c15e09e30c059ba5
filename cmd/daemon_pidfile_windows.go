//go:build windows

package cmd

import (
	"golang.org/x/sys/windows"
)

// isProcessRunning opens pid with SYNCHRONIZE access, the smallest right
// that proves the process exists.
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	handle, err := windows.OpenProcess(windows.SYNCHRONIZE, false, uint32(pid))
	if err != nil {
		return false
	}
	windows.CloseHandle(handle)
	return true
}
