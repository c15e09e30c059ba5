package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/warpdl/warptimer/common"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	prev := common.ConfigDir
	dir := t.TempDir()
	if err := common.SetConfigDir(dir); err != nil {
		t.Fatalf("SetConfigDir: %v", err)
	}
	t.Cleanup(func() { common.ConfigDir = prev })
	return dir
}

func TestGetPidFilePath(t *testing.T) {
	dir := useTempConfigDir(t)
	path := getPidFilePath()
	if filepath.Dir(path) != dir {
		t.Fatalf("expected path in %s, got %s", dir, path)
	}
	if filepath.Base(path) != pidFileName {
		t.Fatalf("expected base name %s, got %s", pidFileName, filepath.Base(path))
	}
}

func TestWriteReadRemovePidFile(t *testing.T) {
	useTempConfigDir(t)

	if err := WritePidFile(); err != nil {
		t.Fatalf("WritePidFile: %v", err)
	}
	pid, err := ReadPidFile()
	if err != nil {
		t.Fatalf("ReadPidFile: %v", err)
	}
	if pid != os.Getpid() {
		t.Fatalf("expected PID %d, got %d", os.Getpid(), pid)
	}
	if err := RemovePidFile(); err != nil {
		t.Fatalf("RemovePidFile: %v", err)
	}
	if _, err := ReadPidFile(); !os.IsNotExist(err) {
		t.Fatalf("expected not exist after removal, got %v", err)
	}
	if err := RemovePidFile(); err != nil {
		t.Fatalf("second RemovePidFile: %v", err)
	}
}

func TestReadPidFile_Invalid(t *testing.T) {
	for _, content := range []string{"not-a-number", "-1", "0", ""} {
		t.Run(content, func(t *testing.T) {
			useTempConfigDir(t)
			if err := os.WriteFile(getPidFilePath(), []byte(content), 0644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if _, err := ReadPidFile(); err == nil {
				t.Fatalf("expected error for PID %q", content)
			}
		})
	}
}

func TestCleanupStalePidFile(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantErr     error
		wantRemoved bool
	}{
		{"no file", "", nil, true},
		{"invalid content", "invalid", nil, true},
		{"stale process", "999999999", nil, true},
		{"running process", strconv.Itoa(os.Getpid()), ErrDaemonAlreadyRunning, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTempConfigDir(t)
			path := getPidFilePath()
			if tt.content != "" {
				if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
					t.Fatalf("WriteFile: %v", err)
				}
			}
			err := CleanupStalePidFile()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CleanupStalePidFile() = %v, want %v", err, tt.wantErr)
			}
			_, statErr := os.Stat(path)
			if removed := os.IsNotExist(statErr); removed != tt.wantRemoved {
				t.Fatalf("removed = %v, want %v", removed, tt.wantRemoved)
			}
		})
	}
}

func TestIsProcessRunning(t *testing.T) {
	if !isProcessRunning(os.Getpid()) {
		t.Error("expected current process to be running")
	}
	if isProcessRunning(999999999) {
		t.Error("expected process 999999999 to not be running")
	}
	if isProcessRunning(-1) {
		t.Error("expected negative PID to not be running")
	}
}
