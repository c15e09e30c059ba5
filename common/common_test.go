package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsDebug(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"false", false},
		{"yes", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(DebugEnv, tt.value)
			if got := IsDebug(); got != tt.want {
				t.Errorf("IsDebug() with %q = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSetConfigDir(t *testing.T) {
	orig := ConfigDir
	defer func() { ConfigDir = orig }()

	dir := filepath.Join(t.TempDir(), "nested", "warptimer")
	if err := SetConfigDir(dir); err != nil {
		t.Fatalf("SetConfigDir: %v", err)
	}
	if ConfigDir != dir {
		t.Errorf("ConfigDir = %q, want %q", ConfigDir, dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("config dir not created: %v", err)
	}
	if got := ConfigPath("daemon.pid"); got != filepath.Join(dir, "daemon.pid") {
		t.Errorf("ConfigPath = %q", got)
	}
}

func TestSetConfigDir_Empty(t *testing.T) {
	if err := SetConfigDir(""); err == nil {
		t.Fatal("expected error for empty dir")
	}
}
