package cmd

import (
	"bytes"
	"errors"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/warpdl/warptimer/pkg/logger"
)

func TestParseDelay(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"5s", 5 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"5", 5 * time.Second, false},
		{"2.5", 2500 * time.Millisecond, false},
		{"-1", -time.Second, false},
		{"soon", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDelay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDelay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseDelay(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTaskLine(t *testing.T) {
	spec, err := parseTaskLine("  10s   echo  'hello world'  ")
	if err != nil {
		t.Fatalf("parseTaskLine: %v", err)
	}
	if spec.Delay != 10*time.Second {
		t.Errorf("Delay = %v, want 10s", spec.Delay)
	}
	if spec.Command != "echo  'hello world'" {
		t.Errorf("Command = %q", spec.Command)
	}

	for _, bad := range []string{"", "10s", "   "} {
		if _, err := parseTaskLine(bad); !errors.Is(err, errNoCommand) {
			t.Errorf("parseTaskLine(%q) = %v, want errNoCommand", bad, err)
		}
	}
	if _, err := parseTaskLine("later echo hi"); err == nil {
		t.Error("expected error for bad delay")
	}
}

func TestLoadTaskFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "# nightly jobs\n\n5s echo one\n  1m echo two  \n#2s echo skipped\n"
	if err := afero.WriteFile(fs, "/tasks.txt", []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	specs, err := loadTaskFile(fs, "/tasks.txt")
	if err != nil {
		t.Fatalf("loadTaskFile: %v", err)
	}
	want := []taskSpec{
		{5 * time.Second, "echo one"},
		{time.Minute, "echo two"},
	}
	if len(specs) != len(want) {
		t.Fatalf("got %d specs, want %d: %+v", len(specs), len(want), specs)
	}
	for i := range want {
		if specs[i] != want[i] {
			t.Errorf("spec %d = %+v, want %+v", i, specs[i], want[i])
		}
	}
}

func TestLoadTaskFile_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := loadTaskFile(fs, "/missing.txt"); !os.IsNotExist(err) {
		t.Errorf("missing file error = %v, want not exist", err)
	}

	_ = afero.WriteFile(fs, "/bad.txt", []byte("5s echo ok\nnope\n"), 0644)
	_, err := loadTaskFile(fs, "/bad.txt")
	if err == nil || !strings.Contains(err.Error(), "/bad.txt:2") {
		t.Errorf("error = %v, want line reference /bad.txt:2", err)
	}
}

func TestCollectTasks(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/tasks.txt", []byte("3 echo file\n"), 0644)

	specs, err := collectTasks(fs, []string{"1s echo inline"}, "/tasks.txt")
	if err != nil {
		t.Fatalf("collectTasks: %v", err)
	}
	if len(specs) != 2 || specs[0].Command != "echo inline" || specs[1].Command != "echo file" {
		t.Fatalf("unexpected specs: %+v", specs)
	}

	if _, err := collectTasks(fs, []string{"oops"}, ""); err == nil {
		t.Error("expected error for inline task without command")
	}
	specs, err = collectTasks(fs, nil, "")
	if err != nil || len(specs) != 0 {
		t.Errorf("empty input = %v, %v", specs, err)
	}
}

func TestShellTask_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	var out bytes.Buffer
	s := &shellTask{log: logger.NewNopLogger(), stdout: &out, stderr: &out}

	if err := s.run("echo hello"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "hello" {
		t.Errorf("output = %q, want hello", got)
	}

	err := s.run("exit 3")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "exit status 3") {
		t.Errorf("error = %v, want exit status 3", err)
	}
}
