package common

import (
	"errors"
	"flag"
	"testing"

	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"
)

func newTestContext(args ...string) *cli.Context {
	app := cli.NewApp()
	app.Name = "warptimer"
	app.HelpName = "warptimer"
	app.Version = "test"
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	_ = set.Parse(args)
	ctx := cli.NewContext(app, set, nil)
	ctx.Command = cli.Command{Name: "run"}
	return ctx
}

// stubHelp swaps both help printers for the duration of the test and
// reports how often each was called.
func stubHelp(t *testing.T, cmdErr error) (app, cmd *int) {
	t.Helper()
	app, cmd = new(int), new(int)
	prevApp, prevCmd := showAppHelpAndExit, showCommandHelp
	showAppHelpAndExit = func(*cli.Context, int) { *app++ }
	showCommandHelp = func(*cli.Context, string) error {
		*cmd++
		return cmdErr
	}
	t.Cleanup(func() {
		showAppHelpAndExit = prevApp
		showCommandHelp = prevCmd
	})
	return app, cmd
}

func TestInitTaskBar(t *testing.T) {
	p := mpb.New(mpb.WithOutput(nil))
	failed := 0
	bar := InitTaskBar(p, 3, func() int { return failed })
	if bar == nil {
		t.Fatal("expected bar")
	}
	bar.Increment()
	failed = 1
	bar.Increment()
	bar.Increment()
	p.Wait()
	if !bar.Completed() {
		t.Fatal("expected bar to complete after total increments")
	}
}

func TestBeaut(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hi", 4, " hi "},
		{"hi", 5, " hi  "},
		{"hi", 2, "hi"},
	}
	for _, tt := range tests {
		if got := Beaut(tt.in, tt.n); got != tt.want {
			t.Errorf("Beaut(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"echo hello world", 10, "echo he..."},
		{"ok", 6, "  ok  "},
		{"exact", 5, "exact"},
		{"long", 3, "long"},
	}
	for _, tt := range tests {
		if got := Fit(tt.in, tt.n); got != tt.want {
			t.Errorf("Fit(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestReplic(t *testing.T) {
	vals := replic('x', 3)
	if len(vals) != 3 || vals[2] != 'x' {
		t.Fatalf("unexpected replic output: %v", vals)
	}
}

func TestPrintRuntimeErr(t *testing.T) {
	// nil context and nil error must not panic
	PrintRuntimeErr(nil, "run", "load", nil)
	PrintRuntimeErr(nil, "run", "load", errors.New("boom"))
	PrintRuntimeErr(newTestContext(), "run", "load", errors.New("boom"))
}

func TestPrintErrWithHelp(t *testing.T) {
	app, _ := stubHelp(t, nil)
	if err := PrintErrWithHelp(newTestContext(), errors.New("bad input")); err != nil {
		t.Fatalf("PrintErrWithHelp: %v", err)
	}
	if *app != 1 {
		t.Fatalf("app help calls = %d, want 1", *app)
	}
	if err := PrintErrWithHelp(newTestContext(), nil); err != nil {
		t.Fatalf("nil error: %v", err)
	}
	if *app != 1 {
		t.Fatal("nil error must not print help")
	}
}

func TestPrintErrWithHelpRequested(t *testing.T) {
	app, _ := stubHelp(t, nil)
	if err := PrintErrWithHelp(newTestContext(), errors.New("flag: help requested")); err != nil {
		t.Fatalf("PrintErrWithHelp: %v", err)
	}
	if *app != 1 {
		t.Fatalf("app help calls = %d, want 1", *app)
	}
}

func TestPrintErrWithHelpVersion(t *testing.T) {
	app, _ := stubHelp(t, nil)
	old := VersionCmdStr
	VersionCmdStr = "warptimer v0"
	defer func() { VersionCmdStr = old }()

	if err := PrintErrWithHelp(newTestContext(), errors.New("bad -version")); err != nil {
		t.Fatalf("PrintErrWithHelp: %v", err)
	}
	if *app != 0 {
		t.Fatal("version request must not print help")
	}
}

func TestPrintErrWithCmdHelp(t *testing.T) {
	_, cmd := stubHelp(t, errors.New("no such command"))
	if err := PrintErrWithCmdHelp(newTestContext(), errors.New("bad flag")); err != nil {
		t.Fatalf("PrintErrWithCmdHelp: %v", err)
	}
	if *cmd != 1 {
		t.Fatalf("command help calls = %d, want 1", *cmd)
	}
}

func TestUsageErrorCallback(t *testing.T) {
	app, cmd := stubHelp(t, nil)

	if err := UsageErrorCallback(newTestContext(), errors.New("oops"), false); err != nil {
		t.Fatalf("UsageErrorCallback: %v", err)
	}
	if *cmd != 1 || *app != 0 {
		t.Fatalf("command context: app=%d cmd=%d", *app, *cmd)
	}

	ctx := newTestContext()
	ctx.Command = cli.Command{}
	if err := UsageErrorCallback(ctx, errors.New("oops"), false); err != nil {
		t.Fatalf("UsageErrorCallback: %v", err)
	}
	if *app != 1 {
		t.Fatalf("app context: app=%d", *app)
	}
}

func TestHelp(t *testing.T) {
	app, cmd := stubHelp(t, nil)
	if err := Help(newTestContext()); err != nil {
		t.Fatalf("Help: %v", err)
	}
	if *app != 1 {
		t.Fatal("expected app help")
	}
	if err := Help(newTestContext("history")); err != nil {
		t.Fatalf("Help history: %v", err)
	}
	if *cmd != 1 {
		t.Fatal("expected command help")
	}
}

func TestHelpCommandError(t *testing.T) {
	stubHelp(t, errors.New("boom"))
	if err := Help(newTestContext("nope")); err == nil {
		t.Fatal("expected error from Help")
	}
}

func TestGetVersion(t *testing.T) {
	old := VersionCmdStr
	VersionCmdStr = "warptimer v1.2.3"
	defer func() { VersionCmdStr = old }()

	if err := GetVersion(newTestContext()); err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
}
