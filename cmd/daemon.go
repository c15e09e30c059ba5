package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli"
	"github.com/warpdl/warptimer/cmd/common"
	"github.com/warpdl/warptimer/pkg/logger"
)

func daemon(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	opts, err := sessionOptionsFromContext(ctx)
	if err != nil {
		return common.PrintErrWithCmdHelp(ctx, err)
	}
	specs, err := collectTasks(taskFs, ctx.StringSlice("task"), ctx.String("file"))
	if err != nil {
		return common.PrintErrWithCmdHelp(ctx, err)
	}

	sigCtx, cancel := setupShutdownHandler()
	defer cancel()

	return runDaemon(sigCtx, opts, specs, newCLILogger())
}

// runDaemon owns the PID file for its lifetime and drives the dispatch
// loop until ctx is canceled.
func runDaemon(ctx context.Context, opts sessionOptions, specs []taskSpec, l logger.Logger) error {
	if err := CleanupStalePidFile(); err != nil {
		return err
	}
	if err := WritePidFile(); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	defer func() {
		if err := RemovePidFile(); err != nil {
			l.Warning("failed to remove PID file: %v", err)
		}
	}()

	s, err := newSession(opts, l)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.schedule(specs); err != nil {
		return err
	}
	l.Info("daemon started (PID %d)", os.Getpid())

	err = s.runner.Start(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	l.Info("daemon stopped: %d fired, %d failed, %d pending",
		s.fired.Load(), s.Failed(), s.sched.Pending())
	return nil
}
