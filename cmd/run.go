package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"
	"github.com/warpdl/warptimer/cmd/common"
	gcommon "github.com/warpdl/warptimer/common"
	"github.com/warpdl/warptimer/internal/clock"
	"github.com/warpdl/warptimer/internal/scheduler"
	"github.com/warpdl/warptimer/pkg/logger"
)

var (
	// taskFs is where --file is read from.
	taskFs afero.Fs = afero.NewOsFs()
	// newSource builds the wakeup source for run and daemon.
	newSource = clock.NewSource

	errNoTasks = errors.New("no tasks provided, use --task or --file")
)

func newCLILogger() logger.Logger {
	l := logger.NewStandardLogger(log.New(os.Stderr, "warptimer: ", log.LstdFlags))
	l.SetDebug(gcommon.IsDebug())
	return l
}

// sessionOptionsFromContext reads the shared task flags.
func sessionOptionsFromContext(ctx *cli.Context) (sessionOptions, error) {
	strategy, err := clock.ParseStrategy(ctx.String("clock"))
	if err != nil {
		return sessionOptions{}, err
	}
	return sessionOptions{
		Strategy: strategy,
		Interval: ctx.Duration("interval"),
		Journal:  ctx.Bool("journal"),

		SourceFactory: newSource,
	}, nil
}

func run(ctx *cli.Context) error {
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
	if len(specs) == 0 {
		return common.PrintErrWithCmdHelp(ctx, errNoTasks)
	}

	sigCtx, cancel := setupShutdownHandler()
	defer cancel()

	showProgress := ctx.Bool("progress") && isatty.IsTerminal(os.Stdout.Fd())
	return runTasks(sigCtx, opts, specs, newCLILogger(), showProgress)
}

// runTasks schedules specs and drives the dispatch loop until every task
// has fired or ctx is canceled. It fails if any task failed.
func runTasks(ctx context.Context, opts sessionOptions, specs []taskSpec, l logger.Logger, progress bool) error {
	s, err := newSession(opts, l)
	if err != nil {
		return err
	}
	defer s.Close()

	var p *mpb.Progress
	if progress {
		p = mpb.New()
		bar := common.InitTaskBar(p, len(specs), s.Failed)
		s.observe(scheduler.ObserverFunc(func(scheduler.Outcome) { bar.Increment() }))
		defer func() {
			if !bar.Completed() {
				bar.Abort(false)
			}
			p.Wait()
		}()
	}

	if _, err := s.schedule(specs); err != nil {
		return err
	}

	loopCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() {
		select {
		case <-s.Done():
			stop()
		case <-loopCtx.Done():
		}
	}()

	err = s.runner.Start(loopCtx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	pending := s.sched.Pending()
	if n := s.Failed(); n > 0 {
		return fmt.Errorf("%d of %d tasks failed", n, len(specs))
	}
	if pending > 0 {
		return fmt.Errorf("interrupted with %d tasks pending", pending)
	}
	return nil
}
