package cmd

import (
	"github.com/urfave/cli"
	"github.com/warpdl/warptimer/common"
)

var (
	taskFlags = []cli.Flag{
		cli.StringSliceFlag{
			Name:  "task, t",
			Usage: `task to schedule as "<delay> <command>", may be repeated`,
		},
		cli.StringFlag{
			Name:  "file, f",
			Usage: "read tasks from a file, one per line",
		},
		cli.StringFlag{
			Name:   "clock, c",
			Usage:  "wakeup source, ticker or alarm",
			Value:  "ticker",
			EnvVar: common.ClockEnv,
		},
		cli.DurationFlag{
			Name:  "interval, i",
			Usage: "time between checks for due tasks",
			Value: DEF_INTERVAL,
		},
		cli.BoolFlag{
			Name:  "journal, j",
			Usage: "record fired tasks in the history database (default: false)",
		},
		cli.BoolFlag{
			Name:  "progress, p",
			Usage: "show a progress bar when stdout is a terminal (default: false)",
		},
	}

	historyFlags = []cli.Flag{
		cli.IntFlag{
			Name:  "limit, l",
			Usage: "number of entries to print, 0 for all",
			Value: DEF_HISTORY_LIMIT,
		},
	}
)
