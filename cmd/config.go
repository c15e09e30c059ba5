package cmd

import "time"

const (
	DEF_INTERVAL      = time.Second
	DEF_HISTORY_LIMIT = 20
	DEF_HISTORY_CMD_W = 28
	DEF_HISTORY_ERR_W = 24
)

const DESCRIPTION = `
warptimer runs shell commands once after a delay. Tasks are kept in
memory and checked about once a second; every task whose delay has
elapsed is fired and forgotten.
`

const (
	RunDescription = `The run command registers every task given with --task
or read from --file, waits until all of them have fired and
exits. The exit status is non-zero if any task failed.

A task is "<delay> <shell command>", where delay is a Go
duration (90s, 1m30s) or a number of seconds (5, 2.5).

Example:
        warptimer run -t "5s echo hello" -t "1m notify-send done"
                    OR
        warptimer run --file tasks.txt --journal

`
	DaemonDescription = `The daemon command registers its tasks like run, but keeps
the dispatch loop alive after they have fired, until it is
interrupted or stopped with "warptimer stop".

Example:
        warptimer daemon --file tasks.txt --clock alarm

`
	StopDescription = `The stop command terminates a running daemon using the
PID file in the configuration directory.

Example:
        warptimer stop

`
	HistoryDescription = `The history command prints the most recently fired tasks
recorded by runs started with --journal.

Example:
        warptimer history --limit 50

`
)
