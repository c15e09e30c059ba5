package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"
	"github.com/warpdl/warptimer/cmd/common"
	gcommon "github.com/warpdl/warptimer/common"
	"github.com/warpdl/warptimer/internal/journal"
	"github.com/warpdl/warptimer/pkg/logger"
)

func history(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	j, err := journal.Open(gcommon.ConfigPath(journal.FileName), logger.NewNopLogger())
	if err != nil {
		common.PrintRuntimeErr(ctx, "history", "open_journal", err)
		return nil
	}
	defer j.Close()

	entries, err := j.Recent(ctx.Int("limit"))
	if err != nil {
		common.PrintRuntimeErr(ctx, "history", "recent", err)
		return nil
	}
	printHistory(os.Stdout, entries, time.Now())
	return nil
}

// printHistory renders entries as a fixed-width table, newest first.
func printHistory(w io.Writer, entries []journal.Entry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "warptimer: no fired tasks recorded")
		return
	}
	cmdW, errW := DEF_HISTORY_CMD_W, DEF_HISTORY_ERR_W
	rule := strings.Repeat("-", cmdW+errW+41)

	var b strings.Builder
	b.WriteString("Recently fired tasks:\n\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "| ID |%s|    Delay    |      Fired       |%s|\n",
		common.Beaut("Command", cmdW), common.Beaut("Result", errW))
	fmt.Fprintf(&b, "|----|%s|-------------|------------------|%s|\n",
		strings.Repeat("-", cmdW), strings.Repeat("-", errW))
	for _, e := range entries {
		result := "ok"
		if e.Failed() {
			result = e.Error
		}
		fmt.Fprintf(&b, "|%s|%s|%s|%s|%s|\n",
			common.Fit(fmt.Sprint(e.TaskID), 4),
			common.Fit(e.Args, cmdW),
			common.Fit(e.Delay.String(), 13),
			common.Fit(humanize.RelTime(e.FiredAt, now, "ago", "from now"), 18),
			common.Fit(result, errW),
		)
	}
	b.WriteString(rule)
	fmt.Fprintln(w, b.String())
}
