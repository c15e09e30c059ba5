package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"
	"github.com/warpdl/warptimer/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

func Execute(args []string, bArgs BuildArgs) error {
	app := cli.App{
		Name:                  "warptimer",
		HelpName:              "warptimer",
		Usage:                 "Run shell commands once after a delay.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "warptimer <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: []cli.Command{
			{
				Name:                   "run",
				Aliases:                []string{"r"},
				Usage:                  "run tasks and exit when all have fired",
				Action:                 run,
				Flags:                  taskFlags,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            RunDescription,
				UseShortOptionHandling: true,
			},
			{
				Name:                   "daemon",
				Aliases:                []string{"d"},
				Usage:                  "run tasks and keep dispatching until stopped",
				Action:                 daemon,
				Flags:                  taskFlags,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            DaemonDescription,
				UseShortOptionHandling: true,
			},
			{
				Name:               "stop",
				Usage:              "stop a running daemon",
				UsageText:          " ",
				Action:             stopDaemon,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        StopDescription,
			},
			{
				Name:                   "history",
				Aliases:                []string{"hist"},
				Usage:                  "display recently fired tasks",
				Action:                 history,
				Flags:                  historyFlags,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            HistoryDescription,
				UseShortOptionHandling: true,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of warptimer",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		Action:      common.Help,
		HideHelp:    true,
		HideVersion: true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
