package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"statusync/internal/cmd"
)

func main() {
	var err error

	ctl := cli.App{
		Name:    fmt.Sprintf("%sctl", cmd.AppName),
		Version: cmd.AppVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "The path for storage",
				Value: cmd.DataPath(),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "An explicit configuration file path",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "The status-syncer API base URL, overrides the configuration",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Output debug messages",
			},
		},
		Commands: []cli.Command{
			cmd.AuthorizeCmd,
			cmd.ShowCalendarsCmd,
			cmd.EventsCmd,
			cmd.EmojisCmd,
			cmd.StatusCmd,
			cmd.LinkSlackCmd,
		},
	}

	err = ctl.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
