package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"
)

var ShowCalendarsCmd = cli.Command{
	Name:   "calendars",
	Usage:  "Lists the calendars of the signed-in Google account",
	Action: showCalendars,
}

func showCalendars(c *cli.Context) error {
	r, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer r.stop()

	ctx := context.Background()
	if err := r.start(ctx); err != nil {
		return err
	}

	calendars, err := r.gateway.Calendars(ctx)
	if err != nil {
		return err
	}
	for _, cal := range calendars {
		fmt.Printf("%s\n", cal)
	}
	return nil
}
