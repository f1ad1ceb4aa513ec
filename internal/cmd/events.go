package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"statusync"
)

var EventsCmd = cli.Command{
	Name:   "events",
	Usage:  "Lists the events of a calendar",
	Flags:  eventsFlags,
	Action: showEvents,
}

var eventsFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "calendar",
		Usage: "The calendar to list events from, defaults to the first one",
	},
	&cli.BoolFlag{
		Name:  "all",
		Usage: "List the events of every calendar",
	},
}

func showEvents(c *cli.Context) error {
	r, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer r.stop()

	ctx := context.Background()
	if err := r.start(ctx); err != nil {
		return err
	}

	if c.Bool("all") {
		return showAllEvents(ctx, r)
	}

	page, err := r.controller.Refresh(ctx, c.String("calendar"))
	if err != nil {
		return err
	}
	if page.Calendar == nil {
		info("No calendars available.")
		return nil
	}
	printEvents(*page.Calendar, page.Events)
	return nil
}

func showAllEvents(ctx context.Context, r *runtime) error {
	calendars, err := r.gateway.Calendars(ctx)
	if err != nil {
		return err
	}

	events := make(map[string][]statusync.CalendarEvent, len(calendars))
	m := sync.Mutex{}

	g, gtx := errgroup.WithContext(ctx)
	for _, cal := range calendars {
		cal := cal
		g.Go(func() error {
			evs, err := r.controller.EventsForCalendar(gtx, cal.ID)
			if err != nil {
				return fmt.Errorf("unable to load events for %s: %w", cal.ID, err)
			}
			m.Lock()
			events[cal.ID] = evs
			m.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, cal := range calendars {
		printEvents(cal, events[cal.ID])
	}
	return nil
}

func printEvents(cal statusync.Calendar, events []statusync.CalendarEvent) {
	fmt.Printf("%s\n", cal)
	if len(events) == 0 {
		fmt.Printf("  no events\n")
		return
	}
	for _, ev := range events {
		fmt.Printf("  %s\n", ev)
	}
}
