package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli"

	"statusync"
	"statusync/internal/status"
)

var StatusCmd = cli.Command{
	Name:  "status",
	Usage: "Manages the Slack status events tied to calendar events",
	Subcommands: []cli.Command{
		{
			Name:   "list",
			Usage:  "Lists status events grouped into upcoming and past",
			Flags:  statusListFlags,
			Action: listStatusEvents,
		},
		{
			Name:   "create",
			Usage:  "Schedules a Slack status for a calendar event",
			Flags:  statusCreateFlags,
			Action: createStatusEvent,
		},
		{
			Name:   "update",
			Usage:  "Changes the text or emoji of a status event",
			Flags:  statusUpdateFlags,
			Action: updateStatusEvent,
		},
		{
			Name:   "delete",
			Usage:  "Removes a status event",
			Flags:  statusDeleteFlags,
			Action: deleteStatusEvent,
		},
	},
}

var statusListFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "date",
		Usage: "Reference date (YYYY-MM-DD) for the upcoming/past split, defaults to now",
	},
}

var statusCreateFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "calendar",
		Usage: "The calendar holding the event",
	},
	&cli.StringFlag{
		Name:  "event",
		Usage: "The calendar event to attach the status to",
	},
	&cli.StringFlag{
		Name:  "text",
		Usage: "The status text",
	},
	&cli.StringFlag{
		Name:  "emoji",
		Usage: "The status emoji name",
	},
}

var statusUpdateFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "id",
		Usage: "The status event to update",
	},
	&cli.StringFlag{
		Name:  "text",
		Usage: "The new status text",
	},
	&cli.StringFlag{
		Name:  "emoji",
		Usage: "The new status emoji name",
	},
	&cli.BoolFlag{
		Name:  "no-emoji",
		Usage: "Remove the status emoji",
	},
}

var statusDeleteFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "id",
		Usage: "The status event to delete",
	},
}

func listStatusEvents(c *cli.Context) error {
	r, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer r.stop()

	ctx := context.Background()
	if err := r.start(ctx); err != nil {
		return err
	}

	now := time.Now()
	if d := c.String("date"); d != "" {
		now, err = time.Parse("2006-01-02", d)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", d, err)
		}
	}

	events, err := r.gateway.StatusEvents(ctx)
	if err != nil {
		return err
	}
	upcoming, past := status.Classify(events, now)

	fmt.Printf("Upcoming:\n")
	printStatusEvents(upcoming)
	fmt.Printf("Past:\n")
	printStatusEvents(past)
	return nil
}

func printStatusEvents(events []statusync.StatusEvent) {
	if len(events) == 0 {
		fmt.Printf("  none\n")
		return
	}
	for _, ev := range events {
		fmt.Printf("  [%s] %s\n", ev.ID, ev)
	}
}

func createStatusEvent(c *cli.Context) error {
	calendarID := c.String("calendar")
	eventID := c.String("event")
	if calendarID == "" || eventID == "" {
		return fmt.Errorf("both --calendar and --event are required")
	}

	r, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer r.stop()

	ctx := context.Background()
	if err := r.start(ctx); err != nil {
		return err
	}

	u, err := r.gateway.CurrentUser(ctx)
	if err != nil {
		return err
	}
	events, err := r.gateway.CalendarEvents(ctx, calendarID)
	if err != nil {
		return err
	}
	ev, err := findCalendarEvent(events, eventID)
	if err != nil {
		return err
	}

	draft := statusync.DraftFromCalendarEvent(ev)
	draft.StatusText = c.String("text")
	if name := c.String("emoji"); name != "" {
		draft.StatusEmoji = &statusync.Emoji{Name: name}
	}

	created, err := r.controller.Create(ctx, draft, *u)
	if err != nil {
		return err
	}
	info("Created status event %s: %s", created.ID, created)
	return nil
}

func updateStatusEvent(c *cli.Context) error {
	id := c.String("id")
	if id == "" {
		return fmt.Errorf("--id is required")
	}

	r, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer r.stop()

	ctx := context.Background()
	if err := r.start(ctx); err != nil {
		return err
	}

	events, err := r.gateway.StatusEvents(ctx)
	if err != nil {
		return err
	}
	original, err := findStatusEvent(events, id)
	if err != nil {
		return err
	}

	draft := statusync.DraftFromStatusEvent(original)
	if c.IsSet("text") {
		draft.StatusText = c.String("text")
	}
	if name := c.String("emoji"); name != "" {
		draft.StatusEmoji = &statusync.Emoji{Name: name}
	}
	if c.Bool("no-emoji") {
		draft.StatusEmoji = nil
	}

	updated, err := r.controller.Update(ctx, draft, original)
	if err != nil {
		return err
	}
	info("Updated status event %s: %s", updated.ID, updated)
	return nil
}

func deleteStatusEvent(c *cli.Context) error {
	id := c.String("id")
	if id == "" {
		return fmt.Errorf("--id is required")
	}

	r, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer r.stop()

	ctx := context.Background()
	if err := r.start(ctx); err != nil {
		return err
	}

	if err := r.controller.Delete(ctx, id); err != nil {
		return err
	}
	info("Deleted status event %s", id)
	return nil
}

func findCalendarEvent(events []statusync.CalendarEvent, id string) (statusync.CalendarEvent, error) {
	for _, ev := range events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return statusync.CalendarEvent{}, fmt.Errorf("no event %s in calendar", id)
}

func findStatusEvent(events []statusync.StatusEvent, id string) (statusync.StatusEvent, error) {
	for _, ev := range events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return statusync.StatusEvent{}, fmt.Errorf("no status event %s", id)
}
