package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"
)

var LinkSlackCmd = cli.Command{
	Name:   "link-slack",
	Usage:  "Prints the URL that connects a Slack workspace account",
	Action: linkSlack,
}

func linkSlack(c *cli.Context) error {
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
	if u.Linked() {
		info("Slack account already linked (%s).", *u.SlackUserID)
	}

	link, err := r.gateway.WorkspaceLinkURL(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", link)
	return nil
}
