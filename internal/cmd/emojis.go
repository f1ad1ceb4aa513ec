package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"
)

var EmojisCmd = cli.Command{
	Name:   "emojis",
	Usage:  "Lists the emoji catalog of the linked Slack workspace",
	Action: showEmojis,
}

func showEmojis(c *cli.Context) error {
	r, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer r.stop()

	ctx := context.Background()
	if err := r.start(ctx); err != nil {
		return err
	}

	emojis, err := r.gateway.WorkspaceEmojis(ctx)
	if err != nil {
		return err
	}
	for _, e := range emojis {
		fmt.Printf("%s\t%s\n", e.Render(), e.Name)
	}
	return nil
}
