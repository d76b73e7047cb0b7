package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type PickCmd struct {
	flags *Flags
	count int
}

// NewPickCmd creates a new pick command
func NewPickCmd(flags *Flags) *PickCmd {
	return &PickCmd{flags: flags}
}

// Register adds the pick command to the application
func (cmd *PickCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "pick",
		Usage:     "Pick random items from a list",
		UsageText: "chance pick [options] <item...>",
		Description: `Prints random items drawn independently from the arguments.
Items may repeat. Pass a single @name to pick from a list in the config file.

Example:
  chance pick red green blue
  chance pick -n 3 @colors`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "count",
				Aliases:     []string{"n"},
				Usage:       "number of items to pick",
				Value:       1,
				Destination: &cmd.count,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PickCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one item required\n\nUsage: chance pick <item...>")
	}
	if cmd.count < 0 {
		return fmt.Errorf("--count cannot be negative")
	}

	items, err := cmd.flags.Service.Items(c.Args().Slice())
	if err != nil {
		return err
	}

	out, err := cmd.flags.Service.Pick(items, cmd.count)
	if err != nil {
		return err
	}

	w := c.Root().Writer
	for _, v := range out {
		_, _ = fmt.Fprintln(w, v)
	}
	return nil
}
