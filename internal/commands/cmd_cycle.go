package commands

import (
	"context"
	"fmt"

	"github.com/hay-kot/chance/internal/printer"
	"github.com/hay-kot/chance/internal/styles"
	"github.com/urfave/cli/v3"
)

type CycleCmd struct {
	flags  *Flags
	draws  int
	epochs bool
}

// NewCycleCmd creates a new cycle command
func NewCycleCmd(flags *Flags) *CycleCmd {
	return &CycleCmd{flags: flags}
}

// Register adds the cycle command to the application
func (cmd *CycleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "cycle",
		Usage:     "Draw items without repeats until all are used",
		UsageText: "chance cycle [options] <item...>",
		Description: `Prints items in a random order where every item is used once before
any item repeats. When the items run out a new random order starts.
Pass a single @name to cycle through a list in the config file.

Example:
  chance cycle alice bob carol
  chance cycle -n 10 --epochs @colors`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "draws",
				Aliases:     []string{"n"},
				Usage:       "number of items to draw (default: one full pass)",
				Destination: &cmd.draws,
			},
			&cli.BoolFlag{
				Name:        "epochs",
				Usage:       "print a divider before each new pass",
				Destination: &cmd.epochs,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *CycleCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one item required\n\nUsage: chance cycle <item...>")
	}
	if cmd.draws < 0 {
		return fmt.Errorf("--draws cannot be negative")
	}

	items, err := cmd.flags.Service.Items(c.Args().Slice())
	if err != nil {
		return err
	}

	draws := cmd.draws
	if draws == 0 {
		draws = len(items)
	}

	out, err := cmd.flags.Service.Cycle(items, draws)
	if err != nil {
		return err
	}

	w := c.Root().Writer
	color := printer.IsTerminal(w)
	epoch := 0
	for _, d := range out {
		if cmd.epochs && d.Epoch != epoch {
			epoch = d.Epoch
			divider := fmt.Sprintf("── pass %d ──", epoch)
			if color {
				divider = styles.DividerStyle.Render(divider)
			}
			_, _ = fmt.Fprintln(w, divider)
		}
		_, _ = fmt.Fprintln(w, d.Value)
	}
	return nil
}
