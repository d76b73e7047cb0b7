package commands

import (
	"context"
	"fmt"

	"github.com/hay-kot/chance/internal/templates"
	"github.com/urfave/cli/v3"
)

type FormatCmd struct {
	flags       *Flags
	count       int
	template    string
	interactive bool
	plain       bool
}

// NewFormatCmd creates a new format command
func NewFormatCmd(flags *Flags) *FormatCmd {
	return &FormatCmd{flags: flags}
}

// Register adds the format command to the application
func (cmd *FormatCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "format",
		Aliases:   []string{"f"},
		Usage:     "Expand a format template into random strings",
		UsageText: "chance format [options] <template>",
		Description: `Expands a template where %N<letter> is replaced by N random
characters from the rule for <letter> and %% is a literal percent sign.

Built-in rules: d (digit), a (lowercase letter), A (uppercase letter).
Additional rules can be defined in the config file.

Example:
  chance format "(%3d) %3d-%4d"
  chance format -n 5 "%2A-%4d"
  chance format -t phone`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "count",
				Aliases:     []string{"n"},
				Usage:       "number of strings to generate",
				Value:       1,
				Destination: &cmd.count,
			},
			&cli.StringFlag{
				Name:        "template",
				Aliases:     []string{"t"},
				Usage:       "use a named template from the config file",
				Destination: &cmd.template,
			},
			&cli.BoolFlag{
				Name:        "interactive",
				Aliases:     []string{"i"},
				Usage:       "prompt for the template when none is given",
				Destination: &cmd.interactive,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "ignore config rules and use only the built-in ones",
				Destination: &cmd.plain,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *FormatCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.count < 0 {
		return fmt.Errorf("--count cannot be negative")
	}

	format, err := cmd.resolveTemplate(c)
	if err != nil {
		return err
	}

	out, err := cmd.flags.Service.Format(format, cmd.count, cmd.plain)
	if err != nil {
		return fmt.Errorf("format %q: %w", format, err)
	}

	w := c.Root().Writer
	for _, line := range out {
		_, _ = fmt.Fprintln(w, line)
	}
	return nil
}

func (cmd *FormatCmd) resolveTemplate(c *cli.Command) (string, error) {
	svc := cmd.flags.Service

	switch {
	case cmd.template != "":
		if c.Args().Len() > 0 {
			return "", fmt.Errorf("--template cannot be combined with a template argument")
		}
		return svc.Template(cmd.template)
	case c.Args().Len() > 1:
		return "", fmt.Errorf("expected a single template argument, got %d (quote templates containing spaces)", c.Args().Len())
	case c.Args().Len() == 1:
		return c.Args().First(), nil
	case cmd.interactive:
		return templates.Prompt(svc.TemplateNames(), svc.Template)
	default:
		return "", fmt.Errorf("template required\n\nUsage: chance format <template>\n\nExample: chance format \"%%3d-%%2A\"")
	}
}
