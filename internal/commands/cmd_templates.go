package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/hay-kot/chance/internal/printer"
	"github.com/hay-kot/chance/pkg/randfmt"
	"github.com/urfave/cli/v3"
)

type TemplatesCmd struct {
	flags   *Flags
	samples int
}

// NewTemplatesCmd creates a new templates command
func NewTemplatesCmd(flags *Flags) *TemplatesCmd {
	return &TemplatesCmd{flags: flags}
}

// Register adds the templates command to the application
func (cmd *TemplatesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "templates",
		Usage:       "Inspect named format templates",
		UsageText:   "chance templates <command>",
		Description: "List and inspect the named format templates defined in your config file.",
		Commands: []*cli.Command{
			{
				Name:        "list",
				Aliases:     []string{"ls"},
				Usage:       "List all named templates",
				UsageText:   "chance templates list",
				Description: "Displays a table of all templates with their format and an example expansion.",
				Action:      cmd.runList,
			},
			{
				Name:        "show",
				Usage:       "Show details of a named template",
				UsageText:   "chance templates show [options] <name>",
				Description: "Displays the format, the rule behind each specifier, and sample expansions.",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "samples",
						Aliases:     []string{"n"},
						Usage:       "number of sample expansions",
						Value:       3,
						Destination: &cmd.samples,
					},
				},
				Action: cmd.runShow,
			},
		},
	})

	return app
}

func (cmd *TemplatesCmd) runList(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	svc := cmd.flags.Service

	names := svc.TemplateNames()
	if len(names) == 0 {
		p.Infof("No templates defined. Add templates to your config file.")
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tFORMAT\tEXAMPLE")

	for _, name := range names {
		format, err := svc.Template(name)
		if err != nil {
			return err
		}

		var example string
		if out, err := svc.Format(format, 1, false); err == nil {
			example = out[0]
		} else {
			example = "error: " + err.Error()
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", name, format, example)
	}

	return w.Flush()
}

func (cmd *TemplatesCmd) runShow(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	svc := cmd.flags.Service

	if c.Args().Len() < 1 {
		return fmt.Errorf("template name required")
	}
	if cmd.samples < 0 {
		return fmt.Errorf("--samples cannot be negative")
	}

	name := c.Args().First()
	format, err := svc.Template(name)
	if err != nil {
		return err
	}

	t, err := randfmt.Parse(format)
	if err != nil {
		return fmt.Errorf("parse template %q: %w", name, err)
	}

	w := c.Root().Writer

	p.Infof("Template: %s", name)
	_, _ = fmt.Fprintf(w, "Format: %s\n\n", t.Source())

	info := map[rune]string{}
	for _, ri := range svc.RuleInfo() {
		info[ri.Char] = fmt.Sprintf("%s (%s)", ri.Kind, ri.Source)
	}

	specs := t.Specifiers()
	if len(specs) == 0 {
		_, _ = fmt.Fprintln(w, "Specifiers: (none)")
	} else {
		_, _ = fmt.Fprintln(w, "Specifiers:")
		for _, spec := range specs {
			rule, ok := info[spec.Char]
			if !ok {
				rule = "missing rule"
			}
			_, _ = fmt.Fprintf(w, "  • %%%d%c  %s\n", spec.Count, spec.Char, rule)
		}
	}
	_, _ = fmt.Fprintln(w)

	out, err := svc.Format(format, cmd.samples, false)
	if err != nil {
		return fmt.Errorf("expand template %q: %w", name, err)
	}

	_, _ = fmt.Fprintln(w, "Samples:")
	for _, line := range out {
		_, _ = fmt.Fprintf(w, "  %s\n", line)
	}

	return nil
}
