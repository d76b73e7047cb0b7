package commands

import (
	"context"
	"fmt"

	"github.com/hay-kot/chance/internal/chance"
	"github.com/hay-kot/chance/internal/printer"
	"github.com/urfave/cli/v3"
)

type RenderCmd struct {
	flags  *Flags
	dir    string
	outDir string
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{flags: flags}
}

// Register adds the render command to the application
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Render template files filled with random data",
		UsageText: "chance render [options] <glob...>",
		Description: `Renders Go text/template files matched by the glob patterns.
Patterns support ** for recursive matches and are resolved against --dir.

Templates can call:
  fake "<format>"           expand a format template
  repeat N "<sep>" "<fmt>"  expand a format N times joined by sep
  pick .list / oneof a b    random item
  cycle .list               item without repeats within the render
  digit, lower, upper       single random character

Config lists are available as top-level fields, e.g. {{ pick .colors }}.

Without --out the rendered text is printed. With --out each file is written
to the output directory with the .tmpl suffix removed.

Example:
  chance render fixtures/users.csv.tmpl
  chance render --dir testdata --out build "**/*.tmpl"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "base directory for glob patterns",
				Value:       ".",
				Destination: &cmd.dir,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "write rendered files to this directory",
				Destination: &cmd.outDir,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one glob pattern required\n\nUsage: chance render <glob...>")
	}

	files, err := cmd.flags.Service.Render(ctx, chance.RenderOptions{
		Dir:      cmd.dir,
		Patterns: c.Args().Slice(),
		OutDir:   cmd.outDir,
	})
	if err != nil {
		return err
	}

	if cmd.outDir != "" {
		p := printer.Ctx(ctx)
		if len(files) == 0 {
			p.Warnf("no files rendered")
			return nil
		}
		p.Successf("rendered %d file(s) to %s", len(files), cmd.outDir)
		return nil
	}

	w := c.Root().Writer
	for _, f := range files {
		_, _ = fmt.Fprint(w, f.Output)
	}
	return nil
}
