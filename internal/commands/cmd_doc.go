package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/hay-kot/chance/internal/printer"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const defaultDocWidth = 80

type DocCmd struct {
	flags *Flags
	raw   bool
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Format grammar and configuration guides",
		Description: `Access documentation for chance.

Use 'chance doc grammar' to see the format template grammar.
Use 'chance doc config' to see an annotated configuration file.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print markdown without terminal rendering",
				Destination: &cmd.raw,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "grammar",
				Usage:  "Show the format template grammar",
				Action: cmd.action(grammarGuide),
			},
			{
				Name:   "config",
				Usage:  "Show an annotated configuration file",
				Action: cmd.action(configGuide),
			},
		},
	})
	return app
}

func (cmd *DocCmd) action(guide string) cli.ActionFunc {
	return func(_ context.Context, c *cli.Command) error {
		return cmd.print(c.Root().Writer, guide)
	}
}

// print writes guide to w, rendered with glamour when w is a terminal.
func (cmd *DocCmd) print(w io.Writer, guide string) error {
	if cmd.raw || !printer.IsTerminal(w) {
		_, err := fmt.Fprint(w, guide)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(docWidth(w)),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	out, err := renderer.Render(guide)
	if err != nil {
		return fmt.Errorf("render guide: %w", err)
	}

	_, err = fmt.Fprint(w, out)
	return err
}

func docWidth(w io.Writer) int {
	type fder interface{ Fd() uintptr }

	f, ok := w.(fder)
	if !ok {
		return defaultDocWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultDocWidth
	}
	return min(width, 120)
}

const grammarGuide = "# Format Templates\n" + `
A format template is ordinary text with specifiers. It is scanned left to
right and every specifier is replaced by random characters.

## Syntax

| Text | Meaning |
|------|---------|
| ` + "`%%`" + ` | a literal percent sign |
| ` + "`%d`" + ` | one character from rule ` + "`d`" + ` |
| ` + "`%3d`" + ` | three characters from rule ` + "`d`" + ` |
| ` + "`%0d`" + ` | nothing, but rule ` + "`d`" + ` must still exist |
| anything else | copied unchanged |

The count is a decimal number. The rule name is a single ASCII letter and is
case sensitive, so ` + "`%a`" + ` and ` + "`%A`" + ` are different rules.

## Built-in Rules

| Rule | Characters |
|------|------------|
| ` + "`d`" + ` | 0-9 |
| ` + "`a`" + ` | a-z |
| ` + "`A`" + ` | A-Z |

Run ` + "`chance rules`" + ` to list every rule, including those from your config.

## Errors

- A specifier naming an unknown rule fails and produces no output.
- A ` + "`%`" + ` at the end of the template, or a count followed by something
  other than a letter, is a malformed specifier.

## Examples

` + "```" + `
chance format "(%3d) %3d-%4d"     # (415) 555-0143
chance format "%2A-%4d"           # QX-2291
chance format "100%%"             # 100%
chance format -n 3 "%8a"          # three random lowercase words
` + "```" + `
`

const configGuide = "# Configuration\n" + `
chance reads ` + "`$XDG_CONFIG_HOME/chance/config.yaml`" + ` by default. Use
` + "`--config`" + ` or ` + "`CHANCE_CONFIG`" + ` to point elsewhere. A missing file
is not an error.

` + "```yaml" + `
# Use only the rules defined below instead of adding to d, a and A.
replace_default_rules: false

rules:
  # one random character per expansion
  h:
    chars: "0123456789abcdef"
  # one random word per expansion
  w:
    words: [alpha, bravo, charlie]
  # every value once before any repeats
  c:
    cycle: [red, green, blue]

# Named templates for "chance format -t <name>"
templates:
  phone: "(%3d) %3d-%4d"
  hex: "0x%8h"

# Lists for "chance pick @name", "chance cycle @name" and render data
lists:
  colors: [red, green, blue]
` + "```" + `

Rule keys must be a single ASCII letter and define exactly one of ` + "`chars`" + `,
` + "`words`" + ` or ` + "`cycle`" + `. Run ` + "`chance config validate`" + ` to check the file.
`
