package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/hay-kot/chance/internal/printer"
	"github.com/urfave/cli/v3"
)

type RulesCmd struct {
	flags  *Flags
	asJSON bool
}

// NewRulesCmd creates a new rules command
func NewRulesCmd(flags *Flags) *RulesCmd {
	return &RulesCmd{flags: flags}
}

// Register adds the rules command to the application
func (cmd *RulesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "rules",
		Usage:       "List the active format rules",
		UsageText:   "chance rules [--json]",
		Description: "Displays a table of the specifier characters available to format templates and where each rule comes from.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.asJSON,
			},
		},
		Action: cmd.run,
	})

	return app
}

type ruleJSON struct {
	Char   string `json:"char"`
	Kind   string `json:"kind"`
	Source string `json:"source"`
	Detail string `json:"detail"`
}

func (cmd *RulesCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	infos := cmd.flags.Service.RuleInfo()
	out := c.Root().Writer

	if cmd.asJSON {
		rows := make([]ruleJSON, 0, len(infos))
		for _, ri := range infos {
			rows = append(rows, ruleJSON{Char: string(ri.Char), Kind: ri.Kind, Source: ri.Source, Detail: ri.Detail})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(infos) == 0 {
		p.Infof("No rules defined")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SPEC\tKIND\tSOURCE\tVALUES")
	for _, ri := range infos {
		_, _ = fmt.Fprintf(w, "%%%c\t%s\t%s\t%s\n", ri.Char, ri.Kind, ri.Source, ri.Detail)
	}
	return w.Flush()
}
