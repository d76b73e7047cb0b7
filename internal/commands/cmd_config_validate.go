package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hay-kot/chance/internal/core/config"
	"github.com/hay-kot/chance/internal/printer"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate configuration file",
				UsageText: "chance config validate [options]",
				Description: `Validates the configuration file, checking rule definitions, named format
templates, and lists. Templates that use a specifier with no matching rule are
reported as warnings.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type reportError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationReport is the result of checking one config file.
type validationReport struct {
	Path      string                     `json:"path"`
	Valid     bool                       `json:"valid"`
	Rules     int                        `json:"rules"`
	Templates int                        `json:"templates"`
	Lists     int                        `json:"lists"`
	Errors    []reportError              `json:"errors,omitempty"`
	Warnings  []config.ValidationWarning `json:"warnings,omitempty"`
}

func newValidationReport(cfg *config.Config, path string) validationReport {
	err := cfg.ValidateDeep(path)

	report := validationReport{
		Path:      path,
		Valid:     err == nil,
		Rules:     len(cfg.Rules),
		Templates: len(cfg.Templates),
		Lists:     len(cfg.Lists),
		Warnings:  cfg.Warnings(),
	}

	if err != nil {
		var fieldErrs criterio.FieldErrors
		if !errors.As(err, &fieldErrs) {
			fieldErrs = criterio.FieldErrors{{Err: err}}
		}
		for _, fe := range fieldErrs {
			report.Errors = append(report.Errors, reportError{Field: fe.Field, Message: fe.Err.Error()})
		}
	}

	return report
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.flags.Config == nil {
		return fmt.Errorf("configuration not loaded")
	}

	report := newValidationReport(cmd.flags.Config, cmd.flags.ConfigPath)

	switch cmd.format {
	case "json":
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "text":
		return printReport(printer.Ctx(ctx), report)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", cmd.format)
	}
}

func printReport(p *printer.Printer, report validationReport) error {
	p.Section("Config")
	p.Printf("  %s", report.Path)
	p.Printf("  %d rule(s), %d template(s), %d list(s)", report.Rules, report.Templates, report.Lists)
	p.Printf("")

	if len(report.Errors) > 0 {
		p.Section("Errors")
		for _, e := range report.Errors {
			label := e.Field
			if label == "" {
				label = "validation"
			}
			p.FailItem(label, e.Message)
		}
		p.Printf("")
	}

	if len(report.Warnings) > 0 {
		p.Section("Warnings")
		for _, w := range report.Warnings {
			label := w.Category
			if w.Item != "" {
				label += " (" + w.Item + ")"
			}
			p.WarnItem(label, w.Message)
		}
		p.Printf("")
	}

	if report.Valid {
		p.Successf("Configuration is valid (%d warning(s))", len(report.Warnings))
		return nil
	}

	p.Errorf("%d error(s), %d warning(s)", len(report.Errors), len(report.Warnings))
	return cli.Exit("", 1)
}
