package commands

import (
	"context"
	"errors"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/dueline/internal/core/config"
	"github.com/colonyops/dueline/internal/printer"
	"github.com/colonyops/dueline/pkg/iojson"
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
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "dueline config validate [options]",
				Description: "Validates the configuration file, checking the theme, dates and numeric limits.",
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

// ValidationError is a single failed field check.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationReport struct {
	Valid    bool                       `json:"valid"`
	Errors   []ValidationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) report() (validationReport, error) {
	cfg := cmd.flags.Config
	report := validationReport{Warnings: cfg.Warnings()}

	err := cfg.ValidateDeep(cmd.flags.ConfigPath)
	if err == nil {
		report.Valid = true
		return report, nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return report, err
	}
	for _, fe := range fieldErrs {
		report.Errors = append(report.Errors, ValidationError{Field: fe.Field, Message: fe.Err.Error()})
	}
	return report, nil
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	report, err := cmd.report()
	if err != nil {
		return err
	}

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, report); err != nil {
			return err
		}
		if !report.Valid {
			return cli.Exit("", 1)
		}
		return nil
	}

	return cmd.outputText(printer.Ctx(ctx), report)
}

func (cmd *ConfigValidateCmd) outputText(p *printer.Printer, report validationReport) error {
	for _, warn := range report.Warnings {
		p.Warnf("%s: %s", warn.Category, warn.Message)
		if warn.Item != "" {
			p.Printf("  Item: %s", warn.Item)
		}
	}

	for _, e := range report.Errors {
		p.Errorf("%s: %s", e.Field, e.Message)
	}

	p.Printf("")
	if report.Valid {
		p.Successf("Configuration is valid")
		return nil
	}

	p.Errorf("%d error(s) found", len(report.Errors))
	return cli.Exit("", 1)
}
