package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toast/internal/core/config"
)

type ConfigCmd struct {
	flags  *Flags
	format string
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "toast config validate [options]",
				Description: "Loads the configuration file and reports every invalid field.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       formatText,
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
		},
	})

	return app
}

type validationIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// runValidate loads the file itself rather than using Flags.Config, which is
// only populated when the file is already valid.
func (cmd *ConfigCmd) runValidate(ctx context.Context, c *cli.Command) error {
	if err := checkFormat(cmd.format); err != nil {
		return err
	}

	_, err := config.Load(cmd.flags.ConfigPath)
	issues := collectIssues(err)

	if cmd.format == formatJSON {
		out := struct {
			Path   string            `json:"path"`
			Valid  bool              `json:"valid"`
			Errors []validationIssue `json:"errors,omitempty"`
		}{
			Path:   cmd.flags.ConfigPath,
			Valid:  err == nil,
			Errors: issues,
		}

		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(out); encErr != nil {
			return encErr
		}
	} else {
		w := c.Root().Writer
		for _, issue := range issues {
			if issue.Field != "" {
				_, _ = fmt.Fprintf(w, "✖ %s: %s\n", issue.Field, issue.Message)
				continue
			}
			_, _ = fmt.Fprintf(w, "✖ %s\n", issue.Message)
		}
		if err == nil {
			_, _ = fmt.Fprintf(w, "✔ %s is valid\n", cmd.flags.ConfigPath)
		}
	}

	if err != nil {
		return cli.Exit("", 1)
	}
	return nil
}

func collectIssues(err error) []validationIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Message: err.Error()}}
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}
