package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/toast/internal/core/styles"
	"github.com/colonyops/toast/internal/reports"
	"github.com/colonyops/toast/internal/tui/jsoncolor"
	"github.com/colonyops/toast/pkg/iojson"
)

type ReportsCmd struct {
	flags *Flags

	// list flags
	format string

	// generate flags
	req     reports.GenerateRequest
	request iojson.FileReader[reports.GenerateRequest]
	useFile bool

	// filters flags
	reportType string
}

// NewReportsCmd creates a new reports command.
func NewReportsCmd(flags *Flags) *ReportsCmd {
	return &ReportsCmd{flags: flags}
}

// Register adds the reports command to the application.
func (cmd *ReportsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "reports",
		Usage: "Query the centralized report dashboard API",
		Description: `Thin wrappers over the reports API. The base URL and token come from the
reports section of the config file.`,
		Commands: []*cli.Command{
			cmd.listCmd(),
			cmd.generateCmd(),
			cmd.filtersCmd(),
		},
	})

	return app
}

func (cmd *ReportsCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List reports the current role may generate",
		UsageText: "toast reports list [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       formatText,
				Destination: &cmd.format,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *ReportsCmd) generateCmd() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate a report",
		UsageText: "toast reports generate --type inspection --time-filter quarterly --quarter 1 --year 2025",
		Description: `Builds the request from flags, or reads a full JSON request with --from-file
(use -f to name the file, stdin otherwise).`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Usage: "report type", Destination: &cmd.req.ReportType},
			&cli.StringFlag{Name: "time-filter", Usage: "quarterly, monthly, yearly or custom", Destination: &cmd.req.TimeFilter},
			&cli.IntFlag{Name: "quarter", Usage: "quarter (1-4)", Destination: &cmd.req.Quarter},
			&cli.IntFlag{Name: "month", Usage: "month (1-12)", Destination: &cmd.req.Month},
			&cli.IntFlag{Name: "year", Usage: "year", Destination: &cmd.req.Year},
			&cli.StringFlag{Name: "date-from", Usage: "custom range start (YYYY-MM-DD)", Destination: &cmd.req.DateFrom},
			&cli.StringFlag{Name: "date-to", Usage: "custom range end (YYYY-MM-DD)", Destination: &cmd.req.DateTo},
			&cli.BoolFlag{Name: "from-file", Usage: "read the JSON request body instead of flags", Destination: &cmd.useFile},
			cmd.request.Flag(),
		},
		Action: cmd.runGenerate,
	}
}

func (cmd *ReportsCmd) filtersCmd() *cli.Command {
	return &cli.Command{
		Name:      "filters",
		Usage:     "Show filter options for a report type",
		UsageText: "toast reports filters --type inspection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "type",
				Usage:       "report type",
				Required:    true,
				Destination: &cmd.reportType,
			},
		},
		Action: cmd.runFilters,
	}
}

func (cmd *ReportsCmd) client() (*reports.Client, error) {
	cfg := cmd.flags.Config.Reports
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("reports.base_url is not configured")
	}
	return reports.New(cfg.BaseURL, reports.WithToken(cfg.Token), reports.WithTimeout(cfg.Timeout))
}

func (cmd *ReportsCmd) runList(ctx context.Context, c *cli.Command) error {
	if err := checkFormat(cmd.format); err != nil {
		return err
	}

	client, err := cmd.client()
	if err != nil {
		return err
	}

	access, err := client.ListAllowed(ctx)
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}

	if cmd.format == formatJSON {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, access)
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Role: %s\n\n", access.Role)
	_, _ = fmt.Fprintln(w, "TYPE\tNAME")
	for _, r := range access.AllowedReports {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", r.ReportType, r.DisplayName)
	}
	return w.Flush()
}

func (cmd *ReportsCmd) runGenerate(ctx context.Context, c *cli.Command) error {
	req := cmd.req
	if cmd.useFile {
		var err error
		if req, err = cmd.request.Read(); err != nil {
			return err
		}
	}

	client, err := cmd.client()
	if err != nil {
		return err
	}

	raw, err := client.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	return cmd.writeRaw(c, raw)
}

func (cmd *ReportsCmd) runFilters(ctx context.Context, c *cli.Command) error {
	client, err := cmd.client()
	if err != nil {
		return err
	}

	raw, err := client.FilterOptions(ctx, cmd.reportType)
	if err != nil {
		return fmt.Errorf("filter options: %w", err)
	}
	return cmd.writeRaw(c, raw)
}

// writeRaw pretty-prints an undecoded payload, with colors when writing to a
// terminal.
func (cmd *ReportsCmd) writeRaw(c *cli.Command, raw json.RawMessage) error {
	w := c.Root().Writer
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		palette, _ := styles.GetPalette(cmd.flags.Config.TUI.Theme)
		_, err := fmt.Fprintln(w, jsoncolor.New(palette).Colorize(raw))
		return err
	}
	return iojson.WriteWith(w, c.Root().ErrWriter, raw)
}
