package commands

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toast/internal/core/styles"
	"github.com/colonyops/toast/internal/tui"
	"github.com/colonyops/toast/pkg/logutils"
)

type DemoCmd struct {
	flags *Flags

	altScreen bool
}

// NewDemoCmd creates a new demo command.
func NewDemoCmd(flags *Flags) *DemoCmd {
	return &DemoCmd{flags: flags}
}

// Register adds the demo command to the application.
func (cmd *DemoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "demo",
		Usage:     "Interactive toast playground",
		UsageText: "toast demo [options]",
		Description: `Opens a terminal playground wired to a live notification queue.

Each key fires one of the notification helpers so duplicate suppression,
debouncing, expiry and dismissal can be observed. Press ? for all keys.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "alt-screen",
				Usage:       "render in the alternate screen buffer",
				Value:       true,
				Destination: &cmd.altScreen,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DemoCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	defer holdLogs(cmd.flags.LogFile, c.Root().ErrWriter)()

	notifier := newNotifier(cfg.Notifications, clockwork.NewRealClock())
	defer notifier.Close()

	palette, _ := styles.GetPalette(cfg.TUI.Theme)

	m := tui.New(notifier, tui.Options{
		MaxToasts: cfg.TUI.MaxToasts,
		Width:     cfg.TUI.Width,
		Theme:     styles.NewTheme(palette),
	})
	defer m.Close()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cmd.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("run demo: %w", err)
	}
	return nil
}

// holdLogs buffers log output while the program owns the terminal. It only
// applies with an empty --log-file, where the logger writes to stderr and the
// program would draw over it. The returned func restores the logger and
// flushes the held lines to errOut.
func holdLogs(logFile string, errOut io.Writer) func() {
	if logFile != "" {
		return func() {}
	}

	held := &logutils.Deferred{}
	prev := log.Logger
	log.Logger = log.Logger.Output(zerolog.ConsoleWriter{Out: held, NoColor: true})
	return func() {
		log.Logger = prev
		_ = held.Flush(errOut)
	}
}
