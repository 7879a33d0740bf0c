package commands

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toast/internal/core/logging"
	"github.com/colonyops/toast/internal/pipe"
	"github.com/colonyops/toast/pkg/iojson"
)

type PipeCmd struct {
	flags *Flags

	input  iojson.FileReader[pipe.Command]
	noWait bool
}

// NewPipeCmd creates a new pipe command.
func NewPipeCmd(flags *Flags) *PipeCmd {
	return &PipeCmd{flags: flags}
}

// Register adds the pipe command to the application.
func (cmd *PipeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "pipe",
		Usage:     "Headless renderer reading JSON-lines commands",
		UsageText: "toast pipe [options] < commands.jsonl",
		Description: `Reads one JSON command per line and writes every queue broadcast to stdout
as a JSON line of the form {"seq":N,"notifications":[...]}.

Commands:
  {"type":"success","message":"Saved"}                   add (op defaults to "add")
  {"op":"debounce","type":"error","message":"x","window_ms":2000}
  {"op":"remove","id":3}
  {"op":"clear"}

Optional fields for add/debounce: title, duration_ms, persistent, actions.
Invalid lines are reported on stderr and skipped.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.BoolFlag{
				Name:        "no-wait",
				Usage:       "exit at end of input instead of waiting for toasts to expire",
				Destination: &cmd.noWait,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PipeCmd) run(ctx context.Context, c *cli.Command) error {
	in, err := cmd.input.Open()
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	notifier := newNotifier(cmd.flags.Config.Notifications, clockwork.NewRealClock())
	defer notifier.Close()

	ctx = logging.WithSource(ctx, cmd.input.Source())

	runner := pipe.NewRunner(notifier, c.Root().Writer, c.Root().ErrWriter)
	if err := runner.Run(ctx, in, !cmd.noWait); err != nil {
		return fmt.Errorf("pipe: %w", err)
	}
	return nil
}
