package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/dueline/internal/dueline"
	"github.com/colonyops/dueline/internal/printer"
	"github.com/colonyops/dueline/internal/shell"
	"github.com/colonyops/dueline/pkg/iojson"
)

type ShellCmd struct {
	flags *Flags
	app   *dueline.App
	seed  iojson.FileReader[[]dueline.SeedItem]
}

// NewShellCmd creates a new shell command
func NewShellCmd(flags *Flags, app *dueline.App) *ShellCmd {
	return &ShellCmd{
		flags: flags,
		app:   app,
		seed: iojson.FileReader[[]dueline.SeedItem]{
			Name:  "seed",
			Usage: "JSON file of todos to add before the first prompt",
		},
	}
}

// Flags returns the shell flags for registration on the root command.
func (cmd *ShellCmd) Flags() []cli.Flag {
	return []cli.Flag{cmd.seed.Flag()}
}

// Register adds the shell command to the application.
func (cmd *ShellCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "shell",
		Usage: "Start the interactive todo shell (default)",
		Description: `Reads commands line by line. Type 'help' inside the shell for the
command list. Input may be piped for scripted sessions.`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})
	return app
}

// Run starts the shell. Exported for use as default command.
func (cmd *ShellCmd) Run(ctx context.Context, c *cli.Command) error {
	if cmd.flags.ConfigErr != nil {
		return fmt.Errorf("%w (run 'dueline config validate' for details)", cmd.flags.ConfigErr)
	}

	out := c.Root().Writer
	tty := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	p := printer.New(out)
	if !tty {
		p.Plain()
	}
	ctx = printer.NewContext(ctx, p)

	if cmd.seed.IsSet() {
		seeds, err := cmd.seed.Read()
		if err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
		n, err := cmd.app.Todos.Import(ctx, seeds)
		if err != nil {
			return fmt.Errorf("seed todos: %w", err)
		}
		p.Successf("Seeded %d todo(s)", n)
	}

	opts := []shell.Option{shell.WithTerminal(tty)}
	if tty {
		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			width = 80
		}
		opts = append(opts,
			shell.WithPrompter(shell.HuhPrompter{}),
			shell.WithMarkdown(shell.GlamourMarkdown{Width: width}),
		)
	}

	return shell.New(cmd.app, os.Stdin, out, opts...).Run(ctx)
}
