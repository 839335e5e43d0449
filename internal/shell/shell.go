// Package shell implements dueline's interactive line-oriented interface.
// Each input line is parsed into an argument vector and run against a
// freshly built urfave/cli command tree.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/dueline/internal/core/history"
	"github.com/colonyops/dueline/internal/core/logging"
	"github.com/colonyops/dueline/internal/core/styles"
	"github.com/colonyops/dueline/internal/dueline"
	"github.com/colonyops/dueline/internal/printer"
)

// ErrLoginRequired is returned for commands that need an active session.
var ErrLoginRequired = errors.New("please login first")

// Shell reads commands from an input stream and writes results to an output
// stream. It is not safe for concurrent use.
type Shell struct {
	app      *dueline.App
	in       io.Reader
	out      io.Writer
	printer  *printer.Printer
	prompter Prompter
	markdown MarkdownRenderer
	history  *history.Log
	log      zerolog.Logger

	prompt  string
	showTTY bool
	done    bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithPrompter sets how passwords are collected when not given as flags.
func WithPrompter(p Prompter) Option {
	return func(s *Shell) { s.prompter = p }
}

// WithMarkdown sets the renderer used by the help command.
func WithMarkdown(r MarkdownRenderer) Option {
	return func(s *Shell) { s.markdown = r }
}

// WithTerminal enables styled prompt output.
func WithTerminal(enabled bool) Option {
	return func(s *Shell) { s.showTTY = enabled }
}

const historyLimit = 500

// New creates a shell bound to app.
func New(app *dueline.App, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		app:      app,
		in:       in,
		out:      out,
		printer:  printer.New(out),
		prompter: NoPrompter{},
		markdown: PlainMarkdown{},
		history:  history.NewLog(historyLimit),
		log:      logging.WithContextFields(logging.Component("shell")),
		prompt:   app.Config.Prompt,
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.showTTY {
		s.printer.Plain()
	}
	return s
}

// Run reads lines until exit or end of input. Command errors are printed and
// do not stop the loop.
func (s *Shell) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)

	s.printer.Printf("%s dueline. Type 'help' for commands.", styles.IconCheckList)

	for !s.done {
		if err := ctx.Err(); err != nil {
			return nil
		}

		s.writePrompt()
		if !scanner.Scan() {
			if s.showTTY {
				s.printer.Printf("")
			}
			break
		}

		if err := s.Exec(ctx, scanner.Text()); err != nil {
			s.printer.Errorf("%v", err)
		}
		s.flushNotifications()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func (s *Shell) writePrompt() {
	prompt := s.prompt
	if s.showTTY {
		prompt = styles.PromptStyle.Render(prompt)
	}
	_, _ = io.WriteString(s.out, prompt)
}

func (s *Shell) flushNotifications() {
	for _, n := range s.app.Notifications.Drain() {
		s.printer.Notification(n)
	}
}

// Exec runs a single input line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	parsed, err := ParseLine(line)
	if err != nil {
		return err
	}
	if parsed.Name == "" {
		return nil
	}

	ctx = printer.NewContext(s.app.Users.SessionContext(ctx), s.printer)

	s.log.Debug().Ctx(ctx).Str("command", parsed.Name).Strs("args", parsed.Args).Msg("exec")

	root := s.commandTree()
	err = root.Run(ctx, append([]string{"dueline"}, parsed.Argv()...))
	if parsed.Name != "history" {
		s.history.Record(parsed.Name, parsed.Args, err, s.app.Todos.Now())
	}
	return err
}

// Done reports whether the exit command ran.
func (s *Shell) Done() bool {
	return s.done
}

func (s *Shell) commandTree() *cli.Command {
	root := &cli.Command{
		Name:           "dueline",
		HideHelp:       true,
		HideVersion:    true,
		Writer:         s.out,
		ErrWriter:      s.out,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(_ context.Context, c *cli.Command) error {
			return fmt.Errorf("unknown command %q; type 'help' for a list", c.Args().First())
		},
	}

	root.Commands = append(root.Commands, s.userCommands()...)
	root.Commands = append(root.Commands, s.todoCommands()...)
	root.Commands = append(root.Commands,
		s.helpCommand(),
		s.historyCommand(),
		&cli.Command{
			Name:    "exit",
			Aliases: []string{"quit"},
			Usage:   "leave the shell",
			Action: func(context.Context, *cli.Command) error {
				s.done = true
				return nil
			},
		},
	)

	for _, cmd := range root.Commands {
		cmd.Writer = s.out
		cmd.ErrWriter = s.out
	}
	return root
}

// requireLogin gates commands behind an active session.
func (s *Shell) requireLogin(ctx context.Context, _ *cli.Command) (context.Context, error) {
	if !s.app.Users.IsAuthenticated() {
		return ctx, ErrLoginRequired
	}
	return ctx, nil
}
