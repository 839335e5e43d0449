package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/dueline/internal/core/todo"
	"github.com/colonyops/dueline/internal/dueline"
	"github.com/colonyops/dueline/internal/printer"
	"github.com/colonyops/dueline/pkg/iojson"
)

var errMissingArg = errors.New("missing argument")

func jsonFlag(dst *bool) *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "json",
		Usage:       "print JSON instead of a table",
		Destination: dst,
	}
}

// joinedArgs returns all positional args as one space-separated value, so
// unquoted titles still work.
func joinedArgs(c *cli.Command, what string) (string, error) {
	v := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if v == "" {
		return "", fmt.Errorf("%w: %s", errMissingArg, what)
	}
	return v, nil
}

func (s *Shell) todoCommands() []*cli.Command {
	return []*cli.Command{
		s.addCommand(),
		s.updateCommand(),
		{
			Name:      "delete",
			Aliases:   []string{"rm"},
			Usage:     "delete a todo",
			ArgsUsage: "<id|title>",
			Before:    s.requireLogin,
			Action: func(ctx context.Context, c *cli.Command) error {
				ref, err := joinedArgs(c, "id or title")
				if err != nil {
					return err
				}
				item, err := s.app.Todos.Delete(ctx, ref)
				if err != nil {
					return err
				}
				printer.Ctx(ctx).Success("Deleted", item.Title)
				return nil
			},
		},
		{
			Name:      "search",
			Usage:     "find the first todo with an exact title",
			ArgsUsage: "<title>",
			Before:    s.requireLogin,
			Action: func(ctx context.Context, c *cli.Command) error {
				title, err := joinedArgs(c, "title")
				if err != nil {
					return err
				}
				idx, item, err := s.app.Todos.Search(ctx, title)
				if err != nil {
					return fmt.Errorf("%w: %s", err, title)
				}
				printer.Ctx(ctx).Infof("#%d %s [%s] %s", idx+1, item.Title, item.ID, item.Status)
				return nil
			},
		},
		s.findCommand(),
		{
			Name:      "complete",
			Aliases:   []string{"done"},
			Usage:     "mark a todo completed",
			ArgsUsage: "<id|title>",
			Before:    s.requireLogin,
			Action: func(ctx context.Context, c *cli.Command) error {
				ref, err := joinedArgs(c, "id or title")
				if err != nil {
					return err
				}
				item, err := s.app.Todos.Complete(ctx, ref)
				if err != nil {
					return err
				}
				printer.Ctx(ctx).Success("Completed", item.Title)
				return nil
			},
		},
		{
			Name:      "due",
			Usage:     "set the due date of a todo and mark it completed",
			ArgsUsage: "<id|title> <YYYY-MM-DD>",
			Before:    s.requireLogin,
			Action: func(ctx context.Context, c *cli.Command) error {
				if c.Args().Len() < 2 {
					return fmt.Errorf("%w: usage: due <id|title> <YYYY-MM-DD>", errMissingArg)
				}
				args := c.Args().Slice()
				date := args[len(args)-1]
				ref := strings.Join(args[:len(args)-1], " ")

				item, err := s.app.Todos.SetDueDate(ctx, ref, date)
				if err != nil {
					return err
				}
				printer.Ctx(ctx).Success("Due date set", item.Title+" "+item.FormattedDueDate())
				return nil
			},
		},
		s.rescheduleCommand(),
		s.listCommand(),
		s.boardCommand(),
		{
			Name:   "sweep",
			Usage:  "complete every overdue todo now",
			Before: s.requireLogin,
			Action: func(ctx context.Context, _ *cli.Command) error {
				done := s.app.Todos.Sweep(ctx)
				p := printer.Ctx(ctx)
				if len(done) == 0 {
					p.Infof("Nothing overdue")
					return nil
				}
				for _, it := range done {
					p.Success("Completed", it.Title)
				}
				return nil
			},
		},
	}
}

func (s *Shell) addCommand() *cli.Command {
	var in dueline.AddInput
	return &cli.Command{
		Name:      "add",
		Usage:     "add a todo",
		ArgsUsage: "<title>",
		Before:    s.requireLogin,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "low, medium or high", Destination: &in.Priority},
			&cli.StringFlag{Name: "due", Aliases: []string{"d"}, Usage: "due date (YYYY-MM-DD)", Destination: &in.Due},
			&cli.StringFlag{Name: "alert", Usage: "alert date", Destination: &in.Alert},
			&cli.StringFlag{Name: "repeat", Usage: "repetition rule", Destination: &in.Repeat},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			title, err := joinedArgs(c, "title")
			if err != nil {
				return err
			}
			in.Title = title

			item, err := s.app.Todos.Add(ctx, in)
			if err != nil {
				return err
			}
			printer.Ctx(ctx).Success("Added", fmt.Sprintf("%s [%s]", item.Title, item.ID))
			return nil
		},
	}
}

func (s *Shell) updateCommand() *cli.Command {
	var title, priority, due, alert, repeat string
	return &cli.Command{
		Name:      "update",
		Aliases:   []string{"edit"},
		Usage:     "replace a todo, keeping unspecified fields",
		ArgsUsage: "<id|title>",
		Before:    s.requireLogin,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "new title", Destination: &title},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "low, medium or high", Destination: &priority},
			&cli.StringFlag{Name: "due", Aliases: []string{"d"}, Usage: "due date (YYYY-MM-DD, empty clears)", Destination: &due},
			&cli.StringFlag{Name: "alert", Usage: "alert date", Destination: &alert},
			&cli.StringFlag{Name: "repeat", Usage: "repetition rule", Destination: &repeat},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			ref, err := joinedArgs(c, "id or title")
			if err != nil {
				return err
			}

			var in dueline.UpdateInput
			if c.IsSet("title") {
				in.Title = &title
			}
			if c.IsSet("priority") {
				in.Priority = &priority
			}
			if c.IsSet("due") {
				in.Due = &due
			}
			if c.IsSet("alert") {
				in.Alert = &alert
			}
			if c.IsSet("repeat") {
				in.Repeat = &repeat
			}

			item, err := s.app.Todos.Update(ctx, ref, in)
			if err != nil {
				return err
			}
			printer.Ctx(ctx).Success("Updated", fmt.Sprintf("%s [%s]", item.Title, item.ID))
			return nil
		},
	}
}

func (s *Shell) rescheduleCommand() *cli.Command {
	var clearDue bool
	return &cli.Command{
		Name:      "reschedule",
		Usage:     "move the due date of a todo without changing its status",
		ArgsUsage: "<id|title> <YYYY-MM-DD>",
		Before:    s.requireLogin,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "clear", Usage: "remove the due date", Destination: &clearDue},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			args := c.Args().Slice()
			var ref, date string
			switch {
			case clearDue && len(args) > 0:
				ref = strings.Join(args, " ")
			case !clearDue && len(args) >= 2:
				ref, date = strings.Join(args[:len(args)-1], " "), args[len(args)-1]
			default:
				return fmt.Errorf("%w: usage: reschedule <id|title> <YYYY-MM-DD> or reschedule --clear <id|title>", errMissingArg)
			}

			item, err := s.app.Todos.Reschedule(ctx, ref, date)
			if err != nil {
				return err
			}

			p := printer.Ctx(ctx)
			if !item.HasDueDate() {
				p.Success("Cleared due date", item.Title)
				return nil
			}
			p.Success("Rescheduled", item.Title+" "+item.FormattedDueDate())
			return nil
		},
	}
}

func (s *Shell) findCommand() *cli.Command {
	var asJSON bool
	return &cli.Command{
		Name:      "find",
		Usage:     "list todos whose title matches a glob such as 'buy *'",
		ArgsUsage: "<pattern>",
		Before:    s.requireLogin,
		Flags:     []cli.Flag{jsonFlag(&asJSON)},
		Action: func(ctx context.Context, c *cli.Command) error {
			pattern, err := joinedArgs(c, "pattern")
			if err != nil {
				return err
			}
			items, err := s.app.Todos.Find(ctx, pattern)
			if err != nil {
				return err
			}
			return s.writeTodos(c, items, asJSON)
		},
	}
}

func (s *Shell) listCommand() *cli.Command {
	var (
		asJSON bool
		match  string
	)
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "list todos in insertion order",
		ArgsUsage: "[all|completed|in-progress]",
		Before:    s.requireLogin,
		Flags: []cli.Flag{
			jsonFlag(&asJSON),
			&cli.StringFlag{Name: "match", Aliases: []string{"m"}, Usage: "only titles matching this glob", Destination: &match},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			filter := dueline.ListFilter{Pattern: match}
			switch view := c.Args().First(); view {
			case "", "all":
			case "completed", "done":
				filter.Status = todo.StatusCompleted
			case "in-progress", "open", "pending":
				filter.Status = todo.StatusInProgress
			default:
				return fmt.Errorf("unknown view %q (want all, completed or in-progress)", view)
			}

			items, err := s.app.Todos.List(ctx, filter)
			if err != nil {
				return err
			}
			return s.writeTodos(c, items, asJSON)
		},
	}
}

func (s *Shell) boardCommand() *cli.Command {
	var asJSON bool
	return &cli.Command{
		Name:   "board",
		Usage:  "show todos grouped by status",
		Before: s.requireLogin,
		Flags:  []cli.Flag{jsonFlag(&asJSON)},
		Action: func(ctx context.Context, c *cli.Command) error {
			board := s.app.Todos.Board(ctx)
			if asJSON {
				return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, board)
			}
			renderBoard(c.Root().Writer, board)
			return nil
		},
	}
}

func (s *Shell) writeTodos(c *cli.Command, items []todo.Item, asJSON bool) error {
	if asJSON {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, items)
	}
	renderTodos(c.Root().Writer, items, s.app.Todos.Now())
	return nil
}
