package shell

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/dueline/internal/core/user"
	"github.com/colonyops/dueline/internal/dueline"
	"github.com/colonyops/dueline/internal/printer"
	"github.com/colonyops/dueline/pkg/iojson"
)

func (s *Shell) userCommands() []*cli.Command {
	return []*cli.Command{
		s.registerCommand(),
		s.loginCommand(),
		{
			Name:   "logout",
			Usage:  "end the current session",
			Before: s.requireLogin,
			Action: func(ctx context.Context, _ *cli.Command) error {
				session, err := s.app.Users.Logout(ctx)
				if err != nil {
					return err
				}
				printer.Ctx(ctx).Success("Logged out", session.UserID)
				return nil
			},
		},
		{
			Name:   "whoami",
			Usage:  "show the logged-in user",
			Before: s.requireLogin,
			Action: func(ctx context.Context, _ *cli.Command) error {
				session, u, _ := s.app.Users.Current()
				printer.Ctx(ctx).Printf("%s (since %s)", u, session.StartedAt.Format("2006-01-02 15:04"))
				return nil
			},
		},
		s.usersCommand(),
		s.passwdCommand(),
		s.profileCommand(),
		{
			Name:      "unregister",
			Usage:     "remove a user (yourself unless you are the admin)",
			ArgsUsage: "[id]",
			Before:    s.requireLogin,
			Action: func(ctx context.Context, c *cli.Command) error {
				id := c.Args().First()
				if id == "" {
					_, u, _ := s.app.Users.Current()
					id = u.ID
				}
				if err := s.app.Users.Unregister(ctx, id); err != nil {
					return err
				}
				printer.Ctx(ctx).Success("Unregistered", id)
				return nil
			},
		},
	}
}

// password returns the flag value or prompts for one.
func (s *Shell) password(flagValue, title string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return s.prompter.Password(title)
}

func (s *Shell) registerCommand() *cli.Command {
	var in dueline.RegisterInput
	return &cli.Command{
		Name:      "register",
		Usage:     "create an account",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "display name (defaults to the id)", Destination: &in.Name},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "email address", Destination: &in.Email},
			&cli.StringFlag{Name: "password", Usage: "password (prompted when omitted)", Destination: &in.Password},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			in.ID = c.Args().First()
			if in.ID == "" {
				return fmt.Errorf("%w: id", errMissingArg)
			}

			pw, err := s.password(in.Password, "Password for "+in.ID)
			if err != nil {
				return err
			}
			in.Password = pw

			u, err := s.app.Users.Register(ctx, in)
			if err != nil {
				return err
			}
			printer.Ctx(ctx).Success("Registered", u.ID)
			return nil
		},
	}
}

func (s *Shell) loginCommand() *cli.Command {
	var password string
	return &cli.Command{
		Name:      "login",
		Usage:     "start a session",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "password", Usage: "password (prompted when omitted)", Destination: &password},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			id := c.Args().First()
			if id == "" {
				return fmt.Errorf("%w: id", errMissingArg)
			}
			if s.app.Users.IsAuthenticated() {
				return user.ErrAlreadyLoggedIn
			}

			pw, err := s.password(password, "Password")
			if err != nil {
				return err
			}

			if _, _, err := s.app.Users.Login(ctx, id, pw); err != nil {
				return err
			}
			printer.Ctx(ctx).Success("Logged in", id)
			return nil
		},
	}
}

func (s *Shell) usersCommand() *cli.Command {
	var asJSON bool
	return &cli.Command{
		Name:   "users",
		Usage:  "list users (all of them for the admin)",
		Before: s.requireLogin,
		Flags:  []cli.Flag{jsonFlag(&asJSON)},
		Action: func(ctx context.Context, c *cli.Command) error {
			users, err := s.app.Users.Users(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, users)
			}
			renderUsers(c.Root().Writer, users)
			return nil
		},
	}
}

func (s *Shell) passwdCommand() *cli.Command {
	var password string
	return &cli.Command{
		Name:   "passwd",
		Usage:  "change your password",
		Before: s.requireLogin,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "password", Usage: "new password (prompted when omitted)", Destination: &password},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			pw, err := s.password(password, "New password")
			if err != nil {
				return err
			}
			if _, err := s.app.Users.UpdateProfile(ctx, dueline.ProfileInput{Password: &pw}); err != nil {
				return err
			}
			printer.Ctx(ctx).Successf("Password changed")
			return nil
		},
	}
}

func (s *Shell) profileCommand() *cli.Command {
	var id, name, email string
	return &cli.Command{
		Name:   "profile",
		Usage:  "change your id, name or email",
		Before: s.requireLogin,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "new user id", Destination: &id},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "display name", Destination: &name},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "email address", Destination: &email},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var in dueline.ProfileInput
			if c.IsSet("id") {
				in.ID = &id
			}
			if c.IsSet("name") {
				in.Name = &name
			}
			if c.IsSet("email") {
				in.Email = &email
			}
			if in == (dueline.ProfileInput{}) {
				return fmt.Errorf("%w: set at least one of --id, --name, --email", errMissingArg)
			}

			u, err := s.app.Users.UpdateProfile(ctx, in)
			if err != nil {
				return err
			}
			printer.Ctx(ctx).Success("Profile updated", u.String())
			return nil
		},
	}
}
