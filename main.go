package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/dueline/internal/commands"
	"github.com/colonyops/dueline/internal/core/config"
	"github.com/colonyops/dueline/internal/core/eventbus"
	"github.com/colonyops/dueline/internal/core/styles"
	"github.com/colonyops/dueline/internal/dueline"
	"github.com/colonyops/dueline/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser  func()
		busCancel  context.CancelFunc
		duelineApp = &dueline.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "dueline",
		Usage:     "Track todos with due dates from an interactive shell",
		UsageText: "dueline [global options] [command [command options]]",
		Description: `Dueline keeps an in-memory todo list for a logged-in user. Items whose
due date has passed are completed automatically.

Run 'dueline' with no arguments to open the interactive shell.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic, disabled)",
				Sources:     cli.EnvVars("DUELINE_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file, or - for stderr (defaults to the user state directory)",
				Sources:     cli.EnvVars("DUELINE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("DUELINE_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.ResolveLogFile())
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Read(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			if err := cfg.Validate(); err != nil {
				// config validate still runs and reports the details.
				flags.ConfigErr = fmt.Errorf("invalid config: %w", err)
				return ctx, nil
			}

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			bus := eventbus.New(cfg.EventBuffer)
			if logger.GetLevel() <= zerolog.DebugLevel {
				eventbus.RegisterDebugLogger(bus, log.With().Str("component", "eventbus").Logger())
			}

			busCtx, cancel := context.WithCancel(context.Background())
			busCancel = cancel
			go bus.Start(busCtx)

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*duelineApp = *dueline.NewApp(cfg, bus, log.With().Str("component", "dueline").Logger())

			log.Debug().Str("config", flags.ConfigPath).Str("version", version).Msg("dueline started")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if busCancel != nil {
				busCancel()
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	shellCmd := commands.NewShellCmd(flags, duelineApp)

	app = shellCmd.Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Register shell flags on root command
	app.Flags = append(app.Flags, shellCmd.Flags()...)

	// Set the shell as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'dueline --help' for usage", c.Args().First())
		}
		return shellCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
