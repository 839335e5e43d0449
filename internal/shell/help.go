package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

const helpIntro = `# dueline

Register and log in before working with todos. Flags go before
arguments, and titles with spaces can be quoted or typed as-is.

`

func (s *Shell) helpCommand() *cli.Command {
	return &cli.Command{
		Name:      "help",
		Aliases:   []string{"?"},
		Usage:     "show commands, or the flags of one command",
		ArgsUsage: "[command]",
		Action: func(ctx context.Context, c *cli.Command) error {
			md := helpMarkdown(c.Root().Commands, c.Args().First())
			out, err := s.markdown.Render(md)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(c.Root().Writer, out)
			return err
		},
	}
}

// helpMarkdown builds the help page. With a command name it documents that
// command's flags; otherwise it lists every command.
func helpMarkdown(cmds []*cli.Command, name string) string {
	var b strings.Builder

	if name != "" {
		for _, cmd := range cmds {
			if cmd.HasName(name) {
				fmt.Fprintf(&b, "## %s %s\n\n%s\n\n", cmd.Name, cmd.ArgsUsage, cmd.Usage)
				for _, f := range cmd.Flags {
					fmt.Fprintf(&b, "- `--%s` %s\n", f.Names()[0], flagUsage(f))
				}
				return b.String()
			}
		}
		fmt.Fprintf(&b, "Unknown command `%s`.\n", name)
		return b.String()
	}

	b.WriteString(helpIntro)
	b.WriteString("## Commands\n\n")
	for _, cmd := range cmds {
		usage := cmd.Name
		if cmd.ArgsUsage != "" {
			usage += " " + cmd.ArgsUsage
		}
		fmt.Fprintf(&b, "- `%s` %s\n", usage, cmd.Usage)
	}
	return b.String()
}

func flagUsage(f cli.Flag) string {
	if df, ok := f.(cli.DocGenerationFlag); ok {
		return df.GetUsage()
	}
	return ""
}
