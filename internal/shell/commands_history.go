package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/dueline/internal/core/history"
	"github.com/colonyops/dueline/internal/core/styles"
	"github.com/colonyops/dueline/pkg/iojson"
)

func (s *Shell) historyCommand() *cli.Command {
	var asJSON bool
	return &cli.Command{
		Name:      "history",
		Usage:     "show recently run commands",
		ArgsUsage: "[n]",
		Flags:     []cli.Flag{jsonFlag(&asJSON)},
		Action: func(_ context.Context, c *cli.Command) error {
			n := 0
			if c.Args().Len() > 0 {
				v, err := strconv.Atoi(c.Args().First())
				if err != nil || v < 1 {
					return fmt.Errorf("history: %q is not a positive count", c.Args().First())
				}
				n = v
			}

			entries := s.history.Recent(n)
			if asJSON {
				return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, entries)
			}
			renderHistory(c.Root().Writer, entries)
			return nil
		},
	}
}

func renderHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, styles.MutedStyle.Render("no history"))
		return
	}

	_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render(fmt.Sprintf("History (%d)", len(entries))))
	_, _ = fmt.Fprintln(w, styles.DividerStyle.Render(strings.Repeat("─", 40)))
	for _, e := range entries {
		mark := " "
		if e.Failed() {
			mark = styles.ErrorStyle.Render("x")
		}
		_, _ = fmt.Fprintf(w, "%4d %s %s  %s\n",
			e.ID, mark, styles.MutedStyle.Render(e.Timestamp.Format("15:04:05")), styles.CommandStyle.Render(e.Line()))
	}
}
