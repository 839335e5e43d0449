package shell

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"

	"github.com/colonyops/dueline/internal/core/styles"
)

// ErrPasswordRequired is returned when a password is needed but cannot be
// prompted for.
var ErrPasswordRequired = errors.New("password required: pass --password")

// Prompter collects secrets from the user.
type Prompter interface {
	Password(title string) (string, error)
}

// NoPrompter never prompts. Used when stdin is not a terminal.
type NoPrompter struct{}

func (NoPrompter) Password(string) (string, error) {
	return "", ErrPasswordRequired
}

// HuhPrompter asks for passwords with a masked huh input.
type HuhPrompter struct{}

func (HuhPrompter) Password(title string) (string, error) {
	var password string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password cannot be empty")
					}
					return nil
				}).
				Value(&password),
		),
	).WithTheme(styles.FormTheme()).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errors.New("cancelled")
		}
		return "", fmt.Errorf("password prompt: %w", err)
	}
	return password, nil
}

// MarkdownRenderer renders help text.
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}

// PlainMarkdown returns markdown unchanged.
type PlainMarkdown struct{}

func (PlainMarkdown) Render(md string) (string, error) {
	return md, nil
}

// GlamourMarkdown renders markdown for a terminal using the active theme.
type GlamourMarkdown struct {
	Width int
}

func (g GlamourMarkdown) Render(md string) (string, error) {
	width := g.Width
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	return r.Render(md)
}
