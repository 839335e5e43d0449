// Package printer writes styled, line-oriented status output for commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/dueline/internal/core/notify"
	"github.com/colonyops/dueline/internal/core/styles"
)

type ctxKey struct{}

// Printer writes status messages to an output stream.
type Printer struct {
	out   io.Writer
	plain bool
}

// New creates a Printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Plain disables styling. Used when the output is not a terminal.
func (p *Printer) Plain() *Printer {
	p.plain = true
	return p
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or a stderr printer if none is set.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

// Writer returns the underlying output stream.
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if p.plain {
		return s
	}
	return style.Render(s)
}

func (p *Printer) line(style lipgloss.Style, icon, msg string) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", p.render(style, icon), msg)
}

// Success prints a success message with an optional muted detail.
func (p *Printer) Success(msg, detail string) {
	if detail != "" {
		msg += " " + p.render(styles.MutedStyle, detail)
	}
	p.line(styles.SuccessStyle, styles.IconDone, msg)
}

// Successf prints a formatted success message.
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.SuccessStyle, styles.IconDone, fmt.Sprintf(format, args...))
}

// Infof prints a formatted informational message.
func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.InfoStyle, styles.IconBell, fmt.Sprintf(format, args...))
}

// Warnf prints a formatted warning.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.WarningStyle, styles.IconOverdue, fmt.Sprintf(format, args...))
}

// WarnItem prints a warning for a labelled item.
func (p *Printer) WarnItem(label, detail string) {
	p.line(styles.WarningStyle, styles.IconOverdue, label+": "+p.render(styles.MutedStyle, detail))
}

// Errorf prints a formatted error.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorStyle, "x", fmt.Sprintf(format, args...))
}

// Printf prints an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Notification prints a queued notification at its level.
func (p *Printer) Notification(n notify.Notification) {
	switch n.Level {
	case notify.LevelError:
		p.Errorf("%s", n.Message)
	case notify.LevelWarning:
		p.Warnf("%s", n.Message)
	default:
		p.Infof("%s", n.Message)
	}
}
