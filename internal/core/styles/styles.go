// Package styles provides shared lipgloss styles for dueline's terminal output.
package styles

import (
	"sort"

	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style
	PromptStyle        lipgloss.Style
	MutedStyle         lipgloss.Style

	// Message levels.
	SuccessStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	// Todo rendering.
	TableHeaderStyle      lipgloss.Style
	TableCellStyle        lipgloss.Style
	TableBorderStyle      lipgloss.Style
	StatusCompletedStyle  lipgloss.Style
	StatusInProgressStyle lipgloss.Style
	OverdueStyle          lipgloss.Style
	BoardColumnStyle      lipgloss.Style
	BoardTitleStyle       lipgloss.Style

	PriorityHighStyle   lipgloss.Style
	PriorityMediumStyle lipgloss.Style
	PriorityLowStyle    lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	PromptStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	InfoStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Padding(0, 1)
	TableCellStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Padding(0, 1)
	TableBorderStyle = lipgloss.NewStyle().
		Foreground(p.Surface)
	StatusCompletedStyle = lipgloss.NewStyle().Foreground(p.Success)
	StatusInProgressStyle = lipgloss.NewStyle().Foreground(p.Warning)
	OverdueStyle = lipgloss.NewStyle().Foreground(p.Error)

	BoardColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1).
		Width(36)
	BoardTitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		MarginBottom(1)

	PriorityHighStyle = lipgloss.NewStyle().Foreground(p.Error)
	PriorityMediumStyle = lipgloss.NewStyle().Foreground(p.Warning)
	PriorityLowStyle = lipgloss.NewStyle().Foreground(p.Muted)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

// FormTheme returns a huh theme derived from the active palette.
func FormTheme() *huh.Theme {
	p := CurrentPalette
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(p.Primary)
	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p.Secondary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p.Primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(p.Muted)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderForeground(p.Surface)
	t.Blurred.Title = t.Blurred.Title.Foreground(p.Muted).Bold(false)

	return t
}

func colorHexPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	hex := string(c)
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	p := CurrentPalette

	fg := colorHexPtr(p.Foreground)
	primary := colorHexPtr(p.Primary)
	secondary := colorHexPtr(p.Secondary)
	muted := colorHexPtr(p.Muted)
	surface := colorHexPtr(p.Surface)

	cfg.Document.Color = fg

	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = surface
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	cfg.Table.Color = fg

	return cfg
}
