// Package styles provides shared lipgloss styles for the toast renderers.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/toast/internal/core/notify"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Accent     lipgloss.Color
	Highlight  lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
		Accent:     lipgloss.Color("#bb9af7"),
		Highlight:  lipgloss.Color("#7dcfff"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
		Accent:     lipgloss.Color("#d3869b"),
		Highlight:  lipgloss.Color("#8ec07c"),
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

// Icons per notification type.
var icons = map[notify.Type]string{
	notify.TypeSuccess:        "✔",
	notify.TypeError:          "✖",
	notify.TypeWarning:        "▲",
	notify.TypeInfo:           "ℹ",
	notify.TypePasswordChange: "✔",
	notify.TypeLogin:          "◉",
	notify.TypeSystem:         "ℹ",
}

// Toast is the rendering recipe for one notification type.
type Toast struct {
	Icon  string
	Box   lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Theme is the set of styles derived from a palette.
type Theme struct {
	Palette Palette
	Help    lipgloss.Style
	Header  lipgloss.Style
	Primary lipgloss.Style
	toasts  map[notify.Type]Toast
}

// NewTheme builds all styles for p.
func NewTheme(p Palette) *Theme {
	accents := map[notify.Type]lipgloss.Color{
		notify.TypeSuccess:        p.Success,
		notify.TypeError:          p.Error,
		notify.TypeWarning:        p.Warning,
		notify.TypeInfo:           p.Primary,
		notify.TypePasswordChange: p.Accent,
		notify.TypeLogin:          p.Highlight,
		notify.TypeSystem:         p.Muted,
	}

	t := &Theme{
		Palette: p,
		Help:    lipgloss.NewStyle().Foreground(p.Muted),
		Header:  lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Primary: lipgloss.NewStyle().Foreground(p.Background).Background(p.Primary).Padding(0, 1),
		toasts:  make(map[notify.Type]Toast, len(accents)),
	}

	for typ, accent := range accents {
		t.toasts[typ] = Toast{
			Icon: icons[typ],
			Box: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Foreground(accent).Bold(true),
			Body:  lipgloss.NewStyle().Foreground(p.Foreground),
		}
	}

	return t
}

// Toast returns the recipe for t, falling back to info for unknown types.
func (t *Theme) Toast(typ notify.Type) Toast {
	if s, ok := t.toasts[typ]; ok {
		return s
	}
	return t.toasts[notify.TypeInfo]
}
