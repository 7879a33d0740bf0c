// Package jsoncolor pretty-prints JSON with theme colors for terminal output.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/toast/internal/core/styles"
)

type tokenKind int

const (
	tokenPlain tokenKind = iota
	tokenKey
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenPunct
)

// Colorizer renders JSON using styles derived from a palette.
type Colorizer struct {
	styles map[tokenKind]lipgloss.Style
}

func New(p styles.Palette) *Colorizer {
	return &Colorizer{styles: map[tokenKind]lipgloss.Style{
		tokenKey:    lipgloss.NewStyle().Foreground(p.Primary),
		tokenString: lipgloss.NewStyle().Foreground(p.Success),
		tokenNumber: lipgloss.NewStyle().Foreground(p.Warning),
		tokenBool:   lipgloss.NewStyle().Foreground(p.Accent),
		tokenNull:   lipgloss.NewStyle().Foreground(p.Error),
		tokenPunct:  lipgloss.NewStyle().Foreground(p.Muted),
	}}
}

// Colorize indents data and colors each token. Invalid JSON is returned
// unchanged.
func (c *Colorizer) Colorize(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}
	raw := buf.String()

	var out strings.Builder
	for i := 0; i < len(raw); {
		kind, end := scan(raw, i)
		text := raw[i:end]
		if style, ok := c.styles[kind]; ok {
			out.WriteString(style.Render(text))
		} else {
			out.WriteString(text)
		}
		i = end
	}
	return out.String()
}

// scan classifies the token starting at i and returns its end offset.
func scan(s string, i int) (tokenKind, int) {
	switch ch := s[i]; {
	case ch == '"':
		end := stringEnd(s, i) + 1
		if rest := strings.TrimLeft(s[end:], " \t"); strings.HasPrefix(rest, ":") {
			return tokenKey, end
		}
		return tokenString, end
	case ch == '-' || (ch >= '0' && ch <= '9'):
		end := i + 1
		for end < len(s) && strings.IndexByte("0123456789.eE+-", s[end]) >= 0 {
			end++
		}
		return tokenNumber, end
	case strings.HasPrefix(s[i:], "true"):
		return tokenBool, i + 4
	case strings.HasPrefix(s[i:], "false"):
		return tokenBool, i + 5
	case strings.HasPrefix(s[i:], "null"):
		return tokenNull, i + 4
	case strings.IndexByte("{}[]:,", ch) >= 0:
		return tokenPunct, i + 1
	default:
		return tokenPlain, i + 1
	}
}

// stringEnd returns the index of the quote closing the string opened at pos.
func stringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(s) - 1
}
