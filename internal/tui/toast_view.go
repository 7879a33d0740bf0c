package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders the controller's stack.
type ToastView struct {
	controller *ToastController
	theme      *styles.Theme
	width      int
}

func NewToastView(controller *ToastController, theme *styles.Theme, width int) *ToastView {
	if width <= 0 {
		width = toastWidth
	}
	return &ToastView{controller: controller, theme: theme, width: width}
}

// View renders the toast stack with the oldest toast at the top.
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts)+1)
	if hidden := v.controller.Hidden(); hidden > 0 {
		rendered = append(rendered, v.theme.Help.Render(fmt.Sprintf("+%d more", hidden)))
	}
	for _, n := range toasts {
		rendered = append(rendered, v.renderToast(n))
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func (v *ToastView) renderToast(n notify.Notification) string {
	style := v.theme.Toast(n.Type)

	header := style.Icon
	if n.Title != "" {
		header += " " + style.Title.Render(n.Title)
	}
	if remaining := v.controller.Remaining(n); remaining > 0 {
		header += " " + v.theme.Help.Render(formatRemaining(remaining))
	}

	lines := []string{header}
	if n.Message != "" {
		lines = append(lines, style.Body.Render(n.Message))
	}
	if actions := renderActions(v.theme, n.Actions); actions != "" {
		lines = append(lines, actions)
	}

	return style.Box.Width(v.width).Render(strings.Join(lines, "\n"))
}

func renderActions(theme *styles.Theme, actions []notify.Action) string {
	if len(actions) == 0 {
		return ""
	}

	labels := make([]string, 0, len(actions))
	for _, a := range actions {
		if a.Primary {
			labels = append(labels, theme.Primary.Render(a.Label))
			continue
		}
		labels = append(labels, "["+a.Label+"]")
	}
	return strings.Join(labels, " ")
}

func formatRemaining(d time.Duration) string {
	return d.Round(time.Second).String()
}

// Layout places body at the top and the toast stack in the lower-right corner
// of a width x height screen.
func (v *ToastView) Layout(body string, width, height int) string {
	toasts := v.View()
	if toasts == "" {
		return body
	}

	rest := max(height-lipgloss.Height(body), lipgloss.Height(toasts))
	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		lipgloss.Place(width, rest, lipgloss.Right, lipgloss.Bottom, toasts),
	)
}
