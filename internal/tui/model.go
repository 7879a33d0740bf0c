// Package tui renders a notification Store in the terminal with Bubble Tea.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/colonyops/toast/internal/core/logging"
	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/core/styles"
	queue "github.com/colonyops/toast/internal/notify"
)

// stormSize is how many identical errors the storm key fires at once.
const stormSize = 10

// Options configures the playground.
type Options struct {
	MaxToasts int
	Width     int
	Theme     *styles.Theme
}

// Model is an interactive playground that fires notifications through a
// Notifier and renders the Store's snapshots as toasts.
type Model struct {
	notifier *queue.Notifier
	feed     *Feed
	toasts   *ToastController
	view     *ToastView
	theme    *styles.Theme
	keys     keyMap
	help     help.Model
	logger   zerolog.Logger

	width  int
	height int
}

// New creates the playground model. Call Close once the program exits.
func New(notifier *queue.Notifier, opts Options) *Model {
	theme := opts.Theme
	if theme == nil {
		p, _ := styles.GetPalette(styles.DefaultTheme)
		theme = styles.NewTheme(p)
	}

	controller := NewToastController(opts.MaxToasts)

	return &Model{
		notifier: notifier,
		feed:     NewFeed(notifier.Store()),
		toasts:   controller,
		view:     NewToastView(controller, theme, opts.Width),
		theme:    theme,
		keys:     defaultKeyMap(),
		help:     help.New(),
		logger:   logging.Component("tui"),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.feed.Wait(), scheduleToastTick())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.toasts.Sync(msg)
		return m, m.feed.Wait()
	case toastTickMsg:
		m.toasts.Tick(time.Time(msg))
		return m, scheduleToastTick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Success):
		m.notifier.Success("Report generated successfully")
	case key.Matches(msg, m.keys.Error):
		m.notifier.Error("Failed to load reports")
	case key.Matches(msg, m.keys.ErrorStorm):
		for range stormSize {
			m.notifier.Error("Connection lost", notify.WithTitle("Network"))
		}
		m.logger.Debug().Int("count", stormSize).Msg("error storm submitted")
	case key.Matches(msg, m.keys.Warning):
		m.notifier.Warning("Session expires in 5 minutes")
	case key.Matches(msg, m.keys.Info):
		m.notifier.Info("New reports are available")
	case key.Matches(msg, m.keys.PasswordChange):
		m.notifier.PasswordChange("Your password was changed successfully")
	case key.Matches(msg, m.keys.Login):
		m.notifier.Login("Welcome back")
	case key.Matches(msg, m.keys.System):
		m.notifier.System("Scheduled maintenance tonight at 22:00")
	case key.Matches(msg, m.keys.Persistent):
		m.notifier.Show(notify.TypeWarning, "You have unsaved filters",
			notify.WithTitle("Unsaved changes"),
			notify.WithPersistent(),
			notify.WithActions(
				notify.Action{
					Label:   "Save",
					Primary: true,
					OnClick: func() { m.notifier.Success("Filters saved") },
				},
				notify.Action{
					Label:   "Discard",
					OnClick: func() { m.notifier.Info("Unsaved filters discarded") },
				},
			),
		)
	case key.Matches(msg, m.keys.Activate):
		m.activate()
	case key.Matches(msg, m.keys.Dismiss):
		if n, ok := m.toasts.Newest(); ok {
			m.notifier.Remove(n.ID)
		}
	case key.Matches(msg, m.keys.Clear):
		m.notifier.Clear()
	}

	return m, nil
}

// activate runs the default action of the newest toast that has one and
// dismisses it.
func (m *Model) activate() {
	n, ok := m.toasts.NewestActionable()
	if !ok {
		return
	}
	action, _ := n.DefaultAction()
	m.logger.Debug().Int64("id", n.ID).Str("action", action.Label).Msg("running notification action")
	if action.OnClick != nil {
		action.OnClick()
	}
	m.notifier.Remove(n.ID)
}

func (m *Model) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Header.Render("toast playground"),
		m.help.View(m.keys),
	)
	return m.view.Layout(body, m.width, m.height)
}

// Close detaches the model from the Store.
func (m *Model) Close() {
	m.feed.Close()
}
