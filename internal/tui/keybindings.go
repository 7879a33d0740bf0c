package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Success        key.Binding
	Error          key.Binding
	ErrorStorm     key.Binding
	Warning        key.Binding
	Info           key.Binding
	PasswordChange key.Binding
	Login          key.Binding
	System         key.Binding
	Persistent     key.Binding
	Activate       key.Binding
	Dismiss        key.Binding
	Clear          key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Success:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "success")),
		Error:          key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error")),
		ErrorStorm:     key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "error storm")),
		Warning:        key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warning")),
		Info:           key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		PasswordChange: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "password")),
		Login:          key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
		System:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "system")),
		Persistent:     key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "persistent")),
		Activate:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run action")),
		Dismiss:        key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "dismiss newest")),
		Clear:          key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Success, k.Error, k.Info, k.Dismiss, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Success, k.Error, k.ErrorStorm, k.Warning, k.Info},
		{k.PasswordChange, k.Login, k.System, k.Persistent},
		{k.Activate, k.Dismiss, k.Clear, k.Help, k.Quit},
	}
}
