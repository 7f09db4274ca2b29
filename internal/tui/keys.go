package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Open   key.Binding
	Back   key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "payslip")),
	Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recalculate")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Back, k.Reload, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Open, k.Back}, {k.Reload, k.Help, k.Quit}}
}
