package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	tab     key.Binding
	backtab key.Binding
	enter   key.Binding
	esc     key.Binding
	reload  key.Binding
	copy    key.Binding
	quit    key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	tab:     key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next set")),
	backtab: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "previous set")),
	enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	esc:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy content")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.tab, k.enter, k.reload, k.quit}
}

func (k keyMap) detailHelp() []key.Binding {
	return []key.Binding{k.esc, k.copy, k.reload, k.quit}
}
