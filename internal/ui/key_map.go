package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	nextTab   key.Binding
	prevTab   key.Binding
	up        key.Binding
	down      key.Binding
	left      key.Binding
	right     key.Binding
	enter     key.Binding
	reload    key.Binding
	prevMonth key.Binding
	nextMonth key.Binding
	rate      key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		nextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
		prevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev screen")),
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		prevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
		nextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),
		rate:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"), key.WithHelp("1-0", "rate")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.nextTab, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.nextTab, k.prevTab},
		{k.up, k.down, k.left, k.right, k.enter},
		{k.reload, k.prevMonth, k.nextMonth, k.rate},
		{k.quit},
	}
}
