package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	Pane   key.Binding
	Choose key.Binding
	Submit key.Binding
	Hint   key.Binding
	Reset  key.Binding
	Level  key.Binding
	Skip   key.Binding
	Back   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		Pane:   key.NewBinding(key.WithKeys("tab", "up", "down"), key.WithHelp("tab", "switch row")),
		Choose: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose")),
		Submit: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "check answer")),
		Hint:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hint")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Level:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
		Skip:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "ready")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Pane, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Pane, k.Choose},
		{k.Submit, k.Hint, k.Skip},
		{k.Reset, k.Level, k.Back, k.Quit},
	}
}

// forMode enables only the bindings that do something in the current game.
func (k keyMap) forMode(f modeFlags) keyMap {
	k.Pane.SetEnabled(f.twoPanes)
	k.Submit.SetEnabled(f.submit)
	k.Hint.SetEnabled(f.hint)
	k.Skip.SetEnabled(f.studying)
	k.Level.SetEnabled(f.levels)
	k.Back.SetEnabled(f.menu)
	return k
}

type modeFlags struct {
	twoPanes bool
	submit   bool
	hint     bool
	studying bool
	levels   bool
	menu     bool
}
