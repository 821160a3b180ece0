package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the demo window.
type KeyMap struct {
	QueryType  key.Binding
	SetType    key.Binding
	GetText    key.Binding
	InsertLF   key.Binding
	InsertCRLF key.Binding

	Newline   key.Binding
	SelectAll key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Copy      key.Binding
	ToggleLog key.Binding
	Quit      key.Binding

	// Answers of the Set Line Ending prompt.
	ChooseCRLF key.Binding
	ChooseCR   key.Binding
	ChooseLF   key.Binding
	Cancel     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		QueryType: key.NewBinding(
			key.WithKeys("f1", "alt+1"),
			key.WithHelp("f1", "line ending type"),
		),
		SetType: key.NewBinding(
			key.WithKeys("f2", "alt+2"),
			key.WithHelp("f2", "set line ending"),
		),
		GetText: key.NewBinding(
			key.WithKeys("f3", "alt+3"),
			key.WithHelp("f3", "get text"),
		),
		InsertLF: key.NewBinding(
			key.WithKeys("f4", "alt+4"),
			key.WithHelp("f4", "insert LF"),
		),
		InsertCRLF: key.NewBinding(
			key.WithKeys("f5", "alt+5"),
			key.WithHelp("f5", "insert CRLF"),
		),
		Newline: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new line"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select all"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "redo"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy visualized"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "log"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
		ChooseCRLF: key.NewBinding(
			key.WithKeys("a", "A", "1"),
			key.WithHelp("a", "abort: Windows CRLF"),
		),
		ChooseCR: key.NewBinding(
			key.WithKeys("r", "R", "2"),
			key.WithHelp("r", "retry: Macintosh CR"),
		),
		ChooseLF: key.NewBinding(
			key.WithKeys("i", "I", "3"),
			key.WithHelp("i", "ignore: Unix LF"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.QueryType, k.SetType, k.GetText, k.InsertLF, k.InsertCRLF, k.Copy, k.ToggleLog, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.QueryType, k.SetType, k.GetText, k.InsertLF, k.InsertCRLF},
		{k.Newline, k.SelectAll, k.Undo, k.Redo, k.Copy, k.ToggleLog, k.Quit},
	}
}

// promptHelp lists the bindings shown while the prompt is open.
func (k KeyMap) promptHelp() []key.Binding {
	return []key.Binding{k.ChooseCRLF, k.ChooseCR, k.ChooseLF, k.Cancel}
}
