package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Add        key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Edit       key.Binding
	Filter     key.Binding
	FilterAll  key.Binding
	FilterAct  key.Binding
	FilterDone key.Binding
	Search     key.Binding
	Clear      key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit")),
	Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	FilterAll:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
	FilterAct:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
	FilterDone: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// helpBindings are shown in the footer of the list view.
func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.Filter, k.Search, k.Quit}
}
