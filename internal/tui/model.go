// Package tui is the interactive terminal front end.
//
// Every key press that changes the list goes through the store, which
// persists synchronously before Update returns. The filter, search text and
// edit session are UI state owned by the Model and never persisted.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/JamesPrial/todo-notes/internal/store"
	"github.com/JamesPrial/todo-notes/internal/task"
	"github.com/JamesPrial/todo-notes/internal/view"
)

type uiMode int

const (
	modeList uiMode = iota
	modeCompose
	modeEdit
	modeSearch
)

// Model is the bubbletea model of the task list screen.
type Model struct {
	store  *store.Store
	locale language.Tag

	mode   uiMode
	state  view.State
	proj   view.Projection
	cursor int

	compose textinput.Model
	search  textinput.Model
	editor  textinput.Model
	session *store.EditSession

	status    string
	statusErr bool

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithLocale selects the language of the empty-state messages.
func WithLocale(tag language.Tag) Option {
	return func(m *Model) { m.locale = tag }
}

// NewModel returns a Model showing all tasks of st.
func NewModel(st *store.Store, opts ...Option) *Model {
	compose := textinput.New()
	compose.Placeholder = "What needs to be done?"
	compose.Width = 50

	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "
	search.Width = 30

	editor := textinput.New()
	editor.Width = 50
	editor.Prompt = ""

	m := &Model{
		store:   st,
		locale:  language.English,
		mode:    modeList,
		state:   view.State{Filter: task.FilterAll},
		compose: compose,
		search:  search,
		editor:  editor,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.refresh()
	return m
}

// Run starts the TUI on the terminal and blocks until the user quits.
func Run(st *store.Store, opts []Option, progOpts ...tea.ProgramOption) error {
	p := tea.NewProgram(NewModel(st, opts...), progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeCompose:
			return m, m.updateCompose(msg)
		case modeEdit:
			return m, m.updateEdit(msg)
		case modeSearch:
			return m, m.updateSearch(msg)
		default:
			return m, m.updateList(msg)
		}
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, keys.Add):
		m.mode = modeCompose
		m.compose.Reset()
		return m.compose.Focus()
	case key.Matches(msg, keys.Toggle):
		if t, ok := m.selected(); ok {
			_, _, err := m.store.Toggle(t.ID)
			m.afterMutation(err)
		}
	case key.Matches(msg, keys.Delete):
		if t, ok := m.selected(); ok {
			_, err := m.store.Remove(t.ID)
			m.afterMutation(err)
		}
	case key.Matches(msg, keys.Edit):
		return m.beginEdit()
	case key.Matches(msg, keys.Filter):
		m.setFilter(m.state.Filter.Next())
	case key.Matches(msg, keys.FilterAll):
		m.setFilter(task.FilterAll)
	case key.Matches(msg, keys.FilterAct):
		m.setFilter(task.FilterActive)
	case key.Matches(msg, keys.FilterDone):
		m.setFilter(task.FilterCompleted)
	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		return m.search.Focus()
	case key.Matches(msg, keys.Clear):
		if m.state.Search != "" {
			m.search.Reset()
			m.state.Search = ""
			m.refresh()
		}
	}
	return nil
}

// updateCompose handles the add popup. Enter on blank text keeps the popup
// open; Esc closes it and drops the draft.
func (m *Model) updateCompose(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc:
		m.closeCompose()
		return nil
	case tea.KeyEnter:
		_, ok, err := m.store.Add(m.compose.Value())
		if !ok && err == nil {
			return nil
		}
		m.closeCompose()
		m.cursor = 0
		m.afterMutation(err)
		return nil
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return cmd
}

// updateEdit handles inline editing. Enter commits, Esc cancels, and moving
// focus away with tab or the arrow keys commits before moving.
func (m *Model) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.commitEdit()
		return tea.Quit
	case tea.KeyEsc:
		m.session.Cancel()
		m.endEdit()
		return nil
	case tea.KeyEnter, tea.KeyTab:
		m.commitEdit()
		return nil
	case tea.KeyUp:
		m.commitEdit()
		m.moveCursor(-1)
		return nil
	case tea.KeyDown:
		m.commitEdit()
		m.moveCursor(1)
		return nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.session.Value = m.editor.Value()
	return cmd
}

// updateSearch recomputes the projection on every keystroke. Enter keeps
// the search and returns to the list; Esc clears it.
func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc:
		m.search.Reset()
		m.search.Blur()
		m.state.Search = ""
		m.mode = modeList
		m.refresh()
		return nil
	case tea.KeyEnter, tea.KeyTab:
		m.search.Blur()
		m.mode = modeList
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.state.Search {
		m.state.Search = m.search.Value()
		m.cursor = 0
		m.refresh()
	}
	return cmd
}

func (m *Model) beginEdit() tea.Cmd {
	t, ok := m.selected()
	if !ok {
		return nil
	}
	sess, ok := m.store.BeginEdit(t.ID)
	if !ok {
		return nil
	}
	m.session = sess
	m.mode = modeEdit
	m.editor.SetValue(sess.Value)
	m.editor.CursorEnd()
	return m.editor.Focus()
}

func (m *Model) commitEdit() {
	if m.session == nil {
		return
	}
	outcome, err := m.store.CommitEdit(m.session)
	m.endEdit()
	if outcome == store.EditCommitted || err != nil {
		m.afterMutation(err)
	}
}

func (m *Model) endEdit() {
	m.editor.Blur()
	m.editor.Reset()
	m.session = nil
	m.mode = modeList
	m.refresh()
}

func (m *Model) closeCompose() {
	m.compose.Reset()
	m.compose.Blur()
	m.mode = modeList
}

func (m *Model) setFilter(f task.Filter) {
	m.state.Filter = f
	m.cursor = 0
	m.refresh()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.proj.Tasks) {
		m.cursor = len(m.proj.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.proj.Tasks) {
		return task.Task{}, false
	}
	return m.proj.Tasks[m.cursor], true
}

// afterMutation re-projects the list and reports a persistence failure in
// the status line. The in-memory change is kept either way.
func (m *Model) afterMutation(err error) {
	if err != nil {
		m.status = "Could not save: " + err.Error()
		m.statusErr = true
	} else {
		m.status = ""
		m.statusErr = false
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.proj = view.Project(m.store.Tasks(), m.state)
	m.clampCursor()
}
