package view_test

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/JamesPrial/todo-notes/internal/task"
	"github.com/JamesPrial/todo-notes/internal/view"
)

func sample() []task.Task {
	return []task.Task{
		{ID: "1", Text: "Buy milk", Completed: false, CreatedAt: "2025-01-01T00:00:00.000Z"},
		{ID: "2", Text: "Call mom", Completed: true, CreatedAt: "2025-01-01T00:00:00.000Z"},
	}
}

func texts(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

// ---------------------------------------------------------------------------
// Project
// ---------------------------------------------------------------------------

func Test_Project_Cases(t *testing.T) {
	t.Parallel()

	cyrillic := []task.Task{
		{ID: "a", Text: "Купить МОЛОКО", CreatedAt: "2025-01-01T00:00:00.000Z"},
		{ID: "b", Text: "Straße fegen", Completed: true, CreatedAt: "2025-01-01T00:00:00.000Z"},
	}

	tests := []struct {
		name      string
		tasks     []task.Task
		state     view.State
		wantTexts []string
		wantEmpty view.EmptyState
	}{
		{
			name:      "all no search",
			tasks:     sample(),
			state:     view.State{Filter: task.FilterAll},
			wantTexts: []string{"Buy milk", "Call mom"},
			wantEmpty: view.NotEmpty,
		},
		{
			name:      "active only",
			tasks:     sample(),
			state:     view.State{Filter: task.FilterActive},
			wantTexts: []string{"Buy milk"},
			wantEmpty: view.NotEmpty,
		},
		{
			name:      "completed only",
			tasks:     sample(),
			state:     view.State{Filter: task.FilterCompleted},
			wantTexts: []string{"Call mom"},
			wantEmpty: view.NotEmpty,
		},
		{
			name:      "search mom",
			tasks:     sample(),
			state:     view.State{Filter: task.FilterAll, Search: "mom"},
			wantTexts: []string{"Call mom"},
			wantEmpty: view.NotEmpty,
		},
		{
			name:      "search case insensitive",
			tasks:     sample(),
			state:     view.State{Filter: task.FilterAll, Search: "MILK"},
			wantTexts: []string{"Buy milk"},
			wantEmpty: view.NotEmpty,
		},
		{
			name:      "search and filter combine",
			tasks:     sample(),
			state:     view.State{Filter: task.FilterActive, Search: "mom"},
			wantTexts: []string{},
			wantEmpty: view.NoMatches,
		},
		{
			name:      "empty store no search",
			tasks:     nil,
			state:     view.State{Filter: task.FilterAll},
			wantTexts: []string{},
			wantEmpty: view.NoTasks,
		},
		{
			name:      "empty store with search",
			tasks:     nil,
			state:     view.State{Filter: task.FilterAll, Search: "x"},
			wantTexts: []string{},
			wantEmpty: view.NoMatches,
		},
		{
			name:      "filter matches nothing with search xyz",
			tasks:     sample()[:1],
			state:     view.State{Filter: task.FilterCompleted, Search: "xyz"},
			wantTexts: []string{},
			wantEmpty: view.NoMatches,
		},
		{
			name:      "filter matches nothing without search",
			tasks:     sample()[:1],
			state:     view.State{Filter: task.FilterCompleted},
			wantTexts: []string{},
			wantEmpty: view.NoTasks,
		},
		{
			name:      "cyrillic case folding",
			tasks:     cyrillic,
			state:     view.State{Filter: task.FilterAll, Search: "молоко"},
			wantTexts: []string{"Купить МОЛОКО"},
			wantEmpty: view.NotEmpty,
		},
		{
			name:      "full case folding",
			tasks:     cyrillic,
			state:     view.State{Filter: task.FilterAll, Search: "STRASSE"},
			wantTexts: []string{"Straße fegen"},
			wantEmpty: view.NotEmpty,
		},
		{
			name:      "zero filter behaves as all",
			tasks:     sample(),
			state:     view.State{},
			wantTexts: []string{"Buy milk", "Call mom"},
			wantEmpty: view.NotEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := view.Project(tt.tasks, tt.state)
			gotTexts := texts(got.Tasks)
			if len(gotTexts) != len(tt.wantTexts) {
				t.Fatalf("Project() texts = %v, want %v", gotTexts, tt.wantTexts)
			}
			for i := range tt.wantTexts {
				if gotTexts[i] != tt.wantTexts[i] {
					t.Errorf("Project() texts = %v, want %v", gotTexts, tt.wantTexts)
					break
				}
			}
			if got.Empty != tt.wantEmpty {
				t.Errorf("Empty = %v, want %v", got.Empty, tt.wantEmpty)
			}
		})
	}
}

func Test_Project_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	in := sample()
	got := view.Project(in, view.State{Filter: task.FilterActive})
	got.Tasks[0].Text = "changed"

	if in[0].Text != "Buy milk" {
		t.Errorf("Project() result aliases input: %q", in[0].Text)
	}
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

func Test_EmptyState_Message(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state view.EmptyState
		tag   language.Tag
		want  string
	}{
		{view.NoTasks, language.English, "No tasks"},
		{view.NoMatches, language.English, "No tasks found"},
		{view.NoTasks, language.Russian, "Нет задач"},
		{view.NoMatches, language.Russian, "Задачи не найдены"},
		{view.NotEmpty, language.English, ""},
		{view.NotEmpty, language.Russian, ""},
	}

	for _, tt := range tests {
		if got := tt.state.Message(tt.tag); got != tt.want {
			t.Errorf("%v.Message(%v) = %q, want %q", tt.state, tt.tag, got, tt.want)
		}
	}
}

func Test_ParseLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want language.Tag
	}{
		{"", language.English},
		{"en", language.English},
		{"ru", language.Russian},
		{"RU", language.Russian},
		{"ru-RU", language.Russian},
		{"not a locale!", language.English},
	}

	for _, tt := range tests {
		if got := view.ParseLocale(tt.in); got != tt.want {
			t.Errorf("ParseLocale(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
