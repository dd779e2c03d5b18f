package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/JamesPrial/todo-notes/internal/task"
)

func Test_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []task.Task
		wantErr bool
	}{
		{
			name:  "browser blob",
			input: `[{"id":"1731580245123","text":"Buy milk","completed":false,"createdAt":"2024-11-14T10:30:45.123Z"}]`,
			want: []task.Task{
				{ID: "1731580245123", Text: "Buy milk", Completed: false, CreatedAt: "2024-11-14T10:30:45.123Z"},
			},
		},
		{
			name:  "numeric id stringified without exponent",
			input: `[{"id":1731580245123,"text":"Call mom","completed":true}]`,
			want: []task.Task{
				{ID: "1731580245123", Text: "Call mom", Completed: true},
			},
		},
		{
			name:  "string completed",
			input: `[{"text":"a","completed":"true"},{"text":"b","completed":"nope"}]`,
			want: []task.Task{
				{Text: "a", Completed: true},
				{Text: "b", Completed: false},
			},
		},
		{
			name:  "non-string text stringified",
			input: `[{"text":42}]`,
			want:  []task.Task{{Text: "42"}},
		},
		{
			name:  "records without text skipped",
			input: `[{"id":"x"},{"text":null},"loose string",7,{"text":"kept"}]`,
			want:  []task.Task{{Text: "kept"}},
		},
		{
			name:  "empty array",
			input: `[]`,
			want:  []task.Task{},
		},
		{
			name:  "null",
			input: `null`,
			want:  []task.Task{},
		},
		{
			name:    "object is rejected",
			input:   `{"text":"a"}`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			input:   `[{"text":`,
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Decode() = %+v, want %+v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Decode()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func Test_Decode_ObjectIsErrNotArray(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`"just a string"`))
	if !errors.Is(err, ErrNotArray) {
		t.Errorf("Decode() error = %v, want ErrNotArray", err)
	}
}

func Test_HasText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item map[string]any
		want bool
	}{
		{name: "text present", item: map[string]any{"text": "a"}, want: true},
		{name: "empty text still present", item: map[string]any{"text": ""}, want: true},
		{name: "text null", item: map[string]any{"text": nil}, want: false},
		{name: "text missing", item: map[string]any{"id": "1"}, want: false},
		{name: "empty map", item: map[string]any{}, want: false},
	}

	for _, tt := range tests {
		if got := hasText(tt.item); got != tt.want {
			t.Errorf("%s: hasText() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
