package export_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/JamesPrial/todo-notes/internal/export"
	"github.com/JamesPrial/todo-notes/internal/task"
)

var tasks = []task.Task{
	{ID: "1", Text: "Buy milk & <bread>", Completed: false, CreatedAt: "2025-01-01T00:00:00.000Z"},
	{ID: "2", Text: "Позвонить маме", Completed: true, CreatedAt: "2025-01-02T00:00:00.000Z"},
}

func Test_ParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    export.Format
		wantErr bool
	}{
		{in: "", want: export.FormatJSON},
		{in: "json", want: export.FormatJSON},
		{in: " JSON ", want: export.FormatJSON},
		{in: "yaml", want: export.FormatYAML},
		{in: "yml", want: export.FormatYAML},
		{in: "csv", wantErr: true},
	}

	for _, tt := range tests {
		got, err := export.ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func Test_Write_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := export.Write(&buf, tasks, export.FormatJSON); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "\n  {") {
		t.Errorf("JSON output not indented:\n%s", out)
	}
	if !strings.Contains(out, "Buy milk & <bread>") {
		t.Errorf("JSON output escaped HTML characters:\n%s", out)
	}

	var got []task.Task
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(got) != 2 || got[1] != tasks[1] {
		t.Errorf("decoded = %+v, want %+v", got, tasks)
	}
}

func Test_Write_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := export.Write(&buf, tasks, export.FormatYAML); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"- id: \"1\"", "createdAt:", "completed: true", "Позвонить маме"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}

	var got []task.Task
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(got) != 2 || got[0] != tasks[0] || got[1] != tasks[1] {
		t.Errorf("decoded = %+v, want %+v", got, tasks)
	}
}

func Test_Write_EmptyList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format export.Format
		want   string
	}{
		{export.FormatJSON, "[]\n"},
		{export.FormatYAML, "[]\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := export.Write(&buf, nil, tt.format); err != nil {
			t.Fatalf("Write(%s) error: %v", tt.format, err)
		}
		if buf.String() != tt.want {
			t.Errorf("Write(nil, %s) = %q, want %q", tt.format, buf.String(), tt.want)
		}
	}
}

func Test_Write_UnknownFormat(t *testing.T) {
	t.Parallel()

	if err := export.Write(&bytes.Buffer{}, tasks, export.Format("xml")); err == nil {
		t.Error("Write(xml) returned nil error")
	}
}
