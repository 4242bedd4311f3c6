package output

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/daryltucker/rambo/lib/model"
)

var commands = []model.CommandInfo{
	{Key: "new_project", Verb: "new", Noun: "project", Kind: "single", Description: "create a project, fast", Location: "commands"},
	{Key: "get_user", Verb: "get", Noun: "user", Kind: "multi", Actions: []string{"list", "show"}, Location: "extras"},
}

func TestWriteCommands_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCommands(FormatCSV, &buf, commands); err != nil {
		t.Fatalf("WriteCommands() error: %v", err)
	}

	want := "key,verb,noun,kind,actions,description,location\n" +
		"new_project,new,project,single,,\"create a project, fast\",commands\n" +
		"get_user,get,user,multi,list|show,,extras\n"
	if buf.String() != want {
		t.Errorf("CSV output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteCommands_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCommands(FormatJSON, &buf, commands); err != nil {
		t.Fatalf("WriteCommands() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	var got model.CommandInfo
	if err := json.Unmarshal([]byte(lines[1]), &got); err != nil {
		t.Fatal(err)
	}
	if got.Key != "get_user" || len(got.Actions) != 2 {
		t.Errorf("second row = %+v", got)
	}
	if strings.Contains(lines[1], "description") {
		t.Error("empty description should be omitted")
	}
}

func TestWriteCommands_UnknownFormat(t *testing.T) {
	if err := WriteCommands("xml", &bytes.Buffer{}, commands); err == nil {
		t.Error("WriteCommands(xml) succeeded")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) succeeded")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, slog.LevelInfo, LogFormatAuto)
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown", "key", "value")

	// A buffer is not a terminal, so auto picks JSON.
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not a single JSON record: %q", buf.String())
	}
	if record["msg"] != "shown" || record["key"] != "value" {
		t.Errorf("record = %v", record)
	}

	if _, err := NewLogger(&buf, slog.LevelInfo, "yaml"); err == nil {
		t.Error("NewLogger(yaml) succeeded")
	}
}
