package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "userdesk.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		if i == 4 {
			content.WriteString("   \n")
		}
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"zero returns nothing", 0, nil},
		{"partial", 5, expectedAll[5:]},
		{"wraps ring more than once", 3, expectedAll[7:]},
		{"exactly all", 10, expectedAll},
		{"more than exists", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFileIsEmpty(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v, want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Entry
	}{
		{
			name: "console with logger and fields",
			line: "2024-01-01T10:11:12.500Z\tWARN\treqres\treqres/client.go:201\trequest failed\t{\"status\": 404, \"path\": \"/users/23\"}",
			want: Entry{
				Clock:   "10:11:12",
				Level:   "WARN",
				Logger:  "reqres",
				Message: "request failed",
				Fields:  []Field{{"path", "/users/23"}, {"status", "404"}},
			},
		},
		{
			name: "console without logger",
			line: "2024-01-01T10:11:12.500Z\tINFO\tapp/app.go:50\tuserdesk started",
			want: Entry{Clock: "10:11:12", Level: "INFO", Message: "userdesk started"},
		},
		{
			name: "json without ts",
			line: `{"level":"info","logger":"feedback","msg":"operation succeeded","slot":"fetch"}`,
			want: Entry{
				Level:   "INFO",
				Logger:  "feedback",
				Message: "operation succeeded",
				Fields:  []Field{{"slot", "fetch"}},
			},
		},
		{
			name: "plain text passes through",
			line: "  panic: something odd  ",
			want: Entry{Message: "panic: something odd"},
		},
		{
			name: "broken json passes through",
			line: `{"level":`,
			want: Entry{Message: `{"level":`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParse_JSONTimestampBecomesClock(t *testing.T) {
	entry := Parse(`{"level":"debug","ts":1704067200.25,"msg":"probe failed"}`)
	if len(entry.Clock) != len("15:04:05") || strings.Count(entry.Clock, ":") != 2 {
		t.Fatalf("Clock = %q, want HH:MM:SS", entry.Clock)
	}
	if entry.Level != "DEBUG" || entry.Message != "probe failed" || entry.Fields != nil {
		t.Fatalf("entry = %#v", entry)
	}
}

func TestEntryString(t *testing.T) {
	e := Entry{Clock: "10:11:12", Level: "WARN", Logger: "reqres", Message: "request failed", Fields: []Field{{"status", "404"}}}
	if got, want := e.String(), "10:11:12 WARN reqres request failed status=404"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got := (Entry{Message: "raw"}).String(); got != "raw" {
		t.Fatalf("String() = %q, want raw", got)
	}
}
