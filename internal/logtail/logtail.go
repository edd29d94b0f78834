package logtail

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path. A
// missing file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	ring := make([]string, maxLines)
	seen := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		ring[seen%maxLines] = line
		seen++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if seen <= maxLines {
		return ring[:seen], nil
	}
	start := seen % maxLines
	return append(ring[start:], ring[:start]...), nil
}

// Entry is one log line reduced to what the activity panel shows.
type Entry struct {
	Clock   string // HH:MM:SS, empty when the line carried no timestamp
	Level   string // upper case
	Logger  string
	Message string
	Fields  []Field // sorted by key
}

// Field is a structured key/value pair from the line.
type Field struct {
	Key   string
	Value string
}

// Keys the encoders always emit; they never show up as Fields.
var reservedKeys = map[string]struct{}{
	"ts": {}, "level": {}, "logger": {}, "msg": {}, "caller": {}, "stacktrace": {},
}

// Parse decodes a line written by either of the logger's encoders: json
// objects, or tab-separated console lines. Anything else becomes an entry
// whose Message is the raw line.
func Parse(line string) Entry {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "{") {
		if entry, ok := parseJSON(trimmed); ok {
			return entry
		}
	}
	if strings.Contains(trimmed, "\t") {
		return parseConsole(trimmed)
	}
	return Entry{Message: trimmed}
}

// String renders the entry on one line.
func (e Entry) String() string {
	parts := make([]string, 0, 4+len(e.Fields))
	for _, s := range []string{e.Clock, e.Level, e.Logger, e.Message} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	for _, f := range e.Fields {
		parts = append(parts, f.Key+"="+f.Value)
	}
	return strings.Join(parts, " ")
}

func parseJSON(line string) (Entry, bool) {
	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Entry{}, false
	}

	entry := Entry{
		Level:   strings.ToUpper(stringOf(raw["level"])),
		Logger:  stringOf(raw["logger"]),
		Message: stringOf(raw["msg"]),
	}
	if ts, ok := raw["ts"].(json.Number); ok {
		if secs, err := ts.Float64(); err == nil {
			entry.Clock = time.Unix(0, int64(secs*float64(time.Second))).Format(time.TimeOnly)
		}
	}
	entry.Fields = collectFields(raw)
	return entry, true
}

// parseConsole splits "ts\tLEVEL\t[logger\t]caller\tmsg[\t{fields}]".
func parseConsole(line string) Entry {
	parts := strings.Split(line, "\t")
	if len(parts) < 3 {
		return Entry{Message: line}
	}

	entry := Entry{
		Clock: clockOf(parts[0]),
		Level: strings.ToUpper(parts[1]),
	}
	rest := parts[2:]
	if last := rest[len(rest)-1]; strings.HasPrefix(last, "{") {
		dec := json.NewDecoder(strings.NewReader(last))
		dec.UseNumber()
		var raw map[string]any
		if err := dec.Decode(&raw); err == nil {
			entry.Fields = collectFields(raw)
			rest = rest[:len(rest)-1]
		}
	}
	if len(rest) == 0 {
		return entry
	}
	entry.Message = rest[len(rest)-1]
	if len(rest) >= 3 {
		entry.Logger = rest[0]
	}
	return entry
}

func collectFields(raw map[string]any) []Field {
	var fields []Field
	for k, v := range raw {
		if _, skip := reservedKeys[k]; skip {
			continue
		}
		fields = append(fields, Field{Key: k, Value: stringOf(v)})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
	return fields
}

func stringOf(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(bytes.TrimSpace(b))
	}
}

// clockOf pulls HH:MM:SS out of an ISO-8601 timestamp.
func clockOf(ts string) string {
	i := strings.IndexByte(ts, 'T')
	if i < 0 || len(ts) < i+9 {
		return ""
	}
	return ts[i+1 : i+9]
}
