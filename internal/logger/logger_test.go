package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type entry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields"`
	Error     string                 `json:"error"`
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []entry {
	t.Helper()
	var entries []entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestLogger_Log(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "test message",
			fields:  Fields{"key": "value"},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "debug message",
			want:    false, // won't log (below INFO)
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "error occurred",
			err:     errors.New("test error"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(LevelInfo, &buf, FormatJSON)

			logger.log(tt.level, tt.message, tt.fields, tt.err)

			logged := buf.Len() > 0
			if logged != tt.want {
				t.Errorf("log() logged = %v, want %v", logged, tt.want)
			}
		})
	}
}

func TestLogger_EntryShape(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, &buf, FormatJSON)

	logger.Error("load failed", Fields{"path": "a.csv", "line": 3}, errors.New("boom"))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR", e.Level)
	}
	if e.Message != "load failed" {
		t.Errorf("Message = %q, want 'load failed'", e.Message)
	}
	if e.Error != "boom" {
		t.Errorf("Error = %q, want boom", e.Error)
	}
	if e.Fields["path"] != "a.csv" {
		t.Errorf("Fields[path] = %v, want a.csv", e.Fields["path"])
	}
	if e.Fields["line"] != float64(3) {
		t.Errorf("Fields[line] = %v, want 3", e.Fields["line"])
	}
	if !strings.HasSuffix(e.Timestamp, "Z") {
		t.Errorf("Timestamp = %q, want UTC RFC3339", e.Timestamp)
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf, FormatText)

	logger.Warn("unmapped nationality", Fields{"nationality": "Israel"})

	out := buf.String()
	if !strings.Contains(out, "level=WARN") {
		t.Errorf("text output %q missing level", out)
	}
	if !strings.Contains(out, "fields.nationality=Israel") {
		t.Errorf("text output %q missing field", out)
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelWarn, &buf, FormatJSON)

	logger.Debug("d", nil)
	logger.Info("i", nil)
	logger.Warn("w", nil)
	logger.Error("e", nil, nil)

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Message != "w" || entries[1].Message != "e" {
		t.Errorf("messages = %q, %q; want w, e", entries[0].Message, entries[1].Message)
	}
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	var buf bytes.Buffer
	SetDefault(New(LevelDebug, &buf, FormatJSON))

	Debug("debug", nil)
	Info("info", nil)
	Warn("warn", nil)
	Error("error", nil, errors.New("x"))

	if got := len(decodeLines(t, &buf)); got != 4 {
		t.Errorf("default logger wrote %d entries, want 4", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"trace", "", true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("TEXT"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(TEXT) = %q, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(\"\") = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) expected error")
	}
}
