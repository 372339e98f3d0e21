package shared

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Song Title ARTIST", "song title artist"},
		{"collapses internal whitespace", "song   title\tartist", "song title artist"},
		{"trims edges", "  song title  ", "song title"},
		{"empty", "", ""},
		{"only whitespace", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeQuery(tt.input); got != tt.want {
				t.Errorf("NormalizeQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := GenerateID()
		if len(id) != 36 {
			t.Fatalf("GenerateID() = %q, want 36-char UUID", id)
		}
		if seen[id] {
			t.Fatalf("GenerateID() repeated %q", id)
		}
		seen[id] = true
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]any{"name": "test", "count": 3}

	compact, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if strings.Contains(string(compact), "\n") {
		t.Error("compact output should not contain newlines")
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if !strings.Contains(string(pretty), "\n  ") {
		t.Error("pretty output should be indented")
	}

	var decoded map[string]any
	if err := json.Unmarshal(pretty, &decoded); err != nil {
		t.Errorf("pretty output is not valid JSON: %v", err)
	}

	if _, err := MarshalJSON(make(chan int), false); err == nil {
		t.Error("MarshalJSON() should fail on unmarshalable input")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("log output %q missing message", out)
	}
	if !strings.Contains(out, "value") {
		t.Errorf("log output %q missing field", out)
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := WithLogger(NewLogger(&buf), "component", "engine")

	logger.Info("started")

	if !strings.Contains(buf.String(), "engine") {
		t.Errorf("log output %q missing bound field", buf.String())
	}
}
