package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONRecordShape(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(DEBUG, true)
	logger.SetOutput(&buf)

	logger.Log(INFO, "function executed successfully", map[string]interface{}{
		"function_name": "create_user",
		"status":        "success",
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected exactly one record, got %d", len(lines))
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Record is not valid JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("Expected INFO, got %s", entry.Level)
	}
	if entry.Message != "function executed successfully" {
		t.Errorf("Unexpected message: %s", entry.Message)
	}
	if entry.Fields["function_name"] != "create_user" {
		t.Errorf("Expected fields to round-trip, got %v", entry.Fields)
	}
	if entry.Timestamp == "" {
		t.Error("Expected a timestamp")
	}
}

func TestLevelThresholdFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(ERROR, true)
	logger.SetOutput(&buf)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("dropped")
	logger.Error("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected one record above threshold, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "kept") {
		t.Errorf("Wrong record survived: %s", lines[0])
	}
}

func TestWithFieldDerivesLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(INFO, true)
	logger.SetOutput(&buf)

	derived := logger.WithField("component", "wrapper")
	derived.Info("hello", map[string]interface{}{"call": 1})

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("Record is not valid JSON: %v", err)
	}
	if entry.Fields["component"] != "wrapper" {
		t.Errorf("Expected inherited field, got %v", entry.Fields)
	}
	if entry.Fields["call"] != float64(1) {
		t.Errorf("Expected call field, got %v", entry.Fields)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"DEBUG":   DEBUG,
		"debug":   DEBUG,
		"INFO":    INFO,
		"WARNING": WARN,
		"error":   ERROR,
		"bogus":   INFO,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	cases := map[int]Level{
		5:  DEBUG,
		10: DEBUG,
		20: INFO,
		30: WARN,
		40: ERROR,
		99: ERROR,
	}
	for in, want := range cases {
		if got := LevelFromVerbosity(in); got != want {
			t.Errorf("LevelFromVerbosity(%d) = %s, want %s", in, got, want)
		}
	}
}
