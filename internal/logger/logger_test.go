package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	return entry
}

func TestJSONOutputKeys(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Info("hello", "count", 3)

	entry := logLine(t, &buf)
	if entry["message"] != "hello" {
		t.Errorf("expected message 'hello', got %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("expected level 'info', got %v", entry["level"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("expected timestamp key")
	}
	if entry["count"] != float64(3) {
		t.Errorf("expected count 3, got %v", entry["count"])
	}
}

func TestWarnLevelRenaming(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)

	log.Warn("careful")

	entry := logLine(t, &buf)
	if entry["level"] != "warning" {
		t.Errorf("expected level 'warning', got %v", entry["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("error", &buf)

	log.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info message should be filtered at error level, got %s", buf.String())
	}

	log.Error("kept")
	if buf.Len() == 0 {
		t.Error("error message should not be filtered")
	}
}

func TestChildLoggers(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithComponent("advisor").
		WithSessionID("abc-123").
		WithError(errors.New("boom")).
		WithField("intent", "smalltalk").
		Info("handled")

	entry := logLine(t, &buf)
	if entry["component"] != "advisor" {
		t.Errorf("expected component 'advisor', got %v", entry["component"])
	}
	if entry["session_id"] != "abc-123" {
		t.Errorf("expected session_id 'abc-123', got %v", entry["session_id"])
	}
	if entry["error"] != "boom" {
		t.Errorf("expected error 'boom', got %v", entry["error"])
	}
	if entry["intent"] != "smalltalk" {
		t.Errorf("expected intent 'smalltalk', got %v", entry["intent"])
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithFields(map[string]any{"a": "1", "b": "2"}).Info("multi")

	entry := logLine(t, &buf)
	if entry["a"] != "1" || entry["b"] != "2" {
		t.Errorf("expected fields a=1 b=2, got %v", entry)
	}
}

func TestFormattedHelpers(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)

	log.Infof("loaded %d courses", 42)

	entry := logLine(t, &buf)
	if entry["message"] != "loaded 42 courses" {
		t.Errorf("expected formatted message, got %v", entry["message"])
	}
}
