package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAuditLogger_Log(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test_audit.jsonl")

	logger, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		_ = logger.Close()
	}()

	event := PegEvent{
		Timestamp:       "2026-02-02T12:00:00Z",
		Sender:          "alice",
		Receiver:        "bob",
		Comment:         "so brave",
		Outcome:         "PEG",
		Valid:           true,
		Weight:          2,
		MatchedKeywords: []string{"brave"},
	}

	if err := logger.Log(event); err != nil {
		t.Fatalf("failed to log event: %v", err)
	}

	_ = logger.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var parsed PegEvent
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("failed to parse log line as JSON: %v", err)
	}

	if parsed.Comment != "so brave" {
		t.Errorf("expected comment 'so brave', got '%s'", parsed.Comment)
	}
	if parsed.Outcome != "PEG" {
		t.Errorf("expected outcome 'PEG', got '%s'", parsed.Outcome)
	}
	if parsed.Timestamp != "2026-02-02T12:00:00Z" {
		t.Errorf("expected timestamp to be kept, got '%s'", parsed.Timestamp)
	}
	if parsed.ID == "" {
		t.Error("expected an event ID to be generated")
	}
}

func TestAuditLogger_Rotation(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "audit.jsonl")

	// Pre-create the log file already at the rotation limit.
	big := make([]byte, defaultMaxLogBytes)
	if err := os.WriteFile(logPath, big, 0600); err != nil {
		t.Fatalf("failed to seed large log file: %v", err)
	}

	lg, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = lg.Close() }()

	event := PegEvent{
		Timestamp: "2026-03-01T00:00:00Z",
		Comment:   "thanks",
		Outcome:   "PEG",
	}
	if err := lg.Log(event); err != nil {
		t.Fatalf("Log after rotation failed: %v", err)
	}

	if _, err := os.Stat(logPath + ".1"); err != nil {
		t.Errorf("expected rotated file %s.1 to exist: %v", logPath, err)
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("fresh log file missing: %v", err)
	}
	if info.Size() >= defaultMaxLogBytes {
		t.Errorf("fresh log file is still %d bytes; expected < %d", info.Size(), defaultMaxLogBytes)
	}
}

func TestAuditLogger_RotationFailureRecovers(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "audit.jsonl")

	lg, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = lg.Close() }()
	lg.maxBytes = 1

	if err := lg.Log(PegEvent{Comment: "first", Outcome: "PEG"}); err != nil {
		t.Fatalf("first Log failed: %v", err)
	}

	// A non-empty directory in the way makes the rename fail.
	blocker := logPath + ".1"
	if err := os.MkdirAll(filepath.Join(blocker, "x"), 0700); err != nil {
		t.Fatalf("failed to create blocker: %v", err)
	}
	if err := lg.Log(PegEvent{Comment: "blocked", Outcome: "PEG"}); err == nil {
		t.Fatal("expected rotation error while the blocker exists")
	}

	if err := os.RemoveAll(blocker); err != nil {
		t.Fatalf("failed to remove blocker: %v", err)
	}
	if err := lg.Log(PegEvent{Comment: "second", Outcome: "PEG"}); err != nil {
		t.Fatalf("Log after the blocker was removed failed: %v", err)
	}

	events, err := ReadEvents(logPath)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(events) != 1 || events[0].Comment != "second" {
		t.Errorf("expected only the second event in the fresh log, got %+v", events)
	}
	rotated, err := ReadEvents(blocker)
	if err != nil {
		t.Fatalf("ReadEvents on rotated log failed: %v", err)
	}
	if len(rotated) != 1 || rotated[0].Comment != "first" {
		t.Errorf("expected the first event in the rotated log, got %+v", rotated)
	}
}

func TestAuditLogger_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "secure_audit.jsonl")

	logger, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	_ = logger.Close()

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("failed to stat log file: %v", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		t.Errorf("expected file permissions 0600, got %04o", perm)
	}
}

func TestAuditLogger_LogAfterClose(t *testing.T) {
	logger, err := New(filepath.Join(t.TempDir(), "audit.jsonl"))
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	_ = logger.Close()

	if err := logger.Log(PegEvent{Comment: "late"}); !errors.Is(err, os.ErrClosed) {
		t.Errorf("expected os.ErrClosed, got %v", err)
	}
}

func TestReadEvents(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	events, err := ReadEvents(logPath)
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}

	lg, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, outcome := range []string{"PEG", "PENALTY", "INVALID"} {
		if err := lg.Log(PegEvent{Comment: "c", Outcome: outcome}); err != nil {
			t.Fatalf("failed to log: %v", err)
		}
	}
	_ = lg.Close()

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString("not json\n\n")
	_ = f.Close()

	events, err = ReadEvents(logPath)
	if err != nil {
		t.Fatalf("failed to read events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[1].Outcome != "PENALTY" {
		t.Errorf("expected second event PENALTY, got %s", events[1].Outcome)
	}
	if events[0].ID == events[1].ID {
		t.Error("expected distinct event IDs")
	}
}
