package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// defaultMaxLogBytes is the size at which the audit log is rotated to
// <path>.1 before the next write.
const defaultMaxLogBytes = 10 * 1024 * 1024

type PegEvent struct {
	ID               string   `json:"id"`
	Timestamp        string   `json:"timestamp"`
	Sender           string   `json:"sender,omitempty"`
	Receiver         string   `json:"receiver,omitempty"`
	SenderLocation   string   `json:"sender_location,omitempty"`
	ReceiverLocation string   `json:"receiver_location,omitempty"`
	Comment          string   `json:"comment"`
	Outcome          string   `json:"outcome"`
	Valid            bool     `json:"valid"`
	Penalty          bool     `json:"penalty"`
	Weight           int      `json:"weight"`
	RequireKeywords  bool     `json:"require_keywords"`
	MatchedKeywords  []string `json:"matched_keywords,omitempty"`
	MatchedPenalty   []string `json:"matched_penalty,omitempty"`
	CatalogSource    string   `json:"catalog_source,omitempty"`
	Error            string   `json:"error,omitempty"`
}

type AuditLogger struct {
	path     string
	file     *os.File
	maxBytes int64
	mu       sync.Mutex
}

func New(path string) (*AuditLogger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}

	return &AuditLogger{path: path, file: file, maxBytes: defaultMaxLogBytes}, nil
}

// Log appends event as one JSON line, filling in ID and Timestamp when empty.
func (l *AuditLogger) Log(event PegEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return os.ErrClosed
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	if err := l.rotateIfNeeded(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = l.file.Write(data)
	return err
}

func (l *AuditLogger) rotateIfNeeded() error {
	info, err := l.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() < l.maxBytes {
		return nil
	}

	// The open handle follows the renamed file, so it stays usable until
	// the new file is open.
	if err := os.Rename(l.path, l.path+".1"); err != nil {
		return fmt.Errorf("rotate audit log: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("rotate audit log: %w", err)
	}
	_ = l.file.Close()
	l.file = file
	return nil
}

func (l *AuditLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// ReadEvents reads every event from an audit log. A missing file yields no
// events; malformed lines are skipped.
func ReadEvents(path string) ([]PegEvent, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var events []PegEvent
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var event PegEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	return events, scanner.Err()
}
