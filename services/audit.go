package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// AuditLog is the flat phishing-URL file: one URL per line, append only.
type AuditLog struct {
	path string

	mu   sync.Mutex
	file *os.File
}

func OpenAuditLog(path string) (*AuditLog, error) {
	if path == "" {
		return nil, fmt.Errorf("audit file path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir audit dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit file: %w", err)
	}
	return &AuditLog{path: path, file: f}, nil
}

func (a *AuditLog) Path() string { return a.path }

// Append writes url followed by a newline. Embedded line breaks are flattened
// so one submission is always exactly one line.
func (a *AuditLog) Append(url string) error {
	line := strings.NewReplacer("\r", " ", "\n", " ").Replace(url) + "\n"

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.file == nil {
		return os.ErrClosed
	}
	if _, err := a.file.WriteString(line); err != nil {
		return fmt.Errorf("write audit line: %w", err)
	}
	return nil
}

func (a *AuditLog) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	return err
}
