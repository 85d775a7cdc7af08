package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/KartikZCoding/campusgate/internal/core"
)

var _ core.Auditor = (*FileAuditor)(nil)

// FileAuditor appends audit entries to a file, one JSON object per line.
// The file is the durable record of who logged in and which tokens were
// rejected; it is never truncated by the service.
type FileAuditor struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
}

func NewFileAuditor(path string) (*FileAuditor, error) {
	// audit entries carry usernames, keep the file private
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening audit log file: %w", err)
	}
	return &FileAuditor{
		file:    file,
		encoder: json.NewEncoder(file),
	}, nil
}

func (f *FileAuditor) Log(entry core.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.encoder.Encode(entry); err != nil {
		return fmt.Errorf("writing audit log entry: %w", err)
	}
	return nil
}

func (f *FileAuditor) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.file.Sync(); err != nil {
		return fmt.Errorf("syncing audit log: %w", err)
	}
	return f.file.Close()
}
