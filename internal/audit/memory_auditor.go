package audit

import (
	"sync"

	"github.com/KartikZCoding/campusgate/internal/core"
)

var (
	_ core.Auditor     = (*InMemoryAuditor)(nil)
	_ core.AuditReader = (*InMemoryAuditor)(nil)
)

// maxMemoryEntries bounds the in-memory trail; once reached, the oldest
// entries are dropped. Deployments that need the full history use the file
// auditor instead.
const maxMemoryEntries = 10_000

// InMemoryAuditor keeps the audit trail in memory and supports querying it
// back through the admin endpoints.
type InMemoryAuditor struct {
	mu      sync.Mutex
	entries []core.AuditEntry
}

func NewInMemoryAuditor() *InMemoryAuditor {
	return &InMemoryAuditor{}
}

func (a *InMemoryAuditor) Log(entry core.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = append(a.entries, entry)
	if len(a.entries) > maxMemoryEntries {
		a.entries = a.entries[len(a.entries)-maxMemoryEntries:]
	}
	return nil
}

// GetRecent returns up to limit entries, oldest first. A non-positive limit
// yields no entries.
func (a *InMemoryAuditor) GetRecent(limit int) ([]core.AuditEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > len(a.entries) {
		limit = len(a.entries)
	}
	recent := make([]core.AuditEntry, limit)
	copy(recent, a.entries[len(a.entries)-limit:])
	return recent, nil
}

// Find returns up to limit matching entries, oldest first. A non-positive
// limit yields no entries.
func (a *InMemoryAuditor) Find(filter func(entry core.AuditEntry) bool, limit int) ([]core.AuditEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if limit < 0 {
		limit = 0
	}

	var matches []core.AuditEntry
	for _, entry := range a.entries {
		if filter(entry) {
			matches = append(matches, entry)
		}
	}
	if len(matches) > limit {
		matches = matches[len(matches)-limit:]
	}
	return matches, nil
}

func (a *InMemoryAuditor) Close() error {
	return nil
}
