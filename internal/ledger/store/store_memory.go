package store

import (
	"context"
	"sync"

	"anchorledger/internal/ledger/models"
)

// InMemory is the append-only audit log. Entries are held in append order;
// the slice index plus one is the log ID, which makes the gapless total
// order structural rather than checked.
type InMemory struct {
	mu      sync.RWMutex
	entries []models.AuditLog
	// bySession indexes entry positions per session, ordered by operation
	// index because appends within a session are ordered.
	bySession map[uint64][]int
}

func NewInMemory() *InMemory {
	return &InMemory{bySession: make(map[uint64][]int)}
}

// Append assigns the next log ID and stores the entry. This is the single
// point of total-order serialization for the whole system.
func (s *InMemory) Append(_ context.Context, entry models.AuditLog) (models.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.LogID = uint64(len(s.entries)) + 1
	s.entries = append(s.entries, entry)
	s.bySession[entry.SessionID] = append(s.bySession[entry.SessionID], len(s.entries)-1)
	return entry, nil
}

// ListRange returns the session's entries with operation index in
// [fromIndex, toIndex), ordered by operation index, at most limit entries.
// limit <= 0 means no limit.
func (s *InMemory) ListRange(_ context.Context, sessionID, fromIndex, toIndex uint64, limit int) ([]models.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AuditLog
	for _, pos := range s.bySession[sessionID] {
		entry := s.entries[pos]
		idx := entry.Operation.OperationIndex
		if idx < fromIndex || idx >= toIndex {
			continue
		}
		out = append(out, entry)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Len returns the number of appended entries.
func (s *InMemory) Len(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.entries)), nil
}
