package store

import (
	"context"
	"sync"

	"anchorledger/internal/session/models"
	"anchorledger/pkg/domain"
	"anchorledger/pkg/platform/sentinel"
)

// InMemory holds session and nonce state behind one mutex. The nonce
// compare-and-increment in BeginOperation is the serialization point for
// concurrent callers targeting the same session.
type InMemory struct {
	mu       sync.Mutex
	sessions map[uint64]models.InteractionSession
	nextID   uint64
}

func NewInMemory() *InMemory {
	return &InMemory{sessions: make(map[uint64]models.InteractionSession)}
}

// Create allocates a fresh session ID and stores the session with zeroed
// nonce and operation count.
func (s *InMemory) Create(_ context.Context, initiator domain.Address, createdAt uint64) (models.InteractionSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	session := models.InteractionSession{
		SessionID: s.nextID,
		Initiator: initiator,
		CreatedAt: createdAt,
	}
	s.sessions[session.SessionID] = session
	return session, nil
}

// Find returns the current session state.
func (s *InMemory) Find(_ context.Context, sessionID uint64) (models.InteractionSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return models.InteractionSession{}, sentinel.ErrNotFound
	}
	return session, nil
}

// BeginOperation performs the nonce compare-and-increment. On a match it
// increments the session nonce, assigns the next operation index, and returns
// a pending operation context. A mismatch returns ErrStaleNonce and leaves
// the session untouched.
func (s *InMemory) BeginOperation(_ context.Context, sessionID, expectedNonce uint64, opType string, timestamp uint64) (models.OperationContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return models.OperationContext{}, sentinel.ErrNotFound
	}
	if session.Nonce != expectedNonce {
		return models.OperationContext{}, sentinel.ErrStaleNonce
	}

	op := models.OperationContext{
		SessionID:      sessionID,
		OperationIndex: session.OperationCount,
		OperationType:  opType,
		Timestamp:      timestamp,
		Status:         models.StatusPending,
	}
	session.Nonce++
	session.OperationCount++
	s.sessions[sessionID] = session
	return op, nil
}

// Rollback undoes the increments of a begun operation whose execution failed,
// so the caller can retry with the same nonce. Only the most recently begun
// operation can be rolled back; anything else is a conflict.
func (s *InMemory) Rollback(_ context.Context, op models.OperationContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[op.SessionID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if session.OperationCount != op.OperationIndex+1 {
		return sentinel.ErrConflict
	}
	session.Nonce--
	session.OperationCount--
	s.sessions[op.SessionID] = session
	return nil
}
