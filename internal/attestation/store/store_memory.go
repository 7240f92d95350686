package store

import (
	"context"
	"sync"

	"anchorledger/internal/attestation/models"
	"anchorledger/pkg/platform/sentinel"
)

// InMemory owns attestation identity allocation: IDs are handed out by a
// monotonic counter under the store lock, so Create is the atomic
// check-then-allocate for duplicate claims.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[uint64]models.Attestation
	byClaim map[[32]byte]uint64
	nextID  uint64
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[uint64]models.Attestation),
		byClaim: make(map[[32]byte]uint64),
	}
}

// Create allocates a fresh ID and stores the attestation. An identical claim
// (same issuer, subject, hash, timestamp, and signature) is a conflict.
func (s *InMemory) Create(_ context.Context, att models.Attestation) (models.Attestation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim := att.ClaimFingerprint()
	if _, exists := s.byClaim[claim]; exists {
		return models.Attestation{}, sentinel.ErrConflict
	}

	s.nextID++
	att.ID = s.nextID
	s.byID[att.ID] = att
	s.byClaim[claim] = att.ID
	return att, nil
}

// FindByID returns the attestation with the given ID.
func (s *InMemory) FindByID(_ context.Context, id uint64) (models.Attestation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	att, ok := s.byID[id]
	if !ok {
		return models.Attestation{}, sentinel.ErrNotFound
	}
	return att, nil
}

// ExistsClaim reports whether an identical claim was already stored.
func (s *InMemory) ExistsClaim(_ context.Context, att models.Attestation) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.byClaim[att.ClaimFingerprint()]
	return exists, nil
}
