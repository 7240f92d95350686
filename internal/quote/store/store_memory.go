package store

import (
	"context"
	"sync"

	"anchorledger/internal/quote/models"
	"anchorledger/pkg/domain"
	"anchorledger/pkg/platform/sentinel"
)

type quoteKey struct {
	anchor     domain.Address
	baseAsset  string
	quoteAsset string
	quoteID    uint64
}

type pairKey struct {
	baseAsset  string
	quoteAsset string
}

// InMemory stores submitted quotes keyed by (anchor, pair, quote ID).
// Quotes are immutable; expired ones stay stored and are filtered at
// comparison time.
type InMemory struct {
	mu     sync.RWMutex
	quotes map[quoteKey]models.QuoteData
	byPair map[pairKey][]quoteKey
}

func NewInMemory() *InMemory {
	return &InMemory{
		quotes: make(map[quoteKey]models.QuoteData),
		byPair: make(map[pairKey][]quoteKey),
	}
}

// Save stores a new quote. Resubmitting an existing key is a conflict.
func (s *InMemory) Save(_ context.Context, q models.QuoteData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := quoteKey{anchor: q.Anchor, baseAsset: q.BaseAsset, quoteAsset: q.QuoteAsset, quoteID: q.QuoteID}
	if _, exists := s.quotes[key]; exists {
		return sentinel.ErrConflict
	}

	s.quotes[key] = q
	pair := pairKey{baseAsset: q.BaseAsset, quoteAsset: q.QuoteAsset}
	s.byPair[pair] = append(s.byPair[pair], key)
	return nil
}

// ListPair returns all stored quotes for the asset pair, expired included.
func (s *InMemory) ListPair(_ context.Context, baseAsset, quoteAsset string) ([]models.QuoteData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := s.byPair[pairKey{baseAsset: baseAsset, quoteAsset: quoteAsset}]
	out := make([]models.QuoteData, 0, len(keys))
	for _, key := range keys {
		out = append(out, s.quotes[key])
	}
	return out, nil
}
