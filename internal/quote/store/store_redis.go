package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"anchorledger/internal/quote/models"
	"anchorledger/pkg/platform/sentinel"
)

// retentionGrace keeps expired quotes readable for a day after expiry.
// Comparison-time filtering is what excludes them from results; the TTL is
// only a retention policy so the keyspace does not grow without bound.
const retentionGrace = 24 * time.Hour

// Redis stores quotes as JSON values under pair-scoped keys. SET NX keeps
// submitted quotes immutable.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func quoteRedisKey(q models.QuoteData) string {
	return fmt.Sprintf("quote:%s:%s:%s:%d", q.BaseAsset, q.QuoteAsset, q.Anchor, q.QuoteID)
}

// Save stores a new quote. Resubmitting an existing key is a conflict.
func (s *Redis) Save(ctx context.Context, q models.QuoteData) error {
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal quote: %w", err)
	}

	ttl := time.Until(time.Unix(int64(q.ValidUntil), 0).Add(retentionGrace))
	if ttl <= 0 {
		ttl = retentionGrace
	}

	ok, err := s.client.SetNX(ctx, quoteRedisKey(q), payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("store quote: %w", err)
	}
	if !ok {
		return sentinel.ErrConflict
	}
	return nil
}

// ListPair returns all stored quotes for the asset pair.
func (s *Redis) ListPair(ctx context.Context, baseAsset, quoteAsset string) ([]models.QuoteData, error) {
	pattern := fmt.Sprintf("quote:%s:%s:*", baseAsset, quoteAsset)

	var (
		out    []models.QuoteData
		cursor uint64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scan quotes: %w", err)
		}
		for _, key := range keys {
			raw, err := s.client.Get(ctx, key).Bytes()
			if err == redis.Nil {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("load quote %s: %w", key, err)
			}
			var q models.QuoteData
			if err := json.Unmarshal(raw, &q); err != nil {
				return nil, fmt.Errorf("decode quote %s: %w", key, err)
			}
			out = append(out, q)
		}
		if next == 0 {
			return out, nil
		}
		cursor = next
	}
}
