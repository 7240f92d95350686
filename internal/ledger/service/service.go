package service

import (
	"context"
	"iter"
	"log/slog"

	ledgermetrics "anchorledger/internal/ledger/metrics"
	"anchorledger/internal/ledger/models"
	sessionmodels "anchorledger/internal/session/models"
	"anchorledger/pkg/domain"
	dErrors "anchorledger/pkg/domain-errors"
)

// readPageSize bounds one store round trip during range reads.
const readPageSize = 64

// Store owns log ID allocation and entry storage. Append must allocate IDs
// under one lock so the sequence stays gapless and strictly increasing.
type Store interface {
	Append(ctx context.Context, entry models.AuditLog) (models.AuditLog, error)
	ListRange(ctx context.Context, sessionID, fromIndex, toIndex uint64, limit int) ([]models.AuditLog, error)
	Len(ctx context.Context) (uint64, error)
}

// Publisher receives appended entries for out-of-process delivery. Delivery
// is fire-and-forget: the in-process store is canonical and a publish
// failure never fails the append.
type Publisher interface {
	Publish(entry models.AuditLog)
}

// Service is the append-only audit ledger. Every finalized operation context
// in the system is persisted through Append, which is the linearization
// point for the total order of mutating actions.
type Service struct {
	entries   Store
	publisher Publisher
	logger    *slog.Logger
	metrics   *ledgermetrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a logger for operational events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *ledgermetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithPublisher attaches an async publisher for appended entries.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func New(entries Store, opts ...Option) *Service {
	s := &Service{entries: entries, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append assigns the next log ID and persists the finalized operation.
func (s *Service) Append(ctx context.Context, op sessionmodels.OperationContext, actor domain.Address) (models.AuditLog, error) {
	if op.Status == sessionmodels.StatusPending {
		return models.AuditLog{}, dErrors.New(dErrors.CodeInvariantViolation, "operation context not finalized")
	}

	entry, err := s.entries.Append(ctx, models.AuditLog{
		SessionID: op.SessionID,
		Operation: op,
		Actor:     actor,
	})
	if err != nil {
		return models.AuditLog{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to append audit entry")
	}

	s.metrics.IncrementEntriesAppended()
	s.logger.DebugContext(ctx, "audit entry appended",
		"log_id", entry.LogID,
		"session_id", entry.SessionID,
		"operation_type", entry.Operation.OperationType,
	)

	if s.publisher != nil {
		s.publisher.Publish(entry)
	}
	return entry, nil
}

// ReadRange produces the session's entries with operation index in
// [fromIndex, toIndex), ordered by operation index. The sequence is lazy
// (entries are fetched in pages as the caller iterates), finite, and
// restartable: ranging over it again re-reads from the store.
func (s *Service) ReadRange(ctx context.Context, sessionID, fromIndex, toIndex uint64) iter.Seq2[models.AuditLog, error] {
	return func(yield func(models.AuditLog, error) bool) {
		next := fromIndex
		for next < toIndex {
			page, err := s.entries.ListRange(ctx, sessionID, next, toIndex, readPageSize)
			if err != nil {
				yield(models.AuditLog{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read audit range"))
				return
			}
			if len(page) == 0 {
				return
			}
			for _, entry := range page {
				if !yield(entry, nil) {
					return
				}
			}
			next = page[len(page)-1].Operation.OperationIndex + 1
		}
	}
}

// List collects a range read into a slice for callers that want the whole
// window at once.
func (s *Service) List(ctx context.Context, sessionID, fromIndex, toIndex uint64) ([]models.AuditLog, error) {
	var out []models.AuditLog
	for entry, err := range s.ReadRange(ctx, sessionID, fromIndex, toIndex) {
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// Size returns the total number of appended entries across all sessions.
func (s *Service) Size(ctx context.Context) (uint64, error) {
	n, err := s.entries.Len(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read ledger size")
	}
	return n, nil
}
