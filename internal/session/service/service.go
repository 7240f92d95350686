package service

import (
	"context"
	"errors"
	"log/slog"

	sessionmetrics "anchorledger/internal/session/metrics"
	"anchorledger/internal/session/models"
	"anchorledger/pkg/domain"
	dErrors "anchorledger/pkg/domain-errors"
	"anchorledger/pkg/platform/sentinel"
	"anchorledger/pkg/requestcontext"
)

// Store owns session and nonce state. BeginOperation must be atomic: the
// nonce check and increment happen under one lock so two callers presenting
// the same nonce cannot both succeed.
type Store interface {
	Create(ctx context.Context, initiator domain.Address, createdAt uint64) (models.InteractionSession, error)
	Find(ctx context.Context, sessionID uint64) (models.InteractionSession, error)
	BeginOperation(ctx context.Context, sessionID, expectedNonce uint64, opType string, timestamp uint64) (models.OperationContext, error)
	Rollback(ctx context.Context, op models.OperationContext) error
}

// Service creates and validates interaction sessions, enforces nonce-based
// replay protection, and issues operation indices. Every mutating call in
// the system flows through Begin/Finalize.
type Service struct {
	sessions Store
	logger   *slog.Logger
	metrics  *sessionmetrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a logger for operational events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *sessionmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(sessions Store, opts ...Option) *Service {
	s := &Service{sessions: sessions, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open allocates a fresh session for the initiator with nonce and operation
// count zeroed.
func (s *Service) Open(ctx context.Context, initiator domain.Address) (models.InteractionSession, error) {
	if initiator.IsZero() {
		return models.InteractionSession{}, dErrors.New(dErrors.CodeBadRequest, "initiator is required")
	}

	session, err := s.sessions.Create(ctx, initiator, requestcontext.UnixNow(ctx))
	if err != nil {
		return models.InteractionSession{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	s.metrics.IncrementSessionsOpened()
	s.logger.InfoContext(ctx, "session opened",
		"session_id", session.SessionID,
		"initiator", session.Initiator,
	)
	return session, nil
}

// Get returns the current session state, including the nonce a caller must
// present next.
func (s *Service) Get(ctx context.Context, sessionID uint64) (models.InteractionSession, error) {
	session, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.InteractionSession{}, dErrors.New(dErrors.CodeNotFound, "unknown session")
		}
		return models.InteractionSession{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	return session, nil
}

// Begin validates the presented nonce and opens a pending operation context.
// A stale or repeated nonce is rejected; retry is the caller's responsibility
// with a refreshed nonce read.
func (s *Service) Begin(ctx context.Context, ref models.Ref, opType string) (models.OperationContext, error) {
	op, err := s.sessions.BeginOperation(ctx, ref.SessionID, ref.Nonce, opType, requestcontext.UnixNow(ctx))
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return models.OperationContext{}, dErrors.New(dErrors.CodeNotFound, "unknown session")
		case errors.Is(err, sentinel.ErrStaleNonce):
			s.metrics.IncrementReplayRejected()
			s.logger.WarnContext(ctx, "replay rejected",
				"session_id", ref.SessionID,
				"presented_nonce", ref.Nonce,
			)
			return models.OperationContext{}, dErrors.New(dErrors.CodeReplayRejected, "nonce does not match session state")
		default:
			return models.OperationContext{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin operation")
		}
	}

	s.metrics.IncrementOperationsBegun(opType)
	return op, nil
}

// Finalize fills in the operation's final status and result data. The
// returned context is what the audit ledger persists.
func (s *Service) Finalize(op models.OperationContext, status string, resultData uint64) models.OperationContext {
	op.Status = status
	op.ResultData = resultData
	return op
}

// Abort undoes a begun operation whose execution failed, releasing the
// consumed nonce so the caller can retry with the same value. Failure to
// roll back is logged but not surfaced; the originating error matters more.
func (s *Service) Abort(ctx context.Context, op models.OperationContext) {
	if err := s.sessions.Rollback(ctx, op); err != nil {
		s.logger.ErrorContext(ctx, "operation rollback failed",
			"session_id", op.SessionID,
			"operation_index", op.OperationIndex,
			"error", err,
		)
	}
}
