package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	ledgermodels "anchorledger/internal/ledger/models"
	quotemetrics "anchorledger/internal/quote/metrics"
	"anchorledger/internal/quote/models"
	registrymodels "anchorledger/internal/registry/models"
	sessionmodels "anchorledger/internal/session/models"
	"anchorledger/pkg/domain"
	dErrors "anchorledger/pkg/domain-errors"
	"anchorledger/pkg/platform/sentinel"
	"anchorledger/pkg/requestcontext"
)

// Store owns submitted quote storage.
type Store interface {
	Save(ctx context.Context, q models.QuoteData) error
	ListPair(ctx context.Context, baseAsset, quoteAsset string) ([]models.QuoteData, error)
}

// ServiceSource is the external capability lookup. Absence is reported as
// sentinel.ErrNotFound.
type ServiceSource interface {
	LookupServices(ctx context.Context, anchor domain.Address) (registrymodels.AnchorServices, error)
}

// Sessions wraps mutations in replay-protected operations.
type Sessions interface {
	Begin(ctx context.Context, ref sessionmodels.Ref, opType string) (sessionmodels.OperationContext, error)
	Finalize(op sessionmodels.OperationContext, status string, resultData uint64) sessionmodels.OperationContext
	Abort(ctx context.Context, op sessionmodels.OperationContext)
}

// Ledger records finalized operations.
type Ledger interface {
	Append(ctx context.Context, op sessionmodels.OperationContext, actor domain.Address) (ledgermodels.AuditLog, error)
}

// Service collects quotes from anchors and computes rate comparisons.
type Service struct {
	quotes   Store
	services ServiceSource
	sessions Sessions
	ledger   Ledger
	logger   *slog.Logger
	metrics  *quotemetrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a logger for operational events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *quotemetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(quotes Store, services ServiceSource, sessions Sessions, ledger Ledger, opts ...Option) *Service {
	s := &Service{
		quotes:   quotes,
		services: services,
		sessions: sessions,
		ledger:   ledger,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates and stores one quote. All checks run before the session
// nonce is consumed, so a rejected submission leaves no trace.
func (s *Service) Submit(ctx context.Context, ref sessionmodels.Ref, q models.QuoteData) (models.QuoteData, error) {
	now := requestcontext.UnixNow(ctx)
	if err := validateQuote(q, now); err != nil {
		return models.QuoteData{}, err
	}

	services, err := s.services.LookupServices(ctx, q.Anchor)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.QuoteData{}, dErrors.New(dErrors.CodeForbidden, "anchor has no registered services")
		}
		return models.QuoteData{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up anchor services")
	}
	if !services.Supports(registrymodels.ServiceQuotes) {
		return models.QuoteData{}, dErrors.New(dErrors.CodeForbidden, "anchor is not authorized to publish quotes")
	}

	op, err := s.sessions.Begin(ctx, ref, sessionmodels.OpTypeEndpoint)
	if err != nil {
		return models.QuoteData{}, err
	}

	if err := s.quotes.Save(ctx, q); err != nil {
		s.sessions.Abort(ctx, op)
		if errors.Is(err, sentinel.ErrConflict) {
			return models.QuoteData{}, dErrors.New(dErrors.CodeConflict, "quote already submitted")
		}
		return models.QuoteData{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store quote")
	}

	op = s.sessions.Finalize(op, sessionmodels.StatusSuccess, q.QuoteID)
	if _, err := s.ledger.Append(ctx, op, requestcontext.Actor(ctx)); err != nil {
		// Release the nonce so the caller can retry. The stored quote
		// survives; retrying the same tuple reports Conflict.
		s.sessions.Abort(ctx, op)
		return models.QuoteData{}, err
	}

	s.metrics.IncrementSubmitted()
	s.logger.InfoContext(ctx, "quote submitted",
		"anchor", q.Anchor,
		"pair", q.BaseAsset+"/"+q.QuoteAsset,
		"quote_id", q.QuoteID,
	)
	return q, nil
}

// Compare selects the economically best quote for the request among all
// eligible stored quotes. The eligible set is computed before the session
// nonce is consumed: an empty result reports NoEligibleQuotes and leaves no
// trace, while a successful comparison is logged with the winning quote ID.
func (s *Service) Compare(ctx context.Context, ref sessionmodels.Ref, req models.QuoteRequest) (models.RateComparison, error) {
	start := time.Now()

	if err := validateRequest(req); err != nil {
		return models.RateComparison{}, err
	}

	now := requestcontext.UnixNow(ctx)
	stored, err := s.quotes.ListPair(ctx, req.BaseAsset, req.QuoteAsset)
	if err != nil {
		return models.RateComparison{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list quotes")
	}

	eligible, err := s.filterEligible(ctx, stored, req, now)
	if err != nil {
		return models.RateComparison{}, err
	}
	if len(eligible) == 0 {
		s.metrics.IncrementComparison("empty")
		return models.RateComparison{}, dErrors.New(dErrors.CodeNoEligibleQuotes, "no eligible quotes for request")
	}

	// Rank best-first so the result is reproducible regardless of storage
	// order.
	slices.SortFunc(eligible, func(a, b models.QuoteData) int {
		if models.Better(a, b) {
			return -1
		}
		if models.Better(b, a) {
			return 1
		}
		return 0
	})

	op, err := s.sessions.Begin(ctx, ref, sessionmodels.OpTypeComparison)
	if err != nil {
		return models.RateComparison{}, err
	}

	comparison := models.RateComparison{
		BestQuote:           eligible[0],
		AllQuotes:           eligible,
		ComparisonTimestamp: now,
	}

	op = s.sessions.Finalize(op, sessionmodels.StatusSuccess, comparison.BestQuote.QuoteID)
	if _, err := s.ledger.Append(ctx, op, requestcontext.Actor(ctx)); err != nil {
		// Nothing was written; aborting restores the no-trace state.
		s.sessions.Abort(ctx, op)
		return models.RateComparison{}, err
	}

	s.metrics.IncrementComparison("matched")
	s.metrics.ObserveComparison(start)
	return comparison, nil
}

// List returns all stored quotes for the asset pair, expired included. This
// is a read-only query; expiry filtering belongs to comparisons.
func (s *Service) List(ctx context.Context, baseAsset, quoteAsset string) ([]models.QuoteData, error) {
	if baseAsset == "" || quoteAsset == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "base and quote assets are required")
	}
	quotes, err := s.quotes.ListPair(ctx, baseAsset, quoteAsset)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list quotes")
	}
	return quotes, nil
}

// filterEligible keeps quotes that can serve the request and whose anchor is
// authorized for the requested operation type. Capability lookups are
// memoized per anchor for the duration of one comparison.
func (s *Service) filterEligible(ctx context.Context, stored []models.QuoteData, req models.QuoteRequest, now uint64) ([]models.QuoteData, error) {
	authorized := make(map[domain.Address]bool)

	var eligible []models.QuoteData
	for _, q := range stored {
		if !q.Eligible(req, now) {
			continue
		}
		allowed, seen := authorized[q.Anchor]
		if !seen {
			services, err := s.services.LookupServices(ctx, q.Anchor)
			switch {
			case errors.Is(err, sentinel.ErrNotFound):
				allowed = false
			case err != nil:
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up anchor services")
			default:
				allowed = services.Supports(req.OperationType)
			}
			authorized[q.Anchor] = allowed
		}
		if allowed {
			eligible = append(eligible, q)
		}
	}
	return eligible, nil
}

func validateQuote(q models.QuoteData, now uint64) error {
	switch {
	case q.Anchor.IsZero():
		return dErrors.New(dErrors.CodeBadRequest, "anchor is required")
	case q.BaseAsset == "" || q.QuoteAsset == "":
		return dErrors.New(dErrors.CodeBadRequest, "base and quote assets are required")
	case q.QuoteID == 0:
		return dErrors.New(dErrors.CodeBadRequest, "quote id is required")
	case q.Rate == 0:
		return dErrors.New(dErrors.CodeValidation, "rate must be positive")
	case q.MinimumAmount > q.MaximumAmount:
		return dErrors.New(dErrors.CodeValidation, "minimum amount exceeds maximum amount")
	case q.ValidUntil <= now:
		return dErrors.New(dErrors.CodeExpired, "quote is already expired")
	}
	return nil
}

func validateRequest(req models.QuoteRequest) error {
	switch {
	case req.BaseAsset == "" || req.QuoteAsset == "":
		return dErrors.New(dErrors.CodeBadRequest, "base and quote assets are required")
	case req.OperationType != registrymodels.ServiceDeposits && req.OperationType != registrymodels.ServiceWithdrawals:
		return dErrors.New(dErrors.CodeValidation, "operation type must be deposits or withdrawals")
	}
	return nil
}
