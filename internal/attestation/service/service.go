package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	attmetrics "anchorledger/internal/attestation/metrics"
	"anchorledger/internal/attestation/models"
	ledgermodels "anchorledger/internal/ledger/models"
	registrymodels "anchorledger/internal/registry/models"
	sessionmodels "anchorledger/internal/session/models"
	"anchorledger/pkg/domain"
	dErrors "anchorledger/pkg/domain-errors"
	"anchorledger/pkg/platform/sentinel"
	"anchorledger/pkg/requestcontext"
)

// Store owns attestation identity allocation and storage.
type Store interface {
	Create(ctx context.Context, att models.Attestation) (models.Attestation, error)
	FindByID(ctx context.Context, id uint64) (models.Attestation, error)
	ExistsClaim(ctx context.Context, att models.Attestation) (bool, error)
}

// EndpointSource is the external registry lookup. Absence is reported as
// sentinel.ErrNotFound.
type EndpointSource interface {
	LookupEndpoint(ctx context.Context, attestor domain.Address) (registrymodels.Endpoint, error)
}

// SignatureVerifier is the host-supplied verify primitive. The service never
// implements cryptography itself.
type SignatureVerifier interface {
	Verify(issuer domain.Address, message, signature []byte) bool
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

// IssueRequest carries one attestation issuance.
type IssueRequest struct {
	Session     sessionmodels.Ref
	Issuer      domain.Address
	Subject     domain.Address
	Timestamp   uint64
	PayloadHash []byte
	Signature   []byte
}

// Service issues and verifies attestations.
type Service struct {
	attestations Store
	endpoints    EndpointSource
	verifier     SignatureVerifier
	sessions     Sessions
	ledger       Ledger
	logger       *slog.Logger
	metrics      *attmetrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a logger for operational events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *attmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(attestations Store, endpoints EndpointSource, verifier SignatureVerifier, sessions Sessions, ledger Ledger, opts ...Option) *Service {
	s := &Service{
		attestations: attestations,
		endpoints:    endpoints,
		verifier:     verifier,
		sessions:     sessions,
		ledger:       ledger,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue validates and stores one attestation. Validation order matters: all
// checks run before the session nonce is consumed or any state is written,
// so a rejected issuance leaves no trace and the caller retries with the
// same nonce.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (models.Attestation, error) {
	start := time.Now()

	if err := validateIssueRequest(req); err != nil {
		return models.Attestation{}, err
	}

	endpoint, err := s.endpoints.LookupEndpoint(ctx, req.Issuer)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Attestation{}, dErrors.New(dErrors.CodeInactiveIssuer, "issuer has no registered endpoint")
		}
		return models.Attestation{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up issuer endpoint")
	}
	if !endpoint.IsActive {
		return models.Attestation{}, dErrors.New(dErrors.CodeInactiveIssuer, "issuer endpoint is deactivated")
	}

	message := models.CanonicalMessage(req.Issuer, req.Subject, req.PayloadHash, req.Timestamp)
	if !s.verifier.Verify(req.Issuer, message, req.Signature) {
		s.logger.WarnContext(ctx, "attestation signature rejected",
			"issuer", req.Issuer,
			"subject", req.Subject,
		)
		return models.Attestation{}, dErrors.New(dErrors.CodeInvalidSignature, "signature does not verify against the claim")
	}

	att := models.Attestation{
		Issuer:      req.Issuer,
		Subject:     req.Subject,
		Timestamp:   req.Timestamp,
		PayloadHash: req.PayloadHash,
		Signature:   req.Signature,
	}

	// Cheap pre-check so an obvious duplicate fails before the nonce is
	// consumed. Create still enforces uniqueness for racing requests.
	if exists, err := s.attestations.ExistsClaim(ctx, att); err != nil {
		return models.Attestation{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check claim")
	} else if exists {
		return models.Attestation{}, dErrors.New(dErrors.CodeConflict, "duplicate attestation")
	}

	op, err := s.sessions.Begin(ctx, req.Session, sessionmodels.OpTypeAttest)
	if err != nil {
		return models.Attestation{}, err
	}

	att, err = s.attestations.Create(ctx, att)
	if err != nil {
		s.sessions.Abort(ctx, op)
		if errors.Is(err, sentinel.ErrConflict) {
			return models.Attestation{}, dErrors.New(dErrors.CodeConflict, "duplicate attestation")
		}
		return models.Attestation{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store attestation")
	}

	op = s.sessions.Finalize(op, sessionmodels.StatusSuccess, att.ID)
	if _, err := s.ledger.Append(ctx, op, requestcontext.Actor(ctx)); err != nil {
		// Release the nonce so the caller can retry. The attestation
		// survives; retrying the same claim reports Conflict.
		s.sessions.Abort(ctx, op)
		return models.Attestation{}, err
	}

	s.metrics.IncrementIssued()
	s.metrics.ObserveIssue(start)
	s.logger.InfoContext(ctx, "attestation issued",
		"attestation_id", att.ID,
		"issuer", att.Issuer,
		"subject", att.Subject,
	)
	return att, nil
}

// Verify reports whether the attestation exists and its payload hash matches
// the expected one. Unknown IDs and mismatched hashes are false, not errors:
// this is a query, not a mutation, and is not session-wrapped.
func (s *Service) Verify(ctx context.Context, id uint64, expectedPayloadHash []byte) (bool, error) {
	att, err := s.attestations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementVerification("invalid")
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load attestation")
	}

	if !bytes.Equal(att.PayloadHash, expectedPayloadHash) {
		s.metrics.IncrementVerification("invalid")
		return false, nil
	}
	s.metrics.IncrementVerification("valid")
	return true, nil
}

// Get returns the attestation with the given ID.
func (s *Service) Get(ctx context.Context, id uint64) (models.Attestation, error) {
	att, err := s.attestations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Attestation{}, dErrors.New(dErrors.CodeNotFound, "unknown attestation")
		}
		return models.Attestation{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load attestation")
	}
	return att, nil
}

func validateIssueRequest(req IssueRequest) error {
	switch {
	case req.Issuer.IsZero():
		return dErrors.New(dErrors.CodeBadRequest, "issuer is required")
	case req.Subject.IsZero():
		return dErrors.New(dErrors.CodeBadRequest, "subject is required")
	case req.Timestamp == 0:
		return dErrors.New(dErrors.CodeBadRequest, "timestamp is required")
	case len(req.PayloadHash) != models.PayloadHashSize:
		return dErrors.Newf(dErrors.CodeBadRequest, "payload hash must be %d bytes", models.PayloadHashSize)
	case len(req.Signature) == 0:
		return dErrors.New(dErrors.CodeBadRequest, "signature is required")
	}
	return nil
}
