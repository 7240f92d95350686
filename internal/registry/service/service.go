package service

import (
	"context"
	"errors"
	"log/slog"

	ledgermodels "anchorledger/internal/ledger/models"
	"anchorledger/internal/registry/models"
	sessionmodels "anchorledger/internal/session/models"
	"anchorledger/pkg/domain"
	dErrors "anchorledger/pkg/domain-errors"
	"anchorledger/pkg/platform/sentinel"
	"anchorledger/pkg/requestcontext"
)

// Store owns endpoint and anchor-service records.
type Store interface {
	CreateEndpoint(ctx context.Context, endpoint models.Endpoint) error
	FindEndpoint(ctx context.Context, attestor domain.Address) (models.Endpoint, error)
	SetEndpointActive(ctx context.Context, attestor domain.Address, active bool) (models.Endpoint, error)
	SaveServices(ctx context.Context, services models.AnchorServices) error
	FindServices(ctx context.Context, anchor domain.Address) (models.AnchorServices, error)
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

// Service manages the endpoint and anchor-service registry. Lookups are
// read-only and unwrapped; registrations are session-wrapped, audited
// mutations.
type Service struct {
	registry Store
	sessions Sessions
	ledger   Ledger
	logger   *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a logger for operational events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(registry Store, sessions Sessions, ledger Ledger, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		sessions: sessions,
		ledger:   ledger,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterEndpoint records an attestor's endpoint. One endpoint per attestor.
func (s *Service) RegisterEndpoint(ctx context.Context, ref sessionmodels.Ref, endpoint models.Endpoint) (models.Endpoint, error) {
	if endpoint.Attestor.IsZero() {
		return models.Endpoint{}, dErrors.New(dErrors.CodeBadRequest, "attestor is required")
	}
	if endpoint.URL == "" {
		return models.Endpoint{}, dErrors.New(dErrors.CodeBadRequest, "endpoint url is required")
	}

	op, err := s.sessions.Begin(ctx, ref, sessionmodels.OpTypeRegister)
	if err != nil {
		return models.Endpoint{}, err
	}

	if err := s.registry.CreateEndpoint(ctx, endpoint); err != nil {
		s.sessions.Abort(ctx, op)
		if errors.Is(err, sentinel.ErrConflict) {
			return models.Endpoint{}, dErrors.New(dErrors.CodeConflict, "attestor already has a registered endpoint")
		}
		return models.Endpoint{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store endpoint")
	}

	op = s.sessions.Finalize(op, sessionmodels.StatusSuccess, 0)
	if _, err := s.ledger.Append(ctx, op, requestcontext.Actor(ctx)); err != nil {
		// Release the nonce so the caller can retry. The endpoint record
		// survives; re-registering reports Conflict.
		s.sessions.Abort(ctx, op)
		return models.Endpoint{}, err
	}

	s.logger.InfoContext(ctx, "endpoint registered",
		"attestor", endpoint.Attestor,
		"url", endpoint.URL,
		"active", endpoint.IsActive,
	)
	return endpoint, nil
}

// SetEndpointActive activates or deactivates an attestor's endpoint.
// Attestation issuance is rejected while the endpoint is inactive.
func (s *Service) SetEndpointActive(ctx context.Context, ref sessionmodels.Ref, attestor domain.Address, active bool) (models.Endpoint, error) {
	if attestor.IsZero() {
		return models.Endpoint{}, dErrors.New(dErrors.CodeBadRequest, "attestor is required")
	}

	op, err := s.sessions.Begin(ctx, ref, sessionmodels.OpTypeRegister)
	if err != nil {
		return models.Endpoint{}, err
	}

	endpoint, err := s.registry.SetEndpointActive(ctx, attestor, active)
	if err != nil {
		s.sessions.Abort(ctx, op)
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Endpoint{}, dErrors.New(dErrors.CodeNotFound, "endpoint not registered")
		}
		return models.Endpoint{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update endpoint")
	}

	op = s.sessions.Finalize(op, sessionmodels.StatusSuccess, 0)
	if _, err := s.ledger.Append(ctx, op, requestcontext.Actor(ctx)); err != nil {
		s.sessions.Abort(ctx, op)
		return models.Endpoint{}, err
	}
	return endpoint, nil
}

// RegisterServices records the capability set an anchor is authorized for,
// replacing any previous set.
func (s *Service) RegisterServices(ctx context.Context, ref sessionmodels.Ref, anchor domain.Address, serviceTypes []models.ServiceType) (models.AnchorServices, error) {
	if anchor.IsZero() {
		return models.AnchorServices{}, dErrors.New(dErrors.CodeBadRequest, "anchor is required")
	}
	if len(serviceTypes) == 0 {
		return models.AnchorServices{}, dErrors.New(dErrors.CodeBadRequest, "at least one service type is required")
	}
	for _, svc := range serviceTypes {
		if !svc.Valid() {
			return models.AnchorServices{}, dErrors.Newf(dErrors.CodeValidation, "invalid service type %d", svc)
		}
	}

	services := models.NewAnchorServices(anchor, serviceTypes)

	op, err := s.sessions.Begin(ctx, ref, sessionmodels.OpTypeRegister)
	if err != nil {
		return models.AnchorServices{}, err
	}

	if err := s.registry.SaveServices(ctx, services); err != nil {
		s.sessions.Abort(ctx, op)
		return models.AnchorServices{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store anchor services")
	}

	op = s.sessions.Finalize(op, sessionmodels.StatusSuccess, 0)
	if _, err := s.ledger.Append(ctx, op, requestcontext.Actor(ctx)); err != nil {
		s.sessions.Abort(ctx, op)
		return models.AnchorServices{}, err
	}

	s.logger.InfoContext(ctx, "anchor services registered",
		"anchor", anchor,
		"services", len(services.Services),
	)
	return services, nil
}

// LookupEndpoint is the read-only endpoint lookup consumed by the
// attestation registry. Absence is reported as sentinel.ErrNotFound.
func (s *Service) LookupEndpoint(ctx context.Context, attestor domain.Address) (models.Endpoint, error) {
	return s.registry.FindEndpoint(ctx, attestor)
}

// LookupServices is the read-only capability lookup consumed by the quote
// aggregator. Absence is reported as sentinel.ErrNotFound.
func (s *Service) LookupServices(ctx context.Context, anchor domain.Address) (models.AnchorServices, error) {
	return s.registry.FindServices(ctx, anchor)
}
