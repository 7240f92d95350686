package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	ledgermodels "anchorledger/internal/ledger/models"
	ledgerservice "anchorledger/internal/ledger/service"
	ledgerstore "anchorledger/internal/ledger/store"
	"anchorledger/internal/registry/models"
	registrystore "anchorledger/internal/registry/store"
	sessionmodels "anchorledger/internal/session/models"
	sessionservice "anchorledger/internal/session/service"
	sessionstore "anchorledger/internal/session/store"
	"anchorledger/pkg/domain"
	dErrors "anchorledger/pkg/domain-errors"
	"anchorledger/pkg/platform/sentinel"
)

// failingLedger rejects every append.
type failingLedger struct{}

func (failingLedger) Append(context.Context, sessionmodels.OperationContext, domain.Address) (ledgermodels.AuditLog, error) {
	return ledgermodels.AuditLog{}, dErrors.New(dErrors.CodeInternal, "audit log unavailable")
}

type RegistryServiceSuite struct {
	suite.Suite
	svc      *Service
	sessions *sessionservice.Service
	ledger   *ledgerservice.Service
}

func (s *RegistryServiceSuite) SetupTest() {
	s.sessions = sessionservice.New(sessionstore.NewInMemory())
	s.ledger = ledgerservice.New(ledgerstore.NewInMemory())
	s.svc = New(registrystore.NewInMemory(), s.sessions, s.ledger)
}

func TestRegistryServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceSuite))
}

func (s *RegistryServiceSuite) openRef() sessionmodels.Ref {
	session, err := s.sessions.Open(context.Background(), "operator")
	s.Require().NoError(err)
	return sessionmodels.Ref{SessionID: session.SessionID, Nonce: session.Nonce}
}

func (s *RegistryServiceSuite) TestRegisterEndpoint() {
	ctx := context.Background()
	endpoint := models.Endpoint{
		URL:      "https://attestor-1.example",
		Attestor: "attestor-1",
		IsActive: true,
	}

	s.Run("registers and audits", func() {
		ref := s.openRef()
		registered, err := s.svc.RegisterEndpoint(ctx, ref, endpoint)
		s.Require().NoError(err)
		s.Equal(endpoint, registered)

		entries, err := s.ledger.List(ctx, ref.SessionID, 0, 10)
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal(sessionmodels.OpTypeRegister, entries[0].Operation.OperationType)

		found, err := s.svc.LookupEndpoint(ctx, endpoint.Attestor)
		s.Require().NoError(err)
		s.Equal(endpoint, found)
	})

	s.Run("second registration conflicts and releases the nonce", func() {
		ref := s.openRef()
		_, err := s.svc.RegisterEndpoint(ctx, ref, endpoint)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeConflict))

		current, err := s.sessions.Get(ctx, ref.SessionID)
		s.Require().NoError(err)
		s.Equal(uint64(0), current.Nonce)
	})

	s.Run("missing url", func() {
		bad := endpoint
		bad.URL = ""
		_, err := s.svc.RegisterEndpoint(ctx, s.openRef(), bad)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("missing attestor", func() {
		bad := endpoint
		bad.Attestor = ""
		_, err := s.svc.RegisterEndpoint(ctx, s.openRef(), bad)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *RegistryServiceSuite) TestSetEndpointActive() {
	ctx := context.Background()
	endpoint := models.Endpoint{
		URL:      "https://attestor-1.example",
		Attestor: "attestor-1",
		IsActive: true,
	}
	_, err := s.svc.RegisterEndpoint(ctx, s.openRef(), endpoint)
	s.Require().NoError(err)

	s.Run("deactivates and reactivates", func() {
		updated, err := s.svc.SetEndpointActive(ctx, s.openRef(), endpoint.Attestor, false)
		s.Require().NoError(err)
		s.False(updated.IsActive)

		updated, err = s.svc.SetEndpointActive(ctx, s.openRef(), endpoint.Attestor, true)
		s.Require().NoError(err)
		s.True(updated.IsActive)
	})

	s.Run("unknown attestor", func() {
		_, err := s.svc.SetEndpointActive(ctx, s.openRef(), "unknown", false)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *RegistryServiceSuite) TestRegisterServices() {
	ctx := context.Background()

	s.Run("normalizes duplicates and order", func() {
		registered, err := s.svc.RegisterServices(ctx, s.openRef(), "anchor-1",
			[]models.ServiceType{models.ServiceQuotes, models.ServiceDeposits, models.ServiceQuotes})
		s.Require().NoError(err)
		s.Equal([]models.ServiceType{models.ServiceDeposits, models.ServiceQuotes}, registered.Services)

		services, err := s.svc.LookupServices(ctx, "anchor-1")
		s.Require().NoError(err)
		s.True(services.Supports(models.ServiceQuotes))
		s.False(services.Supports(models.ServiceKYC))
	})

	s.Run("replaces the previous set", func() {
		_, err := s.svc.RegisterServices(ctx, s.openRef(), "anchor-2",
			[]models.ServiceType{models.ServiceQuotes})
		s.Require().NoError(err)

		_, err = s.svc.RegisterServices(ctx, s.openRef(), "anchor-2",
			[]models.ServiceType{models.ServiceKYC})
		s.Require().NoError(err)

		services, err := s.svc.LookupServices(ctx, "anchor-2")
		s.Require().NoError(err)
		s.False(services.Supports(models.ServiceQuotes))
		s.True(services.Supports(models.ServiceKYC))
	})

	s.Run("rejects an invalid service type before consuming the nonce", func() {
		ref := s.openRef()
		_, err := s.svc.RegisterServices(ctx, ref, "anchor-3", []models.ServiceType{42})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeValidation))

		current, err := s.sessions.Get(ctx, ref.SessionID)
		s.Require().NoError(err)
		s.Equal(uint64(0), current.Nonce)
	})

	s.Run("rejects an empty set", func() {
		_, err := s.svc.RegisterServices(ctx, s.openRef(), "anchor-3", nil)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *RegistryServiceSuite) TestLedgerFailureReleasesNonce() {
	ctx := context.Background()
	svc := New(registrystore.NewInMemory(), s.sessions, failingLedger{})

	ref := s.openRef()
	_, err := svc.RegisterEndpoint(ctx, ref, models.Endpoint{
		URL:      "https://attestor-1.example",
		Attestor: "attestor-1",
		IsActive: true,
	})
	s.Require().True(dErrors.HasCode(err, dErrors.CodeInternal))

	current, err := s.sessions.Get(ctx, ref.SessionID)
	s.Require().NoError(err)
	s.Equal(uint64(0), current.Nonce)
}

func (s *RegistryServiceSuite) TestLookups() {
	ctx := context.Background()

	s.Run("unknown endpoint reports the raw sentinel", func() {
		_, err := s.svc.LookupEndpoint(ctx, "unknown")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("unknown anchor reports the raw sentinel", func() {
		_, err := s.svc.LookupServices(ctx, "unknown")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
