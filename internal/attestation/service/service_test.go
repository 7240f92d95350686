package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/suite"

	"anchorledger/internal/attestation/crypto"
	"anchorledger/internal/attestation/models"
	attstore "anchorledger/internal/attestation/store"
	ledgermodels "anchorledger/internal/ledger/models"
	ledgerservice "anchorledger/internal/ledger/service"
	ledgerstore "anchorledger/internal/ledger/store"
	registrymodels "anchorledger/internal/registry/models"
	sessionmodels "anchorledger/internal/session/models"
	sessionservice "anchorledger/internal/session/service"
	sessionstore "anchorledger/internal/session/store"
	"anchorledger/pkg/domain"
	dErrors "anchorledger/pkg/domain-errors"
	"anchorledger/pkg/platform/sentinel"
)

// endpointMap is a fixed registry lookup for tests.
type endpointMap map[domain.Address]registrymodels.Endpoint

func (m endpointMap) LookupEndpoint(_ context.Context, attestor domain.Address) (registrymodels.Endpoint, error) {
	endpoint, ok := m[attestor]
	if !ok {
		return registrymodels.Endpoint{}, sentinel.ErrNotFound
	}
	return endpoint, nil
}

// failingLedger rejects every append.
type failingLedger struct{}

func (failingLedger) Append(context.Context, sessionmodels.OperationContext, domain.Address) (ledgermodels.AuditLog, error) {
	return ledgermodels.AuditLog{}, dErrors.New(dErrors.CodeInternal, "audit log unavailable")
}

type AttestationServiceSuite struct {
	suite.Suite
	svc       *Service
	sessions  *sessionservice.Service
	ledger    *ledgerservice.Service
	endpoints endpointMap
	verifier  *crypto.Ed25519Verifier

	issuerKey ed25519.PrivateKey
	issuer    domain.Address
}

func (s *AttestationServiceSuite) SetupTest() {
	s.issuer = "attestor-1"
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	s.Require().NoError(err)
	s.issuerKey = priv

	s.verifier = crypto.NewEd25519Verifier()
	s.verifier.RegisterKey(s.issuer, pub)

	s.endpoints = endpointMap{
		s.issuer: {URL: "https://attestor-1.example", Attestor: s.issuer, IsActive: true},
	}

	s.sessions = sessionservice.New(sessionstore.NewInMemory())
	s.ledger = ledgerservice.New(ledgerstore.NewInMemory())
	s.svc = New(attstore.NewInMemory(), s.endpoints, s.verifier, s.sessions, s.ledger)
}

func TestAttestationServiceSuite(t *testing.T) {
	suite.Run(t, new(AttestationServiceSuite))
}

func (s *AttestationServiceSuite) openSession(initiator domain.Address) sessionmodels.InteractionSession {
	session, err := s.sessions.Open(context.Background(), initiator)
	s.Require().NoError(err)
	return session
}

// signedRequest builds an issuance request with a valid signature over the
// canonical message.
func (s *AttestationServiceSuite) signedRequest(session sessionmodels.InteractionSession, subject domain.Address) IssueRequest {
	payloadHash := sha256.Sum256([]byte("kyc-document"))
	timestamp := uint64(1700000000)
	message := models.CanonicalMessage(s.issuer, subject, payloadHash[:], timestamp)
	return IssueRequest{
		Session:     sessionmodels.Ref{SessionID: session.SessionID, Nonce: session.Nonce},
		Issuer:      s.issuer,
		Subject:     subject,
		Timestamp:   timestamp,
		PayloadHash: payloadHash[:],
		Signature:   ed25519.Sign(s.issuerKey, message),
	}
}

func (s *AttestationServiceSuite) TestIssue() {
	ctx := context.Background()

	s.Run("valid issuance stores the attestation and audits it", func() {
		session := s.openSession("alice")
		att, err := s.svc.Issue(ctx, s.signedRequest(session, "subject-1"))
		s.Require().NoError(err)
		s.NotZero(att.ID)

		entries, err := s.ledger.List(ctx, session.SessionID, 0, 10)
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal(sessionmodels.OpTypeAttest, entries[0].Operation.OperationType)
		s.Equal(sessionmodels.StatusSuccess, entries[0].Operation.Status)
		s.Equal(att.ID, entries[0].Operation.ResultData)
	})

	s.Run("issuance consumes the session nonce", func() {
		session := s.openSession("alice")
		_, err := s.svc.Issue(ctx, s.signedRequest(session, "subject-2"))
		s.Require().NoError(err)

		current, err := s.sessions.Get(ctx, session.SessionID)
		s.Require().NoError(err)
		s.Equal(uint64(1), current.Nonce)
	})
}

func (s *AttestationServiceSuite) TestIssueRejections() {
	ctx := context.Background()

	s.Run("unregistered issuer", func() {
		session := s.openSession("alice")
		req := s.signedRequest(session, "subject-1")
		req.Issuer = "unknown-attestor"

		_, err := s.svc.Issue(ctx, req)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeInactiveIssuer))
	})

	s.Run("deactivated issuer leaves no audit entry and no consumed nonce", func() {
		session := s.openSession("alice")
		s.endpoints[s.issuer] = registrymodels.Endpoint{
			URL: "https://attestor-1.example", Attestor: s.issuer, IsActive: false,
		}
		defer func() {
			s.endpoints[s.issuer] = registrymodels.Endpoint{
				URL: "https://attestor-1.example", Attestor: s.issuer, IsActive: true,
			}
		}()

		_, err := s.svc.Issue(ctx, s.signedRequest(session, "subject-1"))
		s.Require().True(dErrors.HasCode(err, dErrors.CodeInactiveIssuer))

		entries, err := s.ledger.List(ctx, session.SessionID, 0, 10)
		s.Require().NoError(err)
		s.Empty(entries)

		current, err := s.sessions.Get(ctx, session.SessionID)
		s.Require().NoError(err)
		s.Equal(uint64(0), current.Nonce)
	})

	s.Run("signature over a different payload", func() {
		session := s.openSession("alice")
		req := s.signedRequest(session, "subject-1")
		tampered := sha256.Sum256([]byte("different-document"))
		req.PayloadHash = tampered[:]

		_, err := s.svc.Issue(ctx, req)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeInvalidSignature))
	})

	s.Run("duplicate claim", func() {
		session := s.openSession("alice")
		req := s.signedRequest(session, "subject-dup")

		issued, err := s.svc.Issue(ctx, req)
		s.Require().NoError(err)

		req.Session.Nonce = 1
		_, err = s.svc.Issue(ctx, req)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeConflict))

		// The first attestation is untouched.
		found, err := s.svc.Get(ctx, issued.ID)
		s.Require().NoError(err)
		s.Equal(issued, found)
	})

	s.Run("stale nonce", func() {
		session := s.openSession("alice")
		req := s.signedRequest(session, "subject-1")
		req.Session.Nonce = 7

		_, err := s.svc.Issue(ctx, req)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeReplayRejected))
	})

	s.Run("malformed payload hash", func() {
		session := s.openSession("alice")
		req := s.signedRequest(session, "subject-1")
		req.PayloadHash = req.PayloadHash[:16]

		_, err := s.svc.Issue(ctx, req)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *AttestationServiceSuite) TestLedgerFailureReleasesNonce() {
	ctx := context.Background()
	svc := New(attstore.NewInMemory(), s.endpoints, s.verifier, s.sessions, failingLedger{})

	session := s.openSession("alice")
	_, err := svc.Issue(ctx, s.signedRequest(session, "subject-1"))
	s.Require().True(dErrors.HasCode(err, dErrors.CodeInternal))

	current, err := s.sessions.Get(ctx, session.SessionID)
	s.Require().NoError(err)
	s.Equal(uint64(0), current.Nonce)
}

func (s *AttestationServiceSuite) TestVerify() {
	ctx := context.Background()
	session := s.openSession("alice")
	req := s.signedRequest(session, "subject-1")

	att, err := s.svc.Issue(ctx, req)
	s.Require().NoError(err)

	s.Run("matching hash verifies", func() {
		ok, err := s.svc.Verify(ctx, att.ID, req.PayloadHash)
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("mismatched hash is false, not an error", func() {
		other := sha256.Sum256([]byte("other"))
		ok, err := s.svc.Verify(ctx, att.ID, other[:])
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("unknown attestation is false, not an error", func() {
		ok, err := s.svc.Verify(ctx, 9999, req.PayloadHash)
		s.Require().NoError(err)
		s.False(ok)
	})
}

func (s *AttestationServiceSuite) TestGet() {
	ctx := context.Background()

	_, err := s.svc.Get(ctx, 9999)
	s.Require().True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
