package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"anchorledger/internal/session/models"
	"anchorledger/internal/session/store"
	dErrors "anchorledger/pkg/domain-errors"
)

type SessionServiceSuite struct {
	suite.Suite
	svc *Service
}

func (s *SessionServiceSuite) SetupTest() {
	s.svc = New(store.NewInMemory())
}

func TestSessionServiceSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceSuite))
}

func (s *SessionServiceSuite) TestOpen() {
	ctx := context.Background()

	s.Run("opens a session with zeroed nonce", func() {
		session, err := s.svc.Open(ctx, "alice")
		s.Require().NoError(err)
		s.Equal(uint64(0), session.Nonce)
		s.Equal(uint64(0), session.OperationCount)
	})

	s.Run("rejects a missing initiator", func() {
		_, err := s.svc.Open(ctx, "")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *SessionServiceSuite) TestGet() {
	ctx := context.Background()

	s.Run("returns the current nonce", func() {
		session, err := s.svc.Open(ctx, "alice")
		s.Require().NoError(err)

		_, err = s.svc.Begin(ctx, models.Ref{SessionID: session.SessionID, Nonce: 0}, models.OpTypeAttest)
		s.Require().NoError(err)

		current, err := s.svc.Get(ctx, session.SessionID)
		s.Require().NoError(err)
		s.Equal(uint64(1), current.Nonce)
	})

	s.Run("unknown session maps to not found", func() {
		_, err := s.svc.Get(ctx, 9999)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *SessionServiceSuite) TestBegin() {
	ctx := context.Background()
	session, err := s.svc.Open(ctx, "alice")
	s.Require().NoError(err)

	s.Run("nonces 0, 1, 2 consumed in sequence", func() {
		for nonce := uint64(0); nonce < 3; nonce++ {
			op, err := s.svc.Begin(ctx, models.Ref{SessionID: session.SessionID, Nonce: nonce}, models.OpTypeAttest)
			s.Require().NoError(err)
			s.Equal(nonce, op.OperationIndex)
			s.Equal(models.StatusPending, op.Status)
		}
	})

	s.Run("replayed nonce is rejected", func() {
		_, err := s.svc.Begin(ctx, models.Ref{SessionID: session.SessionID, Nonce: 0}, models.OpTypeAttest)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeReplayRejected))
	})

	s.Run("unknown session maps to not found", func() {
		_, err := s.svc.Begin(ctx, models.Ref{SessionID: 9999, Nonce: 0}, models.OpTypeAttest)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *SessionServiceSuite) TestFinalize() {
	op := models.OperationContext{
		SessionID:      1,
		OperationIndex: 0,
		OperationType:  models.OpTypeAttest,
		Status:         models.StatusPending,
	}

	final := s.svc.Finalize(op, models.StatusSuccess, 42)
	s.Equal(models.StatusSuccess, final.Status)
	s.Equal(uint64(42), final.ResultData)
	// Finalize is pure; the input is untouched.
	s.Equal(models.StatusPending, op.Status)
}

func (s *SessionServiceSuite) TestAbortReleasesNonce() {
	ctx := context.Background()
	session, err := s.svc.Open(ctx, "alice")
	s.Require().NoError(err)

	op, err := s.svc.Begin(ctx, models.Ref{SessionID: session.SessionID, Nonce: 0}, models.OpTypeAttest)
	s.Require().NoError(err)

	s.svc.Abort(ctx, op)

	retried, err := s.svc.Begin(ctx, models.Ref{SessionID: session.SessionID, Nonce: 0}, models.OpTypeAttest)
	s.Require().NoError(err)
	s.Equal(op.OperationIndex, retried.OperationIndex)
}
