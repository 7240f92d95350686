package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"anchorledger/internal/session/models"
	"anchorledger/pkg/platform/sentinel"
)

type SessionStoreSuite struct {
	suite.Suite
	store *InMemory
}

func (s *SessionStoreSuite) SetupTest() {
	s.store = NewInMemory()
}

func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreSuite))
}

func (s *SessionStoreSuite) TestCreateAssignsSequentialIDs() {
	ctx := context.Background()

	first, err := s.store.Create(ctx, "alice", 100)
	s.Require().NoError(err)
	second, err := s.store.Create(ctx, "bob", 101)
	s.Require().NoError(err)

	s.Equal(first.SessionID+1, second.SessionID)
	s.Equal(uint64(0), first.Nonce)
	s.Equal(uint64(0), first.OperationCount)
}

func (s *SessionStoreSuite) TestFind() {
	ctx := context.Background()

	s.Run("returns stored session", func() {
		created, err := s.store.Create(ctx, "alice", 100)
		s.Require().NoError(err)

		found, err := s.store.Find(ctx, created.SessionID)
		s.Require().NoError(err)
		s.Equal(created, found)
	})

	s.Run("returns ErrNotFound for unknown session", func() {
		_, err := s.store.Find(ctx, 9999)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestNonceSequence verifies the compare-and-increment cycle: each accepted
// operation consumes the current nonce and the next call must present the
// incremented value.
func (s *SessionStoreSuite) TestNonceSequence() {
	ctx := context.Background()
	session, err := s.store.Create(ctx, "alice", 100)
	s.Require().NoError(err)

	for nonce := uint64(0); nonce < 3; nonce++ {
		op, err := s.store.BeginOperation(ctx, session.SessionID, nonce, models.OpTypeAttest, 100+nonce)
		s.Require().NoError(err)
		s.Equal(nonce, op.OperationIndex)
		s.Equal(models.StatusPending, op.Status)
	}

	updated, err := s.store.Find(ctx, session.SessionID)
	s.Require().NoError(err)
	s.Equal(uint64(3), updated.Nonce)
	s.Equal(uint64(3), updated.OperationCount)
}

func (s *SessionStoreSuite) TestBeginOperationRejections() {
	ctx := context.Background()
	session, err := s.store.Create(ctx, "alice", 100)
	s.Require().NoError(err)

	s.Run("stale nonce leaves session untouched", func() {
		_, err := s.store.BeginOperation(ctx, session.SessionID, 5, models.OpTypeAttest, 100)
		s.Require().ErrorIs(err, sentinel.ErrStaleNonce)

		unchanged, err := s.store.Find(ctx, session.SessionID)
		s.Require().NoError(err)
		s.Equal(uint64(0), unchanged.Nonce)
		s.Equal(uint64(0), unchanged.OperationCount)
	})

	s.Run("repeated nonce is rejected after acceptance", func() {
		_, err := s.store.BeginOperation(ctx, session.SessionID, 0, models.OpTypeAttest, 100)
		s.Require().NoError(err)

		_, err = s.store.BeginOperation(ctx, session.SessionID, 0, models.OpTypeAttest, 101)
		s.Require().ErrorIs(err, sentinel.ErrStaleNonce)
	})

	s.Run("unknown session", func() {
		_, err := s.store.BeginOperation(ctx, 9999, 0, models.OpTypeAttest, 100)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestConcurrentBegin verifies exactly one of N concurrent callers presenting
// the same nonce wins.
func (s *SessionStoreSuite) TestConcurrentBegin() {
	ctx := context.Background()
	session, err := s.store.Create(ctx, "alice", 100)
	s.Require().NoError(err)

	const goroutines = 50
	var wg sync.WaitGroup
	results := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.BeginOperation(ctx, session.SessionID, 0, models.OpTypeAttest, 100)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, stale int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, sentinel.ErrStaleNonce):
			stale++
		default:
			s.FailNowf("unexpected error", "%v", err)
		}
	}
	s.Equal(1, successes)
	s.Equal(goroutines-1, stale)
}

func (s *SessionStoreSuite) TestRollback() {
	ctx := context.Background()
	session, err := s.store.Create(ctx, "alice", 100)
	s.Require().NoError(err)

	s.Run("releases the consumed nonce for retry", func() {
		op, err := s.store.BeginOperation(ctx, session.SessionID, 0, models.OpTypeAttest, 100)
		s.Require().NoError(err)

		s.Require().NoError(s.store.Rollback(ctx, op))

		retried, err := s.store.BeginOperation(ctx, session.SessionID, 0, models.OpTypeAttest, 101)
		s.Require().NoError(err)
		s.Equal(op.OperationIndex, retried.OperationIndex)
	})

	s.Run("only the latest operation can be rolled back", func() {
		first, err := s.store.BeginOperation(ctx, session.SessionID, 1, models.OpTypeAttest, 102)
		s.Require().NoError(err)
		_, err = s.store.BeginOperation(ctx, session.SessionID, 2, models.OpTypeAttest, 103)
		s.Require().NoError(err)

		s.Require().ErrorIs(s.store.Rollback(ctx, first), sentinel.ErrConflict)
	})

	s.Run("unknown session", func() {
		err := s.store.Rollback(ctx, models.OperationContext{SessionID: 9999})
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
