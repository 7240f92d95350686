package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"anchorledger/internal/ledger/models"
	"anchorledger/internal/ledger/store"
	sessionmodels "anchorledger/internal/session/models"
	dErrors "anchorledger/pkg/domain-errors"
)

type LedgerServiceSuite struct {
	suite.Suite
	svc *Service
}

func (s *LedgerServiceSuite) SetupTest() {
	s.svc = New(store.NewInMemory())
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceSuite))
}

func finalizedOp(sessionID, index uint64) sessionmodels.OperationContext {
	return sessionmodels.OperationContext{
		SessionID:      sessionID,
		OperationIndex: index,
		OperationType:  sessionmodels.OpTypeAttest,
		Timestamp:      100 + index,
		Status:         sessionmodels.StatusSuccess,
	}
}

// TestTotalOrder verifies log IDs form a gapless, strictly increasing
// sequence across sessions.
func (s *LedgerServiceSuite) TestTotalOrder() {
	ctx := context.Background()

	sessions := []uint64{1, 2, 1, 3, 2, 1}
	indices := map[uint64]uint64{}
	for i, sessionID := range sessions {
		entry, err := s.svc.Append(ctx, finalizedOp(sessionID, indices[sessionID]), "alice")
		s.Require().NoError(err)
		s.Equal(uint64(i)+1, entry.LogID)
		indices[sessionID]++
	}

	size, err := s.svc.Size(ctx)
	s.Require().NoError(err)
	s.Equal(uint64(len(sessions)), size)
}

func (s *LedgerServiceSuite) TestAppendRejectsPendingOperation() {
	ctx := context.Background()

	op := finalizedOp(1, 0)
	op.Status = sessionmodels.StatusPending

	_, err := s.svc.Append(ctx, op, "alice")
	s.Require().True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	size, err := s.svc.Size(ctx)
	s.Require().NoError(err)
	s.Equal(uint64(0), size)
}

func (s *LedgerServiceSuite) TestReadRange() {
	ctx := context.Background()

	for i := uint64(0); i < 10; i++ {
		_, err := s.svc.Append(ctx, finalizedOp(1, i), "alice")
		s.Require().NoError(err)
	}
	// Entries from another session never leak into the range.
	_, err := s.svc.Append(ctx, finalizedOp(2, 0), "bob")
	s.Require().NoError(err)

	s.Run("half-open window ordered by operation index", func() {
		entries, err := s.svc.List(ctx, 1, 2, 5)
		s.Require().NoError(err)
		s.Require().Len(entries, 3)
		for i, entry := range entries {
			s.Equal(uint64(2+i), entry.Operation.OperationIndex)
			s.Equal(uint64(1), entry.SessionID)
		}
	})

	s.Run("empty window", func() {
		entries, err := s.svc.List(ctx, 1, 5, 5)
		s.Require().NoError(err)
		s.Empty(entries)
	})

	s.Run("window past the end", func() {
		entries, err := s.svc.List(ctx, 1, 8, 100)
		s.Require().NoError(err)
		s.Len(entries, 2)
	})

	s.Run("sequence is restartable", func() {
		seq := s.svc.ReadRange(ctx, 1, 0, 10)

		var first []models.AuditLog
		for entry, err := range seq {
			s.Require().NoError(err)
			first = append(first, entry)
		}
		var second []models.AuditLog
		for entry, err := range seq {
			s.Require().NoError(err)
			second = append(second, entry)
		}
		s.Equal(first, second)
		s.Len(first, 10)
	})

	s.Run("early break stops iteration", func() {
		var seen int
		for _, err := range s.svc.ReadRange(ctx, 1, 0, 10) {
			s.Require().NoError(err)
			seen++
			if seen == 3 {
				break
			}
		}
		s.Equal(3, seen)
	})
}

type capturingPublisher struct {
	entries []models.AuditLog
}

func (p *capturingPublisher) Publish(entry models.AuditLog) {
	p.entries = append(p.entries, entry)
}

func (s *LedgerServiceSuite) TestAppendPublishes() {
	ctx := context.Background()
	pub := &capturingPublisher{}
	svc := New(store.NewInMemory(), WithPublisher(pub))

	entry, err := svc.Append(ctx, finalizedOp(1, 0), "alice")
	s.Require().NoError(err)

	s.Require().Len(pub.entries, 1)
	s.Equal(entry, pub.entries[0])
}
