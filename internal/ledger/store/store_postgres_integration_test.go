//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"anchorledger/internal/ledger/models"
	"anchorledger/internal/ledger/store"
	sessionmodels "anchorledger/internal/session/models"
	"anchorledger/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "audit_log")
	s.Require().NoError(err)
	_, err = s.postgres.DB.ExecContext(ctx, `UPDATE audit_log_head SET last_log_id = 0`)
	s.Require().NoError(err)
}

func testEntry(sessionID, index uint64) models.AuditLog {
	return models.AuditLog{
		SessionID: sessionID,
		Operation: sessionmodels.OperationContext{
			SessionID:      sessionID,
			OperationIndex: index,
			OperationType:  sessionmodels.OpTypeAttest,
			Timestamp:      1700000000 + index,
			Status:         sessionmodels.StatusSuccess,
			ResultData:     index,
		},
		Actor: "alice",
	}
}

func (s *PostgresStoreSuite) TestAppendAllocatesOrderedIDs() {
	ctx := context.Background()

	var last uint64
	for i := uint64(0); i < 5; i++ {
		appended, err := s.store.Append(ctx, testEntry(1, i))
		s.Require().NoError(err)
		s.Greater(appended.LogID, last)
		last = appended.LogID
	}

	n, err := s.store.Len(ctx)
	s.Require().NoError(err)
	s.Equal(uint64(5), n)
}

func (s *PostgresStoreSuite) TestAppendRoundTrip() {
	ctx := context.Background()

	appended, err := s.store.Append(ctx, testEntry(7, 0))
	s.Require().NoError(err)

	entries, err := s.store.ListRange(ctx, 7, 0, 10, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(appended, entries[0])
}

func (s *PostgresStoreSuite) TestDuplicateOperationIndexRejected() {
	ctx := context.Background()

	_, err := s.store.Append(ctx, testEntry(1, 0))
	s.Require().NoError(err)

	_, err = s.store.Append(ctx, testEntry(1, 0))
	s.Require().Error(err)
}

func (s *PostgresStoreSuite) TestRejectedAppendLeavesNoGap() {
	ctx := context.Background()

	first, err := s.store.Append(ctx, testEntry(1, 0))
	s.Require().NoError(err)

	// Duplicate operation index rolls back the insert and the allocated ID.
	_, err = s.store.Append(ctx, testEntry(1, 0))
	s.Require().Error(err)

	next, err := s.store.Append(ctx, testEntry(1, 1))
	s.Require().NoError(err)
	s.Equal(first.LogID+1, next.LogID)
}

func (s *PostgresStoreSuite) TestListRange() {
	ctx := context.Background()

	for i := uint64(0); i < 10; i++ {
		_, err := s.store.Append(ctx, testEntry(1, i))
		s.Require().NoError(err)
	}
	_, err := s.store.Append(ctx, testEntry(2, 0))
	s.Require().NoError(err)

	s.Run("half-open window", func() {
		entries, err := s.store.ListRange(ctx, 1, 2, 5, 0)
		s.Require().NoError(err)
		s.Require().Len(entries, 3)
		for i, entry := range entries {
			s.Equal(uint64(2+i), entry.Operation.OperationIndex)
		}
	})

	s.Run("limit truncates", func() {
		entries, err := s.store.ListRange(ctx, 1, 0, 10, 4)
		s.Require().NoError(err)
		s.Len(entries, 4)
	})

	s.Run("other sessions never leak in", func() {
		entries, err := s.store.ListRange(ctx, 2, 0, 10, 0)
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal(uint64(2), entries[0].SessionID)
	})
}
