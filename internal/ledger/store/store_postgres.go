package store

import (
	"context"
	"database/sql"
	"fmt"

	"anchorledger/internal/ledger/models"
	sessionmodels "anchorledger/internal/session/models"
	"anchorledger/pkg/domain"
	txcontext "anchorledger/pkg/platform/tx"
)

// Schema creates the audit log table and its ID counter. Log IDs are
// allocated from the counter row inside the append transaction, so a failed
// insert rolls the counter back too and the sequence stays gapless. The
// unique constraint enforces one entry per operation.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_log (
	log_id          BIGINT PRIMARY KEY,
	session_id      BIGINT NOT NULL,
	operation_index BIGINT NOT NULL,
	operation_type  TEXT   NOT NULL,
	operation_ts    BIGINT NOT NULL,
	status          TEXT   NOT NULL,
	result_data     BIGINT NOT NULL,
	actor           TEXT   NOT NULL,
	UNIQUE (session_id, operation_index)
);
CREATE INDEX IF NOT EXISTS audit_log_session_idx ON audit_log (session_id, operation_index);
CREATE TABLE IF NOT EXISTS audit_log_head (
	id          BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (id),
	last_log_id BIGINT NOT NULL
);
INSERT INTO audit_log_head (id, last_log_id) VALUES (TRUE, 0) ON CONFLICT (id) DO NOTHING;
`

// Postgres is the durable audit log variant.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Append allocates the next log ID and inserts the entry in one transaction.
// The row lock on the counter serializes concurrent appends.
func (s *Postgres) Append(ctx context.Context, entry models.AuditLog) (models.AuditLog, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.AuditLog{}, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	ctx = txcontext.WithTx(ctx, tx)
	allocate := `UPDATE audit_log_head SET last_log_id = last_log_id + 1 RETURNING last_log_id`
	if err := s.execer(ctx).QueryRowContext(ctx, allocate).Scan(&entry.LogID); err != nil {
		return models.AuditLog{}, fmt.Errorf("allocate log id: %w", err)
	}

	insert := `
		INSERT INTO audit_log (log_id, session_id, operation_index, operation_type, operation_ts, status, result_data, actor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.execer(ctx).ExecContext(ctx, insert,
		int64(entry.LogID),
		int64(entry.SessionID),
		int64(entry.Operation.OperationIndex),
		entry.Operation.OperationType,
		int64(entry.Operation.Timestamp),
		entry.Operation.Status,
		int64(entry.Operation.ResultData),
		entry.Actor.String(),
	)
	if err != nil {
		return models.AuditLog{}, fmt.Errorf("insert audit entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.AuditLog{}, fmt.Errorf("commit append: %w", err)
	}
	return entry, nil
}

// ListRange returns the session's entries with operation index in
// [fromIndex, toIndex), ordered by operation index, at most limit entries.
func (s *Postgres) ListRange(ctx context.Context, sessionID, fromIndex, toIndex uint64, limit int) ([]models.AuditLog, error) {
	query := `
		SELECT log_id, session_id, operation_index, operation_type, operation_ts, status, result_data, actor
		FROM audit_log
		WHERE session_id = $1 AND operation_index >= $2 AND operation_index < $3
		ORDER BY operation_index
	`
	args := []any{int64(sessionID), int64(fromIndex), int64(toIndex)}
	if limit > 0 {
		query += " LIMIT $4"
		args = append(args, limit)
	}

	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit range: %w", err)
	}
	defer rows.Close()

	var out []models.AuditLog
	for rows.Next() {
		var (
			entry models.AuditLog
			op    sessionmodels.OperationContext
			actor string
		)
		if err := rows.Scan(&entry.LogID, &entry.SessionID, &op.OperationIndex, &op.OperationType, &op.Timestamp, &op.Status, &op.ResultData, &actor); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		op.SessionID = entry.SessionID
		entry.Operation = op
		entry.Actor = domain.Address(actor)
		out = append(out, entry)
	}
	return out, rows.Err()
}

// Len returns the number of appended entries.
func (s *Postgres) Len(ctx context.Context) (uint64, error) {
	var n int64
	if err := s.execer(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count audit entries: %w", err)
	}
	return uint64(n), nil
}
