package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"anchorledger/internal/attestation/models"
	"anchorledger/pkg/domain"
	"anchorledger/pkg/platform/sentinel"
	txcontext "anchorledger/pkg/platform/tx"
)

// Schema creates the attestations table. BIGSERIAL provides the monotonic
// ID allocation; the unique claim fingerprint keeps one ID per claim.
const Schema = `
CREATE TABLE IF NOT EXISTS attestations (
	id           BIGSERIAL PRIMARY KEY,
	issuer       TEXT  NOT NULL,
	subject      TEXT  NOT NULL,
	signed_at    BIGINT NOT NULL,
	payload_hash BYTEA NOT NULL,
	signature    BYTEA NOT NULL,
	claim        BYTEA NOT NULL UNIQUE
);
`

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// Postgres is the durable attestation store variant.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type dbExecutor interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Create inserts the attestation and returns it with the allocated ID. An
// identical claim is a conflict.
func (s *Postgres) Create(ctx context.Context, att models.Attestation) (models.Attestation, error) {
	claim := att.ClaimFingerprint()
	err := s.execer(ctx).QueryRowContext(ctx,
		`INSERT INTO attestations (issuer, subject, signed_at, payload_hash, signature, claim)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		att.Issuer.String(), att.Subject.String(), int64(att.Timestamp),
		att.PayloadHash, att.Signature, claim[:],
	).Scan(&att.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.Attestation{}, sentinel.ErrConflict
		}
		return models.Attestation{}, fmt.Errorf("insert attestation: %w", err)
	}
	return att, nil
}

// FindByID returns the attestation with the given ID.
func (s *Postgres) FindByID(ctx context.Context, id uint64) (models.Attestation, error) {
	var (
		att             models.Attestation
		issuer, subject string
	)
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT id, issuer, subject, signed_at, payload_hash, signature FROM attestations WHERE id = $1`,
		int64(id),
	).Scan(&att.ID, &issuer, &subject, &att.Timestamp, &att.PayloadHash, &att.Signature)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Attestation{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Attestation{}, fmt.Errorf("select attestation: %w", err)
	}
	att.Issuer = domain.Address(issuer)
	att.Subject = domain.Address(subject)
	return att, nil
}

// ExistsClaim reports whether an identical claim was already stored.
func (s *Postgres) ExistsClaim(ctx context.Context, att models.Attestation) (bool, error) {
	claim := att.ClaimFingerprint()
	var exists bool
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM attestations WHERE claim = $1)`,
		claim[:],
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check claim: %w", err)
	}
	return exists, nil
}
