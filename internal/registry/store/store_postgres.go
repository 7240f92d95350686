package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"anchorledger/internal/registry/models"
	"anchorledger/pkg/domain"
	"anchorledger/pkg/platform/sentinel"
	txcontext "anchorledger/pkg/platform/tx"
)

// Schema creates the registry tables.
const Schema = `
CREATE TABLE IF NOT EXISTS endpoints (
	attestor  TEXT PRIMARY KEY,
	url       TEXT NOT NULL,
	is_active BOOLEAN NOT NULL
);
CREATE TABLE IF NOT EXISTS anchor_services (
	anchor   TEXT PRIMARY KEY,
	services INTEGER[] NOT NULL
);
`

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// Postgres is the durable registry store variant.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// CreateEndpoint stores a new endpoint; an attestor can register only one.
func (s *Postgres) CreateEndpoint(ctx context.Context, endpoint models.Endpoint) error {
	_, err := s.execer(ctx).ExecContext(ctx,
		`INSERT INTO endpoints (attestor, url, is_active) VALUES ($1, $2, $3)`,
		endpoint.Attestor.String(), endpoint.URL, endpoint.IsActive,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert endpoint: %w", err)
	}
	return nil
}

// FindEndpoint returns the attestor's endpoint.
func (s *Postgres) FindEndpoint(ctx context.Context, attestor domain.Address) (models.Endpoint, error) {
	var (
		endpoint models.Endpoint
		addr     string
	)
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT attestor, url, is_active FROM endpoints WHERE attestor = $1`,
		attestor.String(),
	).Scan(&addr, &endpoint.URL, &endpoint.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Endpoint{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Endpoint{}, fmt.Errorf("select endpoint: %w", err)
	}
	endpoint.Attestor = domain.Address(addr)
	return endpoint, nil
}

// SetEndpointActive flips the endpoint's active flag.
func (s *Postgres) SetEndpointActive(ctx context.Context, attestor domain.Address, active bool) (models.Endpoint, error) {
	var (
		endpoint models.Endpoint
		addr     string
	)
	err := s.execer(ctx).QueryRowContext(ctx,
		`UPDATE endpoints SET is_active = $2 WHERE attestor = $1 RETURNING attestor, url, is_active`,
		attestor.String(), active,
	).Scan(&addr, &endpoint.URL, &endpoint.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Endpoint{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Endpoint{}, fmt.Errorf("update endpoint: %w", err)
	}
	endpoint.Attestor = domain.Address(addr)
	return endpoint, nil
}

// SaveServices upserts the anchor's capability set.
func (s *Postgres) SaveServices(ctx context.Context, services models.AnchorServices) error {
	raw := make(pq.Int32Array, len(services.Services))
	for i, svc := range services.Services {
		raw[i] = int32(svc)
	}
	_, err := s.execer(ctx).ExecContext(ctx,
		`INSERT INTO anchor_services (anchor, services) VALUES ($1, $2)
		 ON CONFLICT (anchor) DO UPDATE SET services = EXCLUDED.services`,
		services.Anchor.String(), raw,
	)
	if err != nil {
		return fmt.Errorf("upsert anchor services: %w", err)
	}
	return nil
}

// FindServices returns the anchor's capability set.
func (s *Postgres) FindServices(ctx context.Context, anchor domain.Address) (models.AnchorServices, error) {
	var (
		addr string
		raw  pq.Int32Array
	)
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT anchor, services FROM anchor_services WHERE anchor = $1`,
		anchor.String(),
	).Scan(&addr, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AnchorServices{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.AnchorServices{}, fmt.Errorf("select anchor services: %w", err)
	}

	services := make([]models.ServiceType, len(raw))
	for i, v := range raw {
		services[i] = models.ServiceType(v)
	}
	return models.NewAnchorServices(domain.Address(addr), services), nil
}
