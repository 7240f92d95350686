package main

import (
	"context"
	"crypto/ed25519"
	"database/sql"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	attcrypto "anchorledger/internal/attestation/crypto"
	attmetrics "anchorledger/internal/attestation/metrics"
	attservice "anchorledger/internal/attestation/service"
	attstore "anchorledger/internal/attestation/store"
	"anchorledger/internal/jwttoken"
	ledgermetrics "anchorledger/internal/ledger/metrics"
	"anchorledger/internal/ledger/publisher"
	ledgerservice "anchorledger/internal/ledger/service"
	ledgerstore "anchorledger/internal/ledger/store"
	"anchorledger/internal/platform/config"
	"anchorledger/internal/platform/httpserver"
	"anchorledger/internal/platform/logger"
	"anchorledger/internal/platform/metrics"
	platformredis "anchorledger/internal/platform/redis"
	quotemetrics "anchorledger/internal/quote/metrics"
	quoteservice "anchorledger/internal/quote/service"
	quotestore "anchorledger/internal/quote/store"
	registryservice "anchorledger/internal/registry/service"
	registrystore "anchorledger/internal/registry/store"
	sessionmetrics "anchorledger/internal/session/metrics"
	sessionservice "anchorledger/internal/session/service"
	sessionstore "anchorledger/internal/session/store"
	httptransport "anchorledger/internal/transport/http"
	"anchorledger/pkg/domain"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	httpMetrics := metrics.New()

	var (
		registryStore    registryservice.Store = registrystore.NewInMemory()
		attestationStore attservice.Store      = attstore.NewInMemory()
		ledgerStore      ledgerservice.Store   = ledgerstore.NewInMemory()
		quoteStore       quoteservice.Store    = quotestore.NewInMemory()
	)

	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			log.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := migrate(db); err != nil {
			log.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		registryStore = registrystore.NewPostgres(db)
		attestationStore = attstore.NewPostgres(db)
		ledgerStore = ledgerstore.NewPostgres(db)
		log.Info("using postgres stores")
	}

	if cfg.RedisURL != "" {
		client, err := platformredis.New(cfg.RedisURL, cfg.Redis)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		quoteStore = quotestore.NewRedis(client.Client)
		log.Info("using redis quote store")
	}

	ledgerOpts := []ledgerservice.Option{
		ledgerservice.WithLogger(log),
		ledgerservice.WithMetrics(ledgermetrics.New()),
	}

	var auditPublisher *publisher.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		var err error
		auditPublisher, err = publisher.New(cfg.KafkaBrokers, cfg.AuditTopic,
			publisher.WithLogger(log),
		)
		if err != nil {
			log.Error("failed to start audit publisher", "error", err)
			os.Exit(1)
		}
		defer auditPublisher.Close()
		ledgerOpts = append(ledgerOpts, ledgerservice.WithPublisher(auditPublisher))
		log.Info("audit publishing enabled", "topic", cfg.AuditTopic)
	}

	sessions := sessionservice.New(sessionstore.NewInMemory(),
		sessionservice.WithLogger(log),
		sessionservice.WithMetrics(sessionmetrics.New()),
	)
	ledger := ledgerservice.New(ledgerStore, ledgerOpts...)
	registry := registryservice.New(registryStore, sessions, ledger,
		registryservice.WithLogger(log),
	)

	verifier := attcrypto.NewEd25519Verifier()
	if err := registerIssuerKeys(verifier, os.Getenv("ATTESTOR_KEYS")); err != nil {
		log.Error("failed to load attestor keys", "error", err)
		os.Exit(1)
	}

	attestations := attservice.New(attestationStore, registry, verifier, sessions, ledger,
		attservice.WithLogger(log),
		attservice.WithMetrics(attmetrics.New()),
	)
	quotes := quoteservice.New(quoteStore, registry, sessions, ledger,
		quoteservice.WithLogger(log),
		quoteservice.WithMetrics(quotemetrics.New()),
	)

	tokens := jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTIssuer)

	handler := httptransport.New(log, httpMetrics, tokens, tokens,
		sessions, registry, attestations, quotes, ledger)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting anchorledger", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if auditPublisher != nil {
		g.Go(func() error {
			return auditPublisher.Run(ctx)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

// migrate applies the store schemas. Idempotent; each schema uses
// CREATE TABLE IF NOT EXISTS.
func migrate(db *sql.DB) error {
	for _, schema := range []string{
		registrystore.Schema,
		attstore.Schema,
		ledgerstore.Schema,
	} {
		if _, err := db.Exec(schema); err != nil {
			return err
		}
	}
	return nil
}

// registerIssuerKeys parses ATTESTOR_KEYS, a comma-separated list of
// issuer=hex-encoded-ed25519-public-key pairs, and registers each key.
func registerIssuerKeys(v *attcrypto.Ed25519Verifier, raw string) error {
	if raw == "" {
		return nil
	}
	for _, pair := range strings.Split(raw, ",") {
		issuer, encoded, ok := strings.Cut(pair, "=")
		if !ok {
			return errors.New("malformed ATTESTOR_KEYS entry: " + pair)
		}
		key, err := hex.DecodeString(encoded)
		if err != nil || len(key) != ed25519.PublicKeySize {
			return errors.New("invalid public key for issuer " + issuer)
		}
		v.RegisterKey(domain.Address(issuer), ed25519.PublicKey(key))
	}
	return nil
}
