package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"anchorledger/internal/platform/metrics"
	"anchorledger/internal/platform/middleware"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . SessionService,RegistryService,AttestationService,QuoteService,LedgerService

const requestTimeout = 30 * time.Second

// Handler is the thin HTTP layer. It delegates to domain services without
// embedding business logic so transport concerns remain isolated.
type Handler struct {
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tokens       TokenIssuer
	validator    middleware.TokenValidator
	sessions     SessionService
	registry     RegistryService
	attestations AttestationService
	quotes       QuoteService
	ledger       LedgerService
}

// New creates the HTTP handler over the domain services.
func New(
	logger *slog.Logger,
	m *metrics.Metrics,
	tokens TokenIssuer,
	validator middleware.TokenValidator,
	sessions SessionService,
	registry RegistryService,
	attestations AttestationService,
	quotes QuoteService,
	ledger LedgerService,
) *Handler {
	return &Handler{
		logger:       logger,
		metrics:      m,
		tokens:       tokens,
		validator:    validator,
		sessions:     sessions,
		registry:     registry,
		attestations: attestations,
		quotes:       quotes,
		ledger:       ledger,
	}
}

// NewRouter wires all endpoints. Reads are public; every mutating route runs
// behind RequireAuth so the ledger always has an authenticated actor to
// record.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Tracing)
	r.Use(middleware.Latency(h.metrics))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/auth/token", h.handleIssueToken)

	r.Get("/sessions/{sessionID}", h.handleGetSession)
	r.Get("/sessions/{sessionID}/audit", h.handleListAudit)
	r.Get("/ledger/size", h.handleLedgerSize)
	r.Get("/registry/endpoints/{attestor}", h.handleGetEndpoint)
	r.Get("/attestations/{attestationID}", h.handleGetAttestation)
	r.Get("/attestations/{attestationID}/verify", h.handleVerifyAttestation)
	r.Get("/quotes", h.handleListQuotes)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Post("/sessions", h.handleOpenSession)
		r.Post("/registry/endpoints", h.handleRegisterEndpoint)
		r.Put("/registry/endpoints/{attestor}/status", h.handleSetEndpointStatus)
		r.Put("/registry/anchors/{anchor}/services", h.handleRegisterServices)
		r.Post("/attestations", h.handleIssueAttestation)
		r.Post("/quotes", h.handleSubmitQuote)
		r.Post("/quotes/compare", h.handleCompareQuotes)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
