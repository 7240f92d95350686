package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	sessionmodels "anchorledger/internal/session/models"
	"anchorledger/pkg/domain"
	dErrors "anchorledger/pkg/domain-errors"
	"anchorledger/pkg/requestcontext"
)

// SessionService is the session surface the transport consumes.
type SessionService interface {
	Open(ctx context.Context, initiator domain.Address) (sessionmodels.InteractionSession, error)
	Get(ctx context.Context, sessionID uint64) (sessionmodels.InteractionSession, error)
}

// TokenIssuer mints access tokens for acting addresses.
type TokenIssuer interface {
	GenerateToken(actor domain.Address, expiresIn time.Duration) (string, error)
}

const tokenTTL = time.Hour

type tokenRequest struct {
	Address string `json:"address"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// handleIssueToken mints a token for the requested address. Development
// login; real deployments front this with the organization's identity
// provider.
func (h *Handler) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Address == "" {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	token, err := h.tokens.GenerateToken(domain.Address(req.Address), tokenTTL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresIn: int64(tokenTTL.Seconds())})
}

// handleOpenSession opens a session for the authenticated actor.
func (h *Handler) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := h.sessions.Open(ctx, requestcontext.Actor(ctx))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// handleGetSession returns the session state, including the next expected
// nonce.
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathID(r, "sessionID")
	if err != nil {
		writeError(w, err)
		return
	}

	session, err := h.sessions.Get(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func pathID(r *http.Request, param string) (uint64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeBadRequest, "invalid %s", param)
	}
	return id, nil
}
