package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	registrymodels "anchorledger/internal/registry/models"
	sessionmodels "anchorledger/internal/session/models"
	"anchorledger/pkg/domain"
	dErrors "anchorledger/pkg/domain-errors"

	"github.com/go-chi/chi/v5"
)

// RegistryService is the registry surface the transport consumes.
type RegistryService interface {
	RegisterEndpoint(ctx context.Context, ref sessionmodels.Ref, endpoint registrymodels.Endpoint) (registrymodels.Endpoint, error)
	SetEndpointActive(ctx context.Context, ref sessionmodels.Ref, attestor domain.Address, active bool) (registrymodels.Endpoint, error)
	RegisterServices(ctx context.Context, ref sessionmodels.Ref, anchor domain.Address, services []registrymodels.ServiceType) (registrymodels.AnchorServices, error)
	LookupEndpoint(ctx context.Context, attestor domain.Address) (registrymodels.Endpoint, error)
}

type registerEndpointRequest struct {
	SessionID uint64 `json:"session_id"`
	Nonce     uint64 `json:"nonce"`
	URL       string `json:"url"`
	Attestor  string `json:"attestor"`
	IsActive  bool   `json:"is_active"`
}

// handleRegisterEndpoint records an attestor endpoint within the caller's
// session.
func (h *Handler) handleRegisterEndpoint(w http.ResponseWriter, r *http.Request) {
	var req registerEndpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	endpoint, err := h.registry.RegisterEndpoint(r.Context(),
		sessionmodels.Ref{SessionID: req.SessionID, Nonce: req.Nonce},
		registrymodels.Endpoint{
			URL:      req.URL,
			Attestor: domain.Address(req.Attestor),
			IsActive: req.IsActive,
		})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, endpoint)
}

type endpointStatusRequest struct {
	SessionID uint64 `json:"session_id"`
	Nonce     uint64 `json:"nonce"`
	IsActive  bool   `json:"is_active"`
}

// handleSetEndpointStatus activates or deactivates an attestor endpoint.
func (h *Handler) handleSetEndpointStatus(w http.ResponseWriter, r *http.Request) {
	attestor := chi.URLParam(r, "attestor")
	if attestor == "" {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "attestor is required"))
		return
	}

	var req endpointStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	endpoint, err := h.registry.SetEndpointActive(r.Context(),
		sessionmodels.Ref{SessionID: req.SessionID, Nonce: req.Nonce},
		domain.Address(attestor), req.IsActive)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, endpoint)
}

type registerServicesRequest struct {
	SessionID uint64   `json:"session_id"`
	Nonce     uint64   `json:"nonce"`
	Services  []string `json:"services"`
}

// handleRegisterServices records an anchor's capability set.
func (h *Handler) handleRegisterServices(w http.ResponseWriter, r *http.Request) {
	anchor := chi.URLParam(r, "anchor")
	if anchor == "" {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "anchor is required"))
		return
	}

	var req registerServicesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	services := make([]registrymodels.ServiceType, 0, len(req.Services))
	for _, name := range req.Services {
		svc, err := registrymodels.ParseServiceType(name)
		if err != nil {
			writeError(w, dErrors.Newf(dErrors.CodeBadRequest, "invalid service type %q", name))
			return
		}
		services = append(services, svc)
	}

	registered, err := h.registry.RegisterServices(r.Context(),
		sessionmodels.Ref{SessionID: req.SessionID, Nonce: req.Nonce},
		domain.Address(anchor), services)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, registered)
}

// handleGetEndpoint returns an attestor's registered endpoint.
func (h *Handler) handleGetEndpoint(w http.ResponseWriter, r *http.Request) {
	attestor := chi.URLParam(r, "attestor")
	endpoint, err := h.registry.LookupEndpoint(r.Context(), domain.Address(attestor))
	if err != nil {
		writeError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "endpoint not registered"))
		return
	}
	writeJSON(w, http.StatusOK, endpoint)
}
