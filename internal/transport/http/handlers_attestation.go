package httptransport

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"

	attmodels "anchorledger/internal/attestation/models"
	attservice "anchorledger/internal/attestation/service"
	sessionmodels "anchorledger/internal/session/models"
	"anchorledger/pkg/domain"
	dErrors "anchorledger/pkg/domain-errors"
)

// AttestationService is the attestation surface the transport consumes.
type AttestationService interface {
	Issue(ctx context.Context, req attservice.IssueRequest) (attmodels.Attestation, error)
	Verify(ctx context.Context, id uint64, expectedPayloadHash []byte) (bool, error)
	Get(ctx context.Context, id uint64) (attmodels.Attestation, error)
}

type issueAttestationRequest struct {
	SessionID   uint64 `json:"session_id"`
	Nonce       uint64 `json:"nonce"`
	Issuer      string `json:"issuer"`
	Subject     string `json:"subject"`
	Timestamp   uint64 `json:"timestamp"`
	PayloadHash string `json:"payload_hash"`
	Signature   string `json:"signature"`
}

type attestationResponse struct {
	ID          uint64 `json:"id"`
	Issuer      string `json:"issuer"`
	Subject     string `json:"subject"`
	Timestamp   uint64 `json:"timestamp"`
	PayloadHash string `json:"payload_hash"`
	Signature   string `json:"signature"`
}

func toAttestationResponse(att attmodels.Attestation) attestationResponse {
	return attestationResponse{
		ID:          att.ID,
		Issuer:      att.Issuer.String(),
		Subject:     att.Subject.String(),
		Timestamp:   att.Timestamp,
		PayloadHash: hex.EncodeToString(att.PayloadHash),
		Signature:   hex.EncodeToString(att.Signature),
	}
}

// handleIssueAttestation issues one attestation within the caller's session.
func (h *Handler) handleIssueAttestation(w http.ResponseWriter, r *http.Request) {
	var req issueAttestationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	payloadHash, err := hex.DecodeString(req.PayloadHash)
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "payload_hash must be hex"))
		return
	}
	signature, err := hex.DecodeString(req.Signature)
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "signature must be hex"))
		return
	}

	att, err := h.attestations.Issue(r.Context(), attservice.IssueRequest{
		Session:     sessionmodels.Ref{SessionID: req.SessionID, Nonce: req.Nonce},
		Issuer:      domain.Address(req.Issuer),
		Subject:     domain.Address(req.Subject),
		Timestamp:   req.Timestamp,
		PayloadHash: payloadHash,
		Signature:   signature,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAttestationResponse(att))
}

// handleGetAttestation returns a stored attestation.
func (h *Handler) handleGetAttestation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "attestationID")
	if err != nil {
		writeError(w, err)
		return
	}

	att, err := h.attestations.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAttestationResponse(att))
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

// handleVerifyAttestation checks a stored attestation against an expected
// payload hash. Mismatch and unknown ID are valid=false, not errors.
func (h *Handler) handleVerifyAttestation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "attestationID")
	if err != nil {
		writeError(w, err)
		return
	}

	expected, err := hex.DecodeString(r.URL.Query().Get("payload_hash"))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "payload_hash must be hex"))
		return
	}

	valid, err := h.attestations.Verify(r.Context(), id, expected)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{Valid: valid})
}
