package httptransport

import (
	"context"
	"net/http"
	"strconv"

	ledgermodels "anchorledger/internal/ledger/models"
	dErrors "anchorledger/pkg/domain-errors"
)

// LedgerService is the audit trail surface the transport consumes.
type LedgerService interface {
	List(ctx context.Context, sessionID, fromIndex, toIndex uint64) ([]ledgermodels.AuditLog, error)
	Size(ctx context.Context) (uint64, error)
}

// handleListAudit returns a session's audit entries with operation index in
// [from, to). Defaults cover the whole trail when the bounds are omitted.
func (h *Handler) handleListAudit(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathID(r, "sessionID")
	if err != nil {
		writeError(w, err)
		return
	}

	fromIndex, toIndex := uint64(0), uint64(1<<62)
	if raw := r.URL.Query().Get("from"); raw != "" {
		fromIndex, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid from index"))
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		toIndex, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid to index"))
			return
		}
	}

	entries, err := h.ledger.List(r.Context(), sessionID, fromIndex, toIndex)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []ledgermodels.AuditLog{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// handleLedgerSize reports the total number of appended audit entries.
func (h *Handler) handleLedgerSize(w http.ResponseWriter, r *http.Request) {
	n, err := h.ledger.Size(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"size": n})
}
