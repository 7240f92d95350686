package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "anchorledger/pkg/domain-errors"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates domain error codes to HTTP status. Anything without
// a recognized code is an internal error and its detail is not leaked.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)

	var status int
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidSignature, dErrors.CodeExpired:
		status = http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		status = http.StatusUnauthorized
	case dErrors.CodeForbidden, dErrors.CodeInactiveIssuer:
		status = http.StatusForbidden
	case dErrors.CodeNotFound, dErrors.CodeNoEligibleQuotes:
		status = http.StatusNotFound
	case dErrors.CodeConflict, dErrors.CodeReplayRejected:
		status = http.StatusConflict
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: string(dErrors.CodeInternal)})
		return
	}

	resp := errorResponse{Error: string(code)}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		resp.Message = domainErr.Message
	}
	writeJSON(w, status, resp)
}
