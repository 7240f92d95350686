package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	quotemodels "anchorledger/internal/quote/models"
	registrymodels "anchorledger/internal/registry/models"
	sessionmodels "anchorledger/internal/session/models"
	"anchorledger/pkg/domain"
	dErrors "anchorledger/pkg/domain-errors"
)

// QuoteService is the quote surface the transport consumes.
type QuoteService interface {
	Submit(ctx context.Context, ref sessionmodels.Ref, q quotemodels.QuoteData) (quotemodels.QuoteData, error)
	Compare(ctx context.Context, ref sessionmodels.Ref, req quotemodels.QuoteRequest) (quotemodels.RateComparison, error)
	List(ctx context.Context, baseAsset, quoteAsset string) ([]quotemodels.QuoteData, error)
}

type submitQuoteRequest struct {
	SessionID     uint64 `json:"session_id"`
	Nonce         uint64 `json:"nonce"`
	Anchor        string `json:"anchor"`
	BaseAsset     string `json:"base_asset"`
	QuoteAsset    string `json:"quote_asset"`
	Rate          uint64 `json:"rate"`
	FeePercentage uint32 `json:"fee_percentage"`
	MinimumAmount uint64 `json:"minimum_amount"`
	MaximumAmount uint64 `json:"maximum_amount"`
	ValidUntil    uint64 `json:"valid_until"`
	QuoteID       uint64 `json:"quote_id"`
}

// handleSubmitQuote stores one quote within the caller's session.
func (h *Handler) handleSubmitQuote(w http.ResponseWriter, r *http.Request) {
	var req submitQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	quote, err := h.quotes.Submit(r.Context(),
		sessionmodels.Ref{SessionID: req.SessionID, Nonce: req.Nonce},
		quotemodels.QuoteData{
			Anchor:        domain.Address(req.Anchor),
			BaseAsset:     req.BaseAsset,
			QuoteAsset:    req.QuoteAsset,
			Rate:          req.Rate,
			FeePercentage: req.FeePercentage,
			MinimumAmount: req.MinimumAmount,
			MaximumAmount: req.MaximumAmount,
			ValidUntil:    req.ValidUntil,
			QuoteID:       req.QuoteID,
		})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quote)
}

type compareQuotesRequest struct {
	SessionID     uint64 `json:"session_id"`
	Nonce         uint64 `json:"nonce"`
	BaseAsset     string `json:"base_asset"`
	QuoteAsset    string `json:"quote_asset"`
	Amount        uint64 `json:"amount"`
	OperationType string `json:"operation_type"`
}

// handleCompareQuotes runs a rate comparison within the caller's session.
func (h *Handler) handleCompareQuotes(w http.ResponseWriter, r *http.Request) {
	var req compareQuotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	opType, err := registrymodels.ParseServiceType(req.OperationType)
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid operation_type"))
		return
	}

	comparison, err := h.quotes.Compare(r.Context(),
		sessionmodels.Ref{SessionID: req.SessionID, Nonce: req.Nonce},
		quotemodels.QuoteRequest{
			BaseAsset:     req.BaseAsset,
			QuoteAsset:    req.QuoteAsset,
			Amount:        req.Amount,
			OperationType: opType,
		})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

// handleListQuotes returns all stored quotes for an asset pair.
func (h *Handler) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.quotes.List(r.Context(), r.URL.Query().Get("base"), r.URL.Query().Get("quote"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}
