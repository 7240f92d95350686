package models

import (
	"math/bits"

	registrymodels "anchorledger/internal/registry/models"
	"anchorledger/pkg/domain"
)

// bpsScale is the basis-point denominator: a rate of 10000 is 1.0.
const bpsScale = 10000

// QuoteData is an anchor's offered exchange rate and fee for an asset pair.
// Immutable once submitted; expiry is evaluated at comparison time.
type QuoteData struct {
	Anchor     domain.Address `json:"anchor"`
	BaseAsset  string         `json:"base_asset"`
	QuoteAsset string         `json:"quote_asset"`
	// Rate in basis points (10000 = 1.0).
	Rate uint64 `json:"rate"`
	// FeePercentage in basis points.
	FeePercentage uint32 `json:"fee_percentage"`
	MinimumAmount uint64 `json:"minimum_amount"`
	MaximumAmount uint64 `json:"maximum_amount"`
	// ValidUntil is a Unix timestamp.
	ValidUntil uint64 `json:"valid_until"`
	QuoteID    uint64 `json:"quote_id"`
}

// QuoteRequest asks for the best quote for an asset pair, amount, and
// operation type. OperationType is restricted to deposits or withdrawals.
type QuoteRequest struct {
	BaseAsset     string                     `json:"base_asset"`
	QuoteAsset    string                     `json:"quote_asset"`
	Amount        uint64                     `json:"amount"`
	OperationType registrymodels.ServiceType `json:"operation_type"`
}

// RateComparison is the computed comparison result. Derived, never stored.
type RateComparison struct {
	BestQuote QuoteData   `json:"best_quote"`
	AllQuotes []QuoteData `json:"all_quotes"`
	// ComparisonTimestamp is the Unix wall-clock time of the comparison.
	ComparisonTimestamp uint64 `json:"comparison_timestamp"`
}

// effectiveCost is the quote's rate adjusted by its fee under the
// buyer-pays-fee convention: rate × (10000 + fee) / 10000. The division is
// deferred; the scaled 128-bit product compares exactly without overflow or
// rounding.
func effectiveCost(q QuoteData) (hi, lo uint64) {
	return bits.Mul64(q.Rate, bpsScale+uint64(q.FeePercentage))
}

// Better reports whether a ranks strictly ahead of b: lower effective cost,
// then lower fee percentage, then lower quote ID. The final tie-break makes
// comparison results independent of storage order.
func Better(a, b QuoteData) bool {
	ahi, alo := effectiveCost(a)
	bhi, blo := effectiveCost(b)
	if ahi != bhi {
		return ahi < bhi
	}
	if alo != blo {
		return alo < blo
	}
	if a.FeePercentage != b.FeePercentage {
		return a.FeePercentage < b.FeePercentage
	}
	return a.QuoteID < b.QuoteID
}

// Eligible reports whether the quote can serve the request at the given
// time: matching pair, unexpired, and amount within the quote's range.
func (q QuoteData) Eligible(req QuoteRequest, now uint64) bool {
	return q.BaseAsset == req.BaseAsset &&
		q.QuoteAsset == req.QuoteAsset &&
		q.ValidUntil > now &&
		q.MinimumAmount <= req.Amount &&
		req.Amount <= q.MaximumAmount
}
