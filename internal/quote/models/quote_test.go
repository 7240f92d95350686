package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	registrymodels "anchorledger/internal/registry/models"
)

type QuoteModelSuite struct {
	suite.Suite
}

func TestQuoteModelSuite(t *testing.T) {
	suite.Run(t, new(QuoteModelSuite))
}

func (s *QuoteModelSuite) TestBetter() {
	base := QuoteData{
		Anchor:        "anchor-1",
		BaseAsset:     "USD",
		QuoteAsset:    "EUR",
		Rate:          10000,
		FeePercentage: 100,
		QuoteID:       1,
	}

	s.Run("lower effective cost wins", func() {
		cheap := base
		cheap.Rate = 9900
		s.True(Better(cheap, base))
		s.False(Better(base, cheap))
	})

	s.Run("fee raises effective cost", func() {
		pricier := base
		pricier.FeePercentage = 200
		s.True(Better(base, pricier))
	})

	s.Run("higher rate with lower fee can still win", func() {
		// 10000 × 10100 = 101_000_000 vs 10050 × 10000 = 100_500_000.
		flat := base
		flat.Rate = 10050
		flat.FeePercentage = 0
		flat.QuoteID = 2
		s.True(Better(flat, base))
	})

	s.Run("equal cost ties break on fee then quote ID", func() {
		a := base
		b := base
		b.QuoteID = 2
		s.True(Better(a, b))
		s.False(Better(b, a))
	})

	s.Run("large rates compare without overflow", func() {
		huge := base
		huge.Rate = math.MaxUint64
		huge.FeePercentage = 0
		s.True(Better(base, huge))
		s.False(Better(huge, base))
	})
}

func (s *QuoteModelSuite) TestEligible() {
	quote := QuoteData{
		Anchor:        "anchor-1",
		BaseAsset:     "USD",
		QuoteAsset:    "EUR",
		Rate:          10000,
		MinimumAmount: 100,
		MaximumAmount: 1000,
		ValidUntil:    2000,
		QuoteID:       1,
	}
	req := QuoteRequest{
		BaseAsset:     "USD",
		QuoteAsset:    "EUR",
		Amount:        500,
		OperationType: registrymodels.ServiceDeposits,
	}

	s.Run("in range and unexpired", func() {
		s.True(quote.Eligible(req, 1000))
	})

	s.Run("expired at the boundary", func() {
		s.False(quote.Eligible(req, 2000))
	})

	s.Run("amount bounds are inclusive", func() {
		atMin := req
		atMin.Amount = 100
		s.True(quote.Eligible(atMin, 1000))

		atMax := req
		atMax.Amount = 1000
		s.True(quote.Eligible(atMax, 1000))

		below := req
		below.Amount = 99
		s.False(quote.Eligible(below, 1000))

		above := req
		above.Amount = 1001
		s.False(quote.Eligible(above, 1000))
	})

	s.Run("pair mismatch", func() {
		other := req
		other.QuoteAsset = "GBP"
		s.False(quote.Eligible(other, 1000))
	})
}
