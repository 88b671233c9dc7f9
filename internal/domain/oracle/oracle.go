package oracle

import (
	"context"
	"errors"
	"time"
)

var ErrNoQuote = errors.New("no price quote available")

// Quote is a point-in-time SOL/USD valuation. Price is USD cents per whole
// SOL (2 decimals), matching the feed the contract originally consumed.
// The ledger takes the quote as a given fact; freshness is the feed's job.
type Quote struct {
	Price uint64    `json:"price"`
	At    time.Time `json:"at"`
}

// PriceOracle returns the latest SOL/USD quote.
type PriceOracle interface {
	LatestQuote(ctx context.Context) (Quote, error)
}
