package oraclemock

import (
	"context"
	"time"

	domain "lendvault-backend/internal/domain/oracle"
)

// Ensure compile-time compliance
var _ domain.PriceOracle = (*Oracle)(nil)

// Oracle is a function-backed mock that satisfies oracle.PriceOracle.
// With no LatestQuoteFn set it serves Price (or ErrNoQuote when zero).
type Oracle struct {
	Price         uint64
	LatestQuoteFn func(ctx context.Context) (domain.Quote, error)
}

func (m *Oracle) LatestQuote(ctx context.Context) (domain.Quote, error) {
	if m.LatestQuoteFn != nil {
		return m.LatestQuoteFn(ctx)
	}
	if m.Price == 0 {
		return domain.Quote{}, domain.ErrNoQuote
	}
	return domain.Quote{Price: m.Price, At: time.Now().UTC()}, nil
}
