package oracle

import (
	"context"
	"time"

	domain "lendvault-backend/internal/domain/oracle"
)

// StaticOracle serves a fixed configured price. Used for local development
// and tests, matching the constant-price variant of the original contract.
type StaticOracle struct{ price uint64 }

func NewStaticOracle(price uint64) *StaticOracle { return &StaticOracle{price: price} }

func (o *StaticOracle) LatestQuote(ctx context.Context) (domain.Quote, error) {
	if o.price == 0 {
		return domain.Quote{}, domain.ErrNoQuote
	}
	return domain.Quote{Price: o.price, At: time.Now().UTC()}, nil
}
