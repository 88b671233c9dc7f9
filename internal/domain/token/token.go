package token

import (
	"context"
	"errors"
)

// PoolAccount is the contract-held USDC pool every loan is disbursed from
// and every repayment flows back into.
const PoolAccount = "pool"

var (
	ErrAccountNotFound     = errors.New("token account not found")
	ErrInsufficientBalance = errors.New("insufficient token balance")
)

// Service moves stablecoin between the pool and user token accounts.
// A failed transfer must abort the whole ledger operation, so
// implementations are expected to enlist in the caller's transaction.
type Service interface {
	// Transfer moves amount (smallest units) from one token account to
	// another. Missing destination accounts are created on first credit.
	Transfer(ctx context.Context, from, to string, amount uint64) error

	// Balance reports the current balance of a token account.
	Balance(ctx context.Context, owner string) (uint64, error)
}
