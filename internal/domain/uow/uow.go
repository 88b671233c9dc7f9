package uow

import (
	"context"

	"lendvault-backend/internal/domain/account"
	"lendvault-backend/internal/domain/token"
)

type Repos struct {
	Accounts account.Repository
	Tokens   token.Service
}

// UnitOfWork executes a ledger instruction as one atomic transition: every
// repository write and every token transfer inside fn commits together or
// not at all.
type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the account row first, then pass it in. This is
	// where at-most-one-writer-per-account is enforced.
	WithinAccountTx(ctx context.Context, ownerID string, fn func(r Repos, a *account.UserAccount) error) error
}
