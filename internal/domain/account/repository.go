package account

import "context"

type Repository interface {
	// Create a new account (DB uniqueness ensures at most one per owner)
	Create(ctx context.Context, a *UserAccount) error

	// Get account with loans preloaded
	GetByOwnerID(ctx context.Context, ownerID string) (*UserAccount, error)

	// Same, but with the account row locked for the current transaction
	GetByOwnerIDForUpdate(ctx context.Context, ownerID string) (*UserAccount, error)

	// Persist balance/counter changes on the account row
	Save(ctx context.Context, a *UserAccount) error

	// Append a loan row for the account
	AddLoan(ctx context.Context, l *Loan) error

	// Persist a principal change on one loan row
	SaveLoan(ctx context.Context, l *Loan) error

	// Remove a fully repaid loan row
	DeleteLoan(ctx context.Context, l *Loan) error
}
