package accountmock

import (
	"context"

	domain "lendvault-backend/internal/domain/account"

	"gorm.io/gorm"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies account.Repository.
// Only fill the function fields a test needs; reads default to not-found
// and writes default to success.
type Repo struct {
	CreateFn                func(ctx context.Context, a *domain.UserAccount) error
	GetByOwnerIDFn          func(ctx context.Context, ownerID string) (*domain.UserAccount, error)
	GetByOwnerIDForUpdateFn func(ctx context.Context, ownerID string) (*domain.UserAccount, error)
	SaveFn                  func(ctx context.Context, a *domain.UserAccount) error
	AddLoanFn               func(ctx context.Context, l *domain.Loan) error
	SaveLoanFn              func(ctx context.Context, l *domain.Loan) error
	DeleteLoanFn            func(ctx context.Context, l *domain.Loan) error
}

func (m *Repo) Create(ctx context.Context, a *domain.UserAccount) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByOwnerID(ctx context.Context, ownerID string) (*domain.UserAccount, error) {
	if m.GetByOwnerIDFn != nil {
		return m.GetByOwnerIDFn(ctx, ownerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByOwnerIDForUpdate(ctx context.Context, ownerID string) (*domain.UserAccount, error) {
	if m.GetByOwnerIDForUpdateFn != nil {
		return m.GetByOwnerIDForUpdateFn(ctx, ownerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, a *domain.UserAccount) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) AddLoan(ctx context.Context, l *domain.Loan) error {
	if m.AddLoanFn != nil {
		return m.AddLoanFn(ctx, l)
	}
	return nil
}

func (m *Repo) SaveLoan(ctx context.Context, l *domain.Loan) error {
	if m.SaveLoanFn != nil {
		return m.SaveLoanFn(ctx, l)
	}
	return nil
}

func (m *Repo) DeleteLoan(ctx context.Context, l *domain.Loan) error {
	if m.DeleteLoanFn != nil {
		return m.DeleteLoanFn(ctx, l)
	}
	return nil
}
