package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	accountDomain "lendvault-backend/internal/domain/account"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) Create(ctx context.Context, a *accountDomain.UserAccount) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AccountRepository) GetByOwnerID(ctx context.Context, ownerID string) (*accountDomain.UserAccount, error) {
	var out accountDomain.UserAccount
	res := r.db.WithContext(ctx).
		Preload("Loans", func(db *gorm.DB) *gorm.DB { return db.Order("loan_id ASC") }).
		Where("owner_id = ?", ownerID).
		First(&out)
	return &out, res.Error
}

// GetByOwnerIDForUpdate locks the account row for the current transaction.
// Loans are loaded after the lock is held so the snapshot is consistent.
func (r *AccountRepository) GetByOwnerIDForUpdate(ctx context.Context, ownerID string) (*accountDomain.UserAccount, error) {
	q := r.db.WithContext(ctx)
	// sqlite (tests) has no FOR UPDATE and is single-writer anyway
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out accountDomain.UserAccount
	res := q.Where("owner_id = ?", ownerID).First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", out.ID).
		Order("loan_id ASC").
		Find(&out.Loans).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AccountRepository) Save(ctx context.Context, a *accountDomain.UserAccount) error {
	// balances and counter only; loan rows are managed explicitly
	return r.db.WithContext(ctx).Omit("Loans").Save(a).Error
}

func (r *AccountRepository) AddLoan(ctx context.Context, l *accountDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *AccountRepository) SaveLoan(ctx context.Context, l *accountDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *AccountRepository) DeleteLoan(ctx context.Context, l *accountDomain.Loan) error {
	return r.db.WithContext(ctx).Delete(l).Error
}
