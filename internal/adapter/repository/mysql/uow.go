package mysql

import (
	"context"

	"gorm.io/gorm"

	"lendvault-backend/internal/domain/account"
	"lendvault-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Accounts: &AccountRepository{db: tx},
			Tokens:   &TokenRepository{db: tx},
		}
		return fn(r)
	})
}

func (u *GormUoW) WithinAccountTx(ctx context.Context, ownerID string, fn func(r uow.Repos, a *account.UserAccount) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Accounts: &AccountRepository{db: tx},
			Tokens:   &TokenRepository{db: tx},
		}
		// lock the account row up-front to prevent races
		a, err := r.Accounts.GetByOwnerIDForUpdate(ctx, ownerID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
