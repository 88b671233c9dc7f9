package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	tokenDomain "lendvault-backend/internal/domain/token"
)

// TokenAccount mirrors the SPL token accounts the contract used to move
// USDC through: one row per holder, plus the contract pool row.
type TokenAccount struct {
	ID      uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Owner   string `gorm:"column:owner;type:varchar(32);not null;uniqueIndex:ux_token_accounts_owner"`
	Balance uint64 `gorm:"column:balance;not null;default:0"`
}

func (TokenAccount) TableName() string { return "token_accounts" }

// TokenRepository is the stablecoin transfer collaborator. Bound to the
// same *gorm.DB (or tx) as the account repository, so a ledger instruction
// and its transfers commit or roll back as one.
type TokenRepository struct{ db *gorm.DB }

func NewTokenRepository(db *gorm.DB) *TokenRepository { return &TokenRepository{db: db} }

func (r *TokenRepository) Transfer(ctx context.Context, from, to string, amount uint64) error {
	// guarded debit: only fires when the source can cover the amount
	res := r.db.WithContext(ctx).
		Model(&TokenAccount{}).
		Where("owner = ? AND balance >= ?", from, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var src TokenAccount
		err := r.db.WithContext(ctx).Where("owner = ?", from).First(&src).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tokenDomain.ErrAccountNotFound
		}
		if err != nil {
			return err
		}
		return tokenDomain.ErrInsufficientBalance
	}

	// credit; destination accounts come into existence on first credit
	res = r.db.WithContext(ctx).
		Model(&TokenAccount{}).
		Where("owner = ?", to).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.db.WithContext(ctx).Create(&TokenAccount{Owner: to, Balance: amount}).Error
	}
	return nil
}

func (r *TokenRepository) Balance(ctx context.Context, owner string) (uint64, error) {
	var out TokenAccount
	err := r.db.WithContext(ctx).Where("owner = ?", owner).First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, tokenDomain.ErrAccountNotFound
		}
		return 0, err
	}
	return out.Balance, nil
}

// EnsurePool seeds the contract pool with its initial supply on first boot.
// An existing pool row is left alone.
func (r *TokenRepository) EnsurePool(ctx context.Context, initialSupply uint64) error {
	var pool TokenAccount
	err := r.db.WithContext(ctx).Where("owner = ?", tokenDomain.PoolAccount).First(&pool).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(&TokenAccount{
		Owner:   tokenDomain.PoolAccount,
		Balance: initialSupply,
	}).Error
}
