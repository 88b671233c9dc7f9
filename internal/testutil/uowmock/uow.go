package uowmock

import (
	"context"
	"errors"

	"lendvault-backend/internal/domain/account"
	"lendvault-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn        func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinAccountTxFn func(ctx context.Context, ownerID string, fn func(r uow.Repos, a *account.UserAccount) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinAccountTx(fn func(context.Context, string, func(uow.Repos, *account.UserAccount) error) error) *UoW {
	m.WithinAccountTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinAccountTx(ctx context.Context, ownerID string, fn func(r uow.Repos, a *account.UserAccount) error) error {
	if m.WithinAccountTxFn != nil {
		return m.WithinAccountTxFn(ctx, ownerID, fn)
	}
	return errUnimplemented
}
