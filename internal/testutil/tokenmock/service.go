package tokenmock

import (
	"context"

	domain "lendvault-backend/internal/domain/token"
)

// Ensure compile-time compliance
var _ domain.Service = (*Service)(nil)

// Service is a function-backed mock that satisfies token.Service. With no
// TransferFn set it records transfers and succeeds, so tests can assert on
// Calls or inject failures to exercise rollback paths.
type Service struct {
	TransferFn func(ctx context.Context, from, to string, amount uint64) error
	BalanceFn  func(ctx context.Context, owner string) (uint64, error)

	Calls []TransferCall
}

type TransferCall struct {
	From, To string
	Amount   uint64
}

func (m *Service) Transfer(ctx context.Context, from, to string, amount uint64) error {
	m.Calls = append(m.Calls, TransferCall{From: from, To: to, Amount: amount})
	if m.TransferFn != nil {
		return m.TransferFn(ctx, from, to, amount)
	}
	return nil
}

func (m *Service) Balance(ctx context.Context, owner string) (uint64, error) {
	if m.BalanceFn != nil {
		return m.BalanceFn(ctx, owner)
	}
	return 0, domain.ErrAccountNotFound
}
