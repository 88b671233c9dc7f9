package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"lendvault-backend/internal/domain/account"
	"lendvault-backend/internal/domain/oracle"
	"lendvault-backend/internal/domain/token"
	"lendvault-backend/internal/domain/uow"
	"lendvault-backend/internal/policy"
)

// Usecase is the account ledger: it owns every state transition on a
// UserAccount. Each operation runs inside one unit-of-work transaction with
// the account row locked, so a transition is either fully applied or fully
// rejected — including the token transfers it requests.
type Usecase struct {
	uow    uow.UnitOfWork
	policy *policy.Policy
	oracle oracle.PriceOracle
}

func NewUsecase(tx uow.UnitOfWork, p *policy.Policy, o oracle.PriceOracle) *Usecase {
	return &Usecase{uow: tx, policy: p, oracle: o}
}

// Create provisions an empty account for the owner. Duplicate owners are
// rejected; idempotency is the caller's responsibility.
func (u *Usecase) Create(ctx context.Context, in CreateAccountInput) (*AccountDTO, error) {
	var dto *AccountDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		_, err := r.Accounts.GetByOwnerID(ctx, in.OwnerID)
		switch {
		case err == nil:
			return account.ErrAlreadyExists
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		a := &account.UserAccount{OwnerID: in.OwnerID}
		if err := r.Accounts.Create(ctx, a); err != nil {
			return err
		}
		dto = toAccountDTO(a)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// Get returns the account with its active loans.
func (u *Usecase) Get(ctx context.Context, ownerID string) (*AccountDTO, error) {
	var dto *AccountDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Accounts.GetByOwnerID(ctx, ownerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return account.ErrNotFound
			}
			return err
		}
		dto = toAccountDTO(a)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// DepositAndOriginate deposits SOL collateral and takes a USDC loan against
// it in a single atomic step. There is no deposit-only path; this is the
// only way a loan comes into existence.
func (u *Usecase) DepositAndOriginate(ctx context.Context, in OriginateInput) (*LoanDTO, error) {
	if in.UsdcAmount == 0 || in.SolAmount == 0 {
		return nil, account.ErrInvalidAmount
	}

	var dto *LoanDTO
	err := u.uow.WithinAccountTx(ctx, in.OwnerID, func(r uow.Repos, a *account.UserAccount) error {
		tier, err := u.policy.TierFor(in.LTV)
		if err != nil {
			return err
		}
		if len(a.Loans) >= account.MaxLoans {
			return account.ErrMaxLoansReached
		}

		quote, err := u.oracle.LatestQuote(ctx)
		if err != nil {
			return fmt.Errorf("price oracle: %w", err)
		}
		maxStable, err := u.policy.MaxStable(in.SolAmount, quote, tier.LTV)
		if err != nil {
			return err
		}
		if in.UsdcAmount > maxStable {
			return account.ErrInsufficientCollateral
		}

		if a.SolBalance, err = account.CheckedAdd(a.SolBalance, in.SolAmount); err != nil {
			return err
		}
		if a.LoanCounter, err = account.CheckedAdd(a.LoanCounter, 1); err != nil {
			return err
		}
		if a.UsdcBalance, err = account.CheckedAdd(a.UsdcBalance, in.UsdcAmount); err != nil {
			return err
		}

		l := &account.Loan{
			AccountID:  a.ID,
			LoanID:     a.LoanCounter,
			Principal:  in.UsdcAmount,
			Collateral: in.SolAmount,
			LTV:        tier.LTV,
			APY:        tier.APY,
		}

		// disburse from the pool; failure rolls the whole instruction back
		if err := r.Tokens.Transfer(ctx, token.PoolAccount, in.OwnerID, in.UsdcAmount); err != nil {
			return fmt.Errorf("disburse %d to %s: %w", in.UsdcAmount, in.OwnerID, err)
		}

		if err := r.Accounts.Save(ctx, a); err != nil {
			return err
		}
		if err := r.Accounts.AddLoan(ctx, l); err != nil {
			return err
		}

		log.Printf("ledger: loan created owner=%s loan_id=%d principal=%d collateral=%d ltv=%d apy=%d price=%d",
			in.OwnerID, l.LoanID, l.Principal, l.Collateral, l.LTV, l.APY, quote.Price)
		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// Repay pays down a loan. Full repayment removes the loan and releases its
// collateral toward the withdrawable balance; partial repayment just
// reduces the principal.
func (u *Usecase) Repay(ctx context.Context, in RepayInput) (*RepayDTO, error) {
	if in.Amount == 0 {
		return nil, account.ErrInvalidAmount
	}

	var dto *RepayDTO
	err := u.uow.WithinAccountTx(ctx, in.OwnerID, func(r uow.Repos, a *account.UserAccount) error {
		idx := a.FindLoan(in.LoanID)
		if idx < 0 {
			return account.ErrLoanNotFound
		}
		l := &a.Loans[idx]
		if in.Amount > l.Principal {
			return account.ErrRepaymentExceedsPrincipal
		}

		// pull the repayment into the pool before touching any state; a
		// failed transfer must leave the account untouched
		if err := r.Tokens.Transfer(ctx, in.OwnerID, token.PoolAccount, in.Amount); err != nil {
			return fmt.Errorf("collect %d from %s: %w", in.Amount, in.OwnerID, err)
		}

		var err error
		if l.Principal, err = account.CheckedSub(l.Principal, in.Amount); err != nil {
			return err
		}
		if a.UsdcBalance, err = account.CheckedSub(a.UsdcBalance, in.Amount); err != nil {
			return err
		}

		dto = &RepayDTO{LoanID: l.LoanID, Repaid: in.Amount, RemainingPrincipal: l.Principal}
		if l.Principal == 0 {
			dto.Closed = true
			dto.CollateralReleased = l.Collateral
			if err := r.Accounts.DeleteLoan(ctx, l); err != nil {
				return err
			}
			a.Loans = append(a.Loans[:idx], a.Loans[idx+1:]...)
			log.Printf("ledger: loan repaid owner=%s loan_id=%d amount=%d collateral_released=%d",
				in.OwnerID, dto.LoanID, in.Amount, dto.CollateralReleased)
		} else {
			if err := r.Accounts.SaveLoan(ctx, l); err != nil {
				return err
			}
			log.Printf("ledger: partial repayment owner=%s loan_id=%d amount=%d remaining=%d",
				in.OwnerID, dto.LoanID, in.Amount, l.Principal)
		}
		return r.Accounts.Save(ctx, a)
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// Withdraw releases unlocked SOL back to the owner. Collateral backing
// active loans is never withdrawable.
func (u *Usecase) Withdraw(ctx context.Context, in WithdrawInput) (*WithdrawDTO, error) {
	if in.Amount == 0 {
		return nil, account.ErrInvalidAmount
	}

	var dto *WithdrawDTO
	err := u.uow.WithinAccountTx(ctx, in.OwnerID, func(r uow.Repos, a *account.UserAccount) error {
		if in.Amount > a.Available() {
			return account.ErrInsufficientFunds
		}
		var err error
		if a.SolBalance, err = account.CheckedSub(a.SolBalance, in.Amount); err != nil {
			return err
		}
		if err := r.Accounts.Save(ctx, a); err != nil {
			return err
		}
		// the native-asset transfer back to the owner is the settlement
		// layer's job; the ledger records the instruction
		log.Printf("ledger: withdraw owner=%s amount=%d balance=%d", in.OwnerID, in.Amount, a.SolBalance)
		dto = &WithdrawDTO{OwnerID: in.OwnerID, Amount: in.Amount, SolBalance: a.SolBalance, AvailableSol: a.Available()}
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return dto, nil
}

// mapNotFound translates the row-lock miss from WithinAccountTx into the
// domain's not-found error.
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return account.ErrNotFound
	}
	return err
}

func toLoanDTO(l *account.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:     l.LoanID,
		Principal:  l.Principal,
		Collateral: l.Collateral,
		LTV:        l.LTV,
		APY:        l.APY,
		CreatedAt:  l.CreatedAt,
	}
}

func toAccountDTO(a *account.UserAccount) *AccountDTO {
	loans := make([]LoanDTO, 0, len(a.Loans))
	for i := range a.Loans {
		loans = append(loans, *toLoanDTO(&a.Loans[i]))
	}
	return &AccountDTO{
		OwnerID:      a.OwnerID,
		SolBalance:   a.SolBalance,
		UsdcBalance:  a.UsdcBalance,
		AvailableSol: a.Available(),
		LoanCounter:  a.LoanCounter,
		Loans:        loans,
		CreatedAt:    a.CreatedAt,
	}
}
