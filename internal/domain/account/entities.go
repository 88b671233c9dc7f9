package account

import (
	"errors"
	"time"
)

// MaxLoans is the per-account cap on concurrent loans. The loans table is
// growable at the SQL level; this cap is enforced at the API boundary so an
// account's footprint stays bounded.
const MaxLoans = 5

var (
	// user-correctable: rejected with no state change
	ErrAlreadyExists             = errors.New("account already exists for owner")
	ErrNotFound                  = errors.New("account not found")
	ErrInvalidLTV                = errors.New("invalid LTV tier")
	ErrInvalidAmount             = errors.New("amount must be greater than zero")
	ErrMaxLoansReached           = errors.New("maximum number of loans reached")
	ErrInsufficientCollateral    = errors.New("insufficient collateral for requested loan")
	ErrInsufficientFunds         = errors.New("insufficient funds for withdrawal")
	ErrLoanNotFound              = errors.New("loan not found")
	ErrRepaymentExceedsPrincipal = errors.New("repayment amount exceeds outstanding principal")

	// fatal defect class: should be unreachable given correct preconditions
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrInvariantViolation = errors.New("ledger invariant violated")
)

// Table: user_accounts. One row per owner; balances are in smallest units
// (lamports for SOL, 1e-6 for USDC).
type UserAccount struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	OwnerID      string    `gorm:"column:owner_id;type:char(32);not null;uniqueIndex:ux_accounts_owner" json:"owner_id"`
	SolBalance   uint64    `gorm:"column:sol_balance;not null;default:0" json:"sol_balance"`
	UsdcBalance  uint64    `gorm:"column:usdc_balance;not null;default:0" json:"usdc_balance"`
	LoanCounter  uint64    `gorm:"column:loan_counter;not null;default:0" json:"loan_counter"`
	Loans        []Loan    `gorm:"foreignKey:AccountID;references:ID" json:"loans"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (UserAccount) TableName() string { return "user_accounts" }

// Table: loans. LoanID is unique per account and assigned from the
// account's monotonic counter, never reused.
type Loan struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	AccountID  uint64    `gorm:"column:account_id;not null;uniqueIndex:ux_loans_account_loan" json:"-"`
	LoanID     uint64    `gorm:"column:loan_id;not null;uniqueIndex:ux_loans_account_loan" json:"loan_id"`
	Principal  uint64    `gorm:"column:principal;not null" json:"principal"`
	Collateral uint64    `gorm:"column:collateral;not null" json:"collateral"`
	LTV        uint8     `gorm:"column:ltv;not null" json:"ltv"`
	APY        uint8     `gorm:"column:apy;not null;default:0" json:"apy"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Loan) TableName() string { return "loans" }

// LockedCollateral sums the collateral held against every active loan.
func (a *UserAccount) LockedCollateral() uint64 {
	var sum uint64
	for _, l := range a.Loans {
		sum += l.Collateral
	}
	return sum
}

// Available returns the SOL withdrawable right now: total balance minus
// locked collateral. sol_balance >= locked is a ledger invariant; if it has
// been broken we report zero available rather than underflow.
func (a *UserAccount) Available() uint64 {
	locked := a.LockedCollateral()
	if a.SolBalance < locked {
		return 0
	}
	return a.SolBalance - locked
}

// FindLoan returns the index of the loan with the given id, or -1.
func (a *UserAccount) FindLoan(loanID uint64) int {
	for i := range a.Loans {
		if a.Loans[i].LoanID == loanID {
			return i
		}
	}
	return -1
}

// CheckedAdd returns a+b or ErrArithmeticOverflow.
func CheckedAdd(a, b uint64) (uint64, error) {
	s := a + b
	if s < a {
		return 0, ErrArithmeticOverflow
	}
	return s, nil
}

// CheckedSub returns a-b; underflow means a prior guard was wrong, so it is
// surfaced as an invariant violation, not a user error.
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrInvariantViolation
	}
	return a - b, nil
}
