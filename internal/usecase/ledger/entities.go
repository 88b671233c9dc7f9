package ledger

import "time"

type CreateAccountInput struct {
	OwnerID string `json:"owner_id"`
}

type OriginateInput struct {
	OwnerID    string `json:"owner_id"`
	SolAmount  uint64 `json:"sol_amount"`
	UsdcAmount uint64 `json:"usdc_amount"`
	LTV        uint8  `json:"ltv"`
}

type RepayInput struct {
	OwnerID string `json:"owner_id"`
	LoanID  uint64 `json:"loan_id"`
	Amount  uint64 `json:"amount"`
}

type WithdrawInput struct {
	OwnerID string `json:"owner_id"`
	Amount  uint64 `json:"amount"`
}

type LoanDTO struct {
	LoanID     uint64    `json:"loan_id"`
	Principal  uint64    `json:"principal"`
	Collateral uint64    `json:"collateral"`
	LTV        uint8     `json:"ltv"`
	APY        uint8     `json:"apy"`
	CreatedAt  time.Time `json:"created_at"`
}

type AccountDTO struct {
	OwnerID      string    `json:"owner_id"`
	SolBalance   uint64    `json:"sol_balance"`
	UsdcBalance  uint64    `json:"usdc_balance"`
	AvailableSol uint64    `json:"available_sol"`
	LoanCounter  uint64    `json:"loan_counter"`
	Loans        []LoanDTO `json:"loans"`
	CreatedAt    time.Time `json:"created_at"`
}

type RepayDTO struct {
	LoanID             uint64 `json:"loan_id"`
	Repaid             uint64 `json:"repaid"`
	RemainingPrincipal uint64 `json:"remaining_principal"`
	Closed             bool   `json:"closed"`
	CollateralReleased uint64 `json:"collateral_released"`
}

type WithdrawDTO struct {
	OwnerID      string `json:"owner_id"`
	Amount       uint64 `json:"amount"`
	SolBalance   uint64 `json:"sol_balance"`
	AvailableSol uint64 `json:"available_sol"`
}
