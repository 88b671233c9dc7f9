package http

import (
	"errors"
	stdhttp "net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"lendvault-backend/internal/usecase/ledger"
	"lendvault-backend/pkg/id"
)

type AccountHandler struct{ uc *ledger.Usecase }

func NewAccountHandler(uc *ledger.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

// owner_id is the caller's principal identity; when omitted a fresh one is
// minted for them.
type createAccountReq struct {
	OwnerID string `json:"owner_id" validate:"omitempty,hex32"`
}

type originateReq struct {
	SolAmount  uint64 `json:"sol_amount" validate:"required,gt=0"`
	UsdcAmount uint64 `json:"usdc_amount" validate:"required,gt=0"`
	LTV        uint8  `json:"ltv" validate:"required"`
}

type amountReq struct {
	Amount uint64 `json:"amount" validate:"required,gt=0"`
}

func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req createAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	if req.OwnerID == "" {
		req.OwnerID = id.NewID32()
	}
	dto, err := h.uc.Create(c.Request().Context(), ledger.CreateAccountInput{OwnerID: req.OwnerID})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(stdhttp.StatusCreated, dto)
}

func (h *AccountHandler) GetAccount(c echo.Context) error {
	ownerID, err := ownerParam(c)
	if err != nil {
		return c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	dto, err := h.uc.Get(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(stdhttp.StatusOK, dto)
}

func (h *AccountHandler) Originate(c echo.Context) error {
	ownerID, err := ownerParam(c)
	if err != nil {
		return c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var req originateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.DepositAndOriginate(c.Request().Context(), ledger.OriginateInput{
		OwnerID:    ownerID,
		SolAmount:  req.SolAmount,
		UsdcAmount: req.UsdcAmount,
		LTV:        req.LTV,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(stdhttp.StatusCreated, dto)
}

func (h *AccountHandler) Repay(c echo.Context) error {
	ownerID, err := ownerParam(c)
	if err != nil {
		return c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	loanID, err := strconv.ParseUint(c.Param("loan_id"), 10, 64)
	if err != nil || loanID == 0 {
		return c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Repay(c.Request().Context(), ledger.RepayInput{
		OwnerID: ownerID,
		LoanID:  loanID,
		Amount:  req.Amount,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(stdhttp.StatusOK, dto)
}

func (h *AccountHandler) Withdraw(c echo.Context) error {
	ownerID, err := ownerParam(c)
	if err != nil {
		return c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Withdraw(c.Request().Context(), ledger.WithdrawInput{OwnerID: ownerID, Amount: req.Amount})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(stdhttp.StatusOK, dto)
}

func ownerParam(c echo.Context) (string, error) {
	ownerID := c.Param("owner_id")
	if !reHex32.MatchString(ownerID) {
		return "", errors.New("owner_id must be 32-char lowercase hex")
	}
	return ownerID, nil
}
