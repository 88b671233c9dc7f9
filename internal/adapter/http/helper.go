package http

import (
	"errors"
	stdhttp "net/http"
	"strings"

	"lendvault-backend/internal/domain/account"
	"lendvault-backend/internal/domain/oracle"
	"lendvault-backend/internal/domain/token"
)

// ---- helpers ----

// statusFor maps domain errors onto HTTP status codes. User-correctable
// rejections become 4xx; the fatal defect class (overflow, invariant) and
// anything unknown become 500 so callers never mistake a bug for bad input.
func statusFor(err error) int {
	switch {
	case errors.Is(err, account.ErrNotFound), errors.Is(err, account.ErrLoanNotFound):
		return stdhttp.StatusNotFound
	case errors.Is(err, account.ErrAlreadyExists):
		return stdhttp.StatusConflict
	case errors.Is(err, account.ErrInvalidAmount):
		return stdhttp.StatusBadRequest
	case errors.Is(err, account.ErrInvalidLTV),
		errors.Is(err, account.ErrMaxLoansReached),
		errors.Is(err, account.ErrInsufficientCollateral),
		errors.Is(err, account.ErrInsufficientFunds),
		errors.Is(err, account.ErrRepaymentExceedsPrincipal),
		errors.Is(err, token.ErrInsufficientBalance),
		errors.Is(err, token.ErrAccountNotFound):
		return stdhttp.StatusUnprocessableEntity
	case errors.Is(err, oracle.ErrNoQuote):
		return stdhttp.StatusServiceUnavailable
	default:
		return stdhttp.StatusInternalServerError
	}
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
