package service

import (
	"time"

	"github.com/banklabs/teller/internal/domain"
	"github.com/shopspring/decimal"
)

// FeeCalculator computes the fee for each transaction kind. Every function
// returns the already-scaled fee amount, not a rate.
type FeeCalculator interface {
	Deposit(amount, balance decimal.Decimal, student bool) decimal.Decimal
	Withdrawal(amount, balance decimal.Decimal, student bool, day time.Weekday) decimal.Decimal
	Transfer(amount, fromBalance, toBalance decimal.Decimal, student bool) decimal.Decimal
}

// Executor accepts one transaction request and produces one result. The
// error return carries directory-level failures (unknown card, unknown
// user, rejected balance write); business-rule rejections come back as an
// unsuccessful result with a reason and a nil error.
type Executor interface {
	Perform(req *domain.TransactionRequest) (*domain.TransactionResult, error)
}

// checkRequest runs the shared structural gate for an executor: the request
// must validate and carry the expected type and a positive amount. A nil
// result means the request may proceed.
func checkRequest(req *domain.TransactionRequest, want domain.TransactionType) *domain.TransactionResult {
	if req.Type != want || req.Validate() != nil {
		return domain.NewFailedResult(domain.ReasonInvalidRequest)
	}
	if !req.Amount.IsPositive() {
		return domain.NewFailedResult(domain.ReasonNonPositiveAmount)
	}
	return nil
}

// maskCard keeps the last four digits of a card number for logging.
func maskCard(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	return "****" + cardNumber[len(cardNumber)-4:]
}
