package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionResult is the immutable outcome of one executor invocation.
// On success Fee holds the charge applied and Balances the post-transaction
// balances, positionally aligned with the request's account selectors. On
// failure Reason is non-empty, Fee is zero and Balances is nil: an executor
// never claims a balance it has not verified.
type TransactionResult struct {
	ID          uuid.UUID         `json:"id"`
	Successful  bool              `json:"successful"`
	Reason      string            `json:"reason"`
	Fee         decimal.Decimal   `json:"fee"`
	Balances    []decimal.Decimal `json:"balances,omitempty"`
	CompletedAt time.Time         `json:"completedAt"`
}

// NewSuccessResult builds a successful result carrying the charged fee and
// the post-transaction balances in selector order.
func NewSuccessResult(fee decimal.Decimal, balances []decimal.Decimal) *TransactionResult {
	out := make([]decimal.Decimal, len(balances))
	copy(out, balances)
	return &TransactionResult{
		ID:          uuid.New(),
		Successful:  true,
		Reason:      "",
		Fee:         fee,
		Balances:    out,
		CompletedAt: time.Now().UTC(),
	}
}

// NewFailedResult builds an unsuccessful result. The reason must describe
// the failure cause and must not be empty.
func NewFailedResult(reason string) *TransactionResult {
	return &TransactionResult{
		ID:          uuid.New(),
		Successful:  false,
		Reason:      reason,
		Fee:         decimal.Zero,
		CompletedAt: time.Now().UTC(),
	}
}
