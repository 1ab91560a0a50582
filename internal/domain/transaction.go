package domain

import (
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTransfer   TransactionType = "transfer"
)

type AccountKind string

const (
	AccountChequing AccountKind = "chequing"
	AccountSavings  AccountKind = "savings"
)

// SelectorCount maps transaction types to the number of account selectors
// the request must carry. Transfers name source then destination.
var SelectorCount = map[TransactionType]int{
	TransactionTypeDeposit:    1,
	TransactionTypeWithdrawal: 1,
	TransactionTypeTransfer:   2,
}

// TransactionRequest is the caller-constructed description of a single
// transaction. It is built once, passed to exactly one executor invocation
// and never mutated. The PIN is opaque to the core and must never be logged.
type TransactionRequest struct {
	CardNumber string
	PIN        []byte
	Type       TransactionType
	Accounts   []AccountKind
	Amount     decimal.Decimal
}

// NewTransactionRequest builds a request. The accounts slice is copied so
// later mutation by the caller cannot leak into an in-flight transaction.
func NewTransactionRequest(cardNumber string, pin []byte, txType TransactionType, accounts []AccountKind, amount decimal.Decimal) *TransactionRequest {
	kinds := make([]AccountKind, len(accounts))
	copy(kinds, accounts)
	return &TransactionRequest{
		CardNumber: cardNumber,
		PIN:        pin,
		Type:       txType,
		Accounts:   kinds,
		Amount:     amount,
	}
}

// Validate checks the structural invariants: a known transaction type, a
// selector count matching that type, known account kinds and a non-negative
// amount. Zero amounts pass here; executors reject them per operation.
func (r *TransactionRequest) Validate() error {
	want, ok := SelectorCount[r.Type]
	if !ok {
		return ErrInvalidRequest
	}
	if len(r.Accounts) != want {
		return ErrInvalidRequest
	}
	for _, kind := range r.Accounts {
		if kind != AccountChequing && kind != AccountSavings {
			return ErrInvalidRequest
		}
	}
	if r.Amount.IsNegative() {
		return ErrInvalidRequest
	}
	return nil
}
