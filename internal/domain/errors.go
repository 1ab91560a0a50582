package domain

import "errors"

// Domain errors. The directory classes (card/user/update) are raised from
// executors as Go errors; the business-rule classes surface as unsuccessful
// results instead. See the reason constants below.
var (
	ErrCardNotFound        = errors.New("card not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrBalanceUpdateFailed = errors.New("unsuccessful balance update")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidRequest      = errors.New("invalid transaction request")
)

// Failure reasons carried by unsuccessful TransactionResults.
const (
	ReasonInsufficientFunds = "insufficient funds"
	ReasonInvalidRequest    = "invalid transaction request"
	ReasonNonPositiveAmount = "amount must be greater than zero"
	ReasonSameAccount       = "source and destination accounts must differ"
)
