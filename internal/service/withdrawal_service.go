package service

import (
	"fmt"

	"github.com/banklabs/teller/internal/domain"
	"github.com/banklabs/teller/internal/util"
	"github.com/shopspring/decimal"
)

// WithdrawalService executes withdrawal transactions. The clock is injected
// so the weekday feeding the fee tier is deterministic under test.
type WithdrawalService struct {
	calc      FeeCalculator
	directory domain.Directory
	clock     util.Clock
}

// NewWithdrawalService creates a new WithdrawalService
func NewWithdrawalService(calc FeeCalculator, directory domain.Directory, clock util.Clock) *WithdrawalService {
	return &WithdrawalService{calc: calc, directory: directory, clock: clock}
}

// Perform debits the selected account by the amount plus the computed
// withdrawal fee. The account must cover amount plus fee; otherwise the
// request is rejected before any write.
func (s *WithdrawalService) Perform(req *domain.TransactionRequest) (*domain.TransactionResult, error) {
	if failed := checkRequest(req, domain.TransactionTypeWithdrawal); failed != nil {
		return failed, nil
	}

	owner, err := s.directory.CardOwner(req.CardNumber)
	if err != nil {
		return nil, fmt.Errorf("resolve card owner: %w", err)
	}

	kind := req.Accounts[0]
	balance, err := s.directory.Balance(owner, kind)
	if err != nil {
		return nil, fmt.Errorf("read balance: %w", err)
	}

	student, err := s.directory.IsStudent(owner)
	if err != nil {
		return nil, fmt.Errorf("read student status: %w", err)
	}

	day := s.clock.Now().Weekday()
	fee := s.calc.Withdrawal(req.Amount, balance, student, day)

	total := req.Amount.Add(fee)
	if balance.LessThan(total) {
		return domain.NewFailedResult(domain.ReasonInsufficientFunds), nil
	}

	newBalance := balance.Sub(total)
	if err := s.directory.SetBalance(owner, kind, newBalance); err != nil {
		return nil, fmt.Errorf("write balance: %w", err)
	}

	return domain.NewSuccessResult(fee, []decimal.Decimal{newBalance}), nil
}
