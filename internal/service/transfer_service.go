package service

import (
	"fmt"

	"github.com/banklabs/teller/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransferService executes transfers between two of the card owner's
// accounts.
type TransferService struct {
	calc      FeeCalculator
	directory domain.Directory
}

// NewTransferService creates a new TransferService
func NewTransferService(calc FeeCalculator, directory domain.Directory) *TransferService {
	return &TransferService{calc: calc, directory: directory}
}

// Perform moves the amount from the source account to the destination
// account, deducting the transfer fee from the source only. The directory
// offers no cross-account write primitive, so the two writes run as an
// explicit pair: if the destination write fails after the source write
// succeeded, the source balance is restored before the failure is raised.
// Either both balances update or neither does.
func (s *TransferService) Perform(req *domain.TransactionRequest) (*domain.TransactionResult, error) {
	if failed := checkRequest(req, domain.TransactionTypeTransfer); failed != nil {
		return failed, nil
	}

	fromKind, toKind := req.Accounts[0], req.Accounts[1]
	if fromKind == toKind {
		return domain.NewFailedResult(domain.ReasonSameAccount), nil
	}

	owner, err := s.directory.CardOwner(req.CardNumber)
	if err != nil {
		return nil, fmt.Errorf("resolve card owner: %w", err)
	}

	fromBalance, err := s.directory.Balance(owner, fromKind)
	if err != nil {
		return nil, fmt.Errorf("read source balance: %w", err)
	}
	toBalance, err := s.directory.Balance(owner, toKind)
	if err != nil {
		return nil, fmt.Errorf("read destination balance: %w", err)
	}

	student, err := s.directory.IsStudent(owner)
	if err != nil {
		return nil, fmt.Errorf("read student status: %w", err)
	}

	fee := s.calc.Transfer(req.Amount, fromBalance, toBalance, student)

	total := req.Amount.Add(fee)
	if fromBalance.LessThan(total) {
		return domain.NewFailedResult(domain.ReasonInsufficientFunds), nil
	}

	newFrom := fromBalance.Sub(total)
	newTo := toBalance.Add(req.Amount)

	if err := s.directory.SetBalance(owner, fromKind, newFrom); err != nil {
		return nil, fmt.Errorf("write source balance: %w", err)
	}
	if err := s.directory.SetBalance(owner, toKind, newTo); err != nil {
		if rbErr := s.directory.SetBalance(owner, fromKind, fromBalance); rbErr != nil {
			log.Error().
				Err(rbErr).
				Str("card", maskCard(req.CardNumber)).
				Msg("Failed to restore source balance after rejected destination write")
		}
		return nil, fmt.Errorf("write destination balance: %w", err)
	}

	return domain.NewSuccessResult(fee, []decimal.Decimal{newFrom, newTo}), nil
}
