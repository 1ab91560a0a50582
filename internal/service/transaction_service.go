package service

import (
	"github.com/banklabs/teller/internal/domain"
	"github.com/banklabs/teller/internal/metrics"
	"github.com/banklabs/teller/internal/websocket"
	"github.com/rs/zerolog/log"
)

const (
	outcomeCompleted = "completed"
	outcomeRejected  = "rejected"
	outcomeError     = "error"
)

// TransactionService validates requests, dispatches them to the executor
// for their type, and reports outcomes to metrics and the event feed.
type TransactionService struct {
	executors map[domain.TransactionType]Executor
	publisher websocket.EventPublisher
	recorder  *metrics.Recorder
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(deposit, withdrawal, transfer Executor, publisher websocket.EventPublisher, recorder *metrics.Recorder) *TransactionService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &TransactionService{
		executors: map[domain.TransactionType]Executor{
			domain.TransactionTypeDeposit:    deposit,
			domain.TransactionTypeWithdrawal: withdrawal,
			domain.TransactionTypeTransfer:   transfer,
		},
		publisher: publisher,
		recorder:  recorder,
	}
}

// Execute runs one transaction request to completion. Directory failures
// propagate as errors; business-rule rejections come back as an
// unsuccessful result. The request's PIN is never logged.
func (s *TransactionService) Execute(req *domain.TransactionRequest) (*domain.TransactionResult, error) {
	if err := req.Validate(); err != nil {
		result := domain.NewFailedResult(domain.ReasonInvalidRequest)
		s.recorder.ObserveTransaction(string(req.Type), outcomeRejected)
		return result, nil
	}

	executor := s.executors[req.Type]
	result, err := executor.Perform(req)
	if err != nil {
		s.recorder.ObserveTransaction(string(req.Type), outcomeError)
		log.Warn().
			Err(err).
			Str("card", maskCard(req.CardNumber)).
			Str("type", string(req.Type)).
			Msg("Transaction failed")
		return nil, err
	}

	if result.Successful {
		s.recorder.ObserveTransaction(string(req.Type), outcomeCompleted)
		s.recorder.ObserveFee(string(req.Type), result.Fee)
		s.publisher.Publish(req.CardNumber, websocket.TransactionCompleted(result))
		log.Info().
			Str("card", maskCard(req.CardNumber)).
			Str("type", string(req.Type)).
			Str("fee", result.Fee.String()).
			Msg("Transaction completed")
	} else {
		s.recorder.ObserveTransaction(string(req.Type), outcomeRejected)
		s.publisher.Publish(req.CardNumber, websocket.TransactionFailed(result))
		log.Info().
			Str("card", maskCard(req.CardNumber)).
			Str("type", string(req.Type)).
			Str("reason", result.Reason).
			Msg("Transaction rejected")
	}

	return result, nil
}
