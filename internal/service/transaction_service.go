package service

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"bank-accounts/internal/domain"
	"bank-accounts/internal/errors"
)

type TransactionService struct {
	store  domain.AccountRepository
	logger *slog.Logger
}

func NewTransactionService(store domain.AccountRepository, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

func (s *TransactionService) Deposit(number string, amount decimal.Decimal) (*domain.Account, error) {
	s.logger.Info("Processing deposit", "account_number", number, "amount", amount)

	if err := domain.ValidateNumber(number); err != nil {
		return nil, err
	}
	return s.mutate(number, func(account *domain.Account) error {
		return account.Deposit(amount)
	})
}

func (s *TransactionService) Withdraw(number string, amount decimal.Decimal) (*domain.Account, error) {
	s.logger.Info("Processing withdrawal", "account_number", number, "amount", amount)

	if err := domain.ValidateNumber(number); err != nil {
		return nil, err
	}
	return s.mutate(number, func(account *domain.Account) error {
		return account.Withdraw(amount)
	})
}

// mutate applies op under the store lock and snapshots the account before
// the lock is released, so the returned state is exactly the post-op state.
func (s *TransactionService) mutate(number string, op func(*domain.Account) error) (*domain.Account, error) {
	var snapshot *domain.Account
	err := s.store.WithAccount(number, func(account *domain.Account) error {
		if err := op(account); err != nil {
			return err
		}
		snapshot = account.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *TransactionService) History(number string) ([]domain.Transaction, error) {
	s.logger.Info("Getting transaction history", "account_number", number)

	if err := domain.ValidateNumber(number); err != nil {
		return nil, err
	}
	account, err := s.store.GetAccount(number)
	if err != nil {
		return nil, err
	}
	return account.History(), nil
}

type TransferRequest struct {
	SourceAccountNumber      string
	DestinationAccountNumber string
	Amount                   decimal.Decimal
}

type TransferResult struct {
	SourceBalance      decimal.Decimal
	DestinationBalance decimal.Decimal
}

func (s *TransactionService) Transfer(req *TransferRequest) (*TransferResult, error) {
	s.logger.Info("Processing transfer",
		"source_account_number", req.SourceAccountNumber,
		"destination_account_number", req.DestinationAccountNumber,
		"amount", req.Amount)

	if err := domain.ValidateNumber(req.SourceAccountNumber); err != nil {
		return nil, err
	}
	if err := domain.ValidateNumber(req.DestinationAccountNumber); err != nil {
		return nil, err
	}
	if req.SourceAccountNumber == req.DestinationAccountNumber {
		return nil, errors.ErrSameAccountTransfer
	}

	// A transfer is two independent single-account operations with no
	// cross-account rollback. Confirm the destination exists before the
	// source is debited.
	if _, err := s.store.GetAccount(req.DestinationAccountNumber); err != nil {
		return nil, err
	}

	source, err := s.mutate(req.SourceAccountNumber, func(account *domain.Account) error {
		return account.Withdraw(req.Amount)
	})
	if err != nil {
		return nil, err
	}

	destination, err := s.mutate(req.DestinationAccountNumber, func(account *domain.Account) error {
		return account.Deposit(req.Amount)
	})
	if err != nil {
		// The withdrawal stays applied.
		s.logger.Error("Deposit leg failed after withdrawal was applied",
			"source_account_number", req.SourceAccountNumber,
			"destination_account_number", req.DestinationAccountNumber,
			"error", err)
		return nil, err
	}

	s.logger.Info("Transfer completed successfully",
		"source_account_number", req.SourceAccountNumber,
		"destination_account_number", req.DestinationAccountNumber)

	return &TransferResult{
		SourceBalance:      source.Balance(),
		DestinationBalance: destination.Balance(),
	}, nil
}
