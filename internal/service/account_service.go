package service

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"bank-accounts/internal/domain"
)

type AccountService struct {
	store  domain.AccountRepository
	logger *slog.Logger
}

func NewAccountService(store domain.AccountRepository, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:  store,
		logger: logger,
	}
}

func (s *AccountService) CreateAccount(number string, initialBalance decimal.Decimal) (*domain.Account, error) {
	s.logger.Info("Creating account", "account_number", number, "initial_balance", initialBalance)

	account, err := domain.NewAccount(number, initialBalance)
	if err != nil {
		return nil, err
	}

	// Snapshot before the store publishes the account. Once registered, the
	// live value may only be touched under the store lock.
	snapshot := account.Clone()
	if err := s.store.CreateAccount(account); err != nil {
		return nil, err
	}

	s.logger.Info("Account created successfully", "account_number", number)
	return snapshot, nil
}

func (s *AccountService) GetAccount(number string) (*domain.Account, error) {
	s.logger.Info("Getting account", "account_number", number)

	if err := domain.ValidateNumber(number); err != nil {
		return nil, err
	}
	return s.store.GetAccount(number)
}

func (s *AccountService) ListAccountNumbers() []string {
	return s.store.Numbers()
}
