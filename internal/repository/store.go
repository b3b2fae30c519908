package repository

import (
	"log/slog"
	"sort"
	"sync"

	"bank-accounts/internal/domain"
	"bank-accounts/internal/errors"
)

// Store is an in-memory account registry. Account values carry no locking
// of their own, so every read and every mutation goes through the store's
// mutex.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	logger   *slog.Logger
}

// NewStore creates an empty Store instance
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		logger:   logger,
	}
}

var _ domain.AccountRepository = (*Store)(nil)

// CreateAccount registers a new account under its number
func (s *Store) CreateAccount(account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	number := account.Number()
	if _, exists := s.accounts[number]; exists {
		s.logger.Warn("Account already exists", "account_number", number)
		return errors.ErrDuplicateAccount
	}

	s.accounts[number] = account
	return nil
}

// GetAccount returns a snapshot of the stored account. Callers may inspect
// the snapshot freely without holding the store lock.
func (s *Store) GetAccount(number string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.accounts[number]
	if !exists {
		return nil, errors.ErrAccountNotFound
	}
	return account.Clone(), nil
}

// WithAccount runs fn against the live account while holding the store
// lock, so mutations of the same account never interleave.
func (s *Store) WithAccount(number string, fn func(*domain.Account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[number]
	if !exists {
		return errors.ErrAccountNotFound
	}
	return fn(account)
}

// Numbers lists the registered account numbers in stable order
func (s *Store) Numbers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	numbers := make([]string, 0, len(s.accounts))
	for number := range s.accounts {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)
	return numbers
}
