package service

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-accounts/internal/errors"
	"bank-accounts/internal/repository"
)

func newTestServices(t *testing.T) (*AccountService, *TransactionService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewStore(logger)
	return NewAccountService(store, logger), NewTransactionService(store, logger)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateAccount(t *testing.T) {
	accounts, _ := newTestServices(t)

	account, err := accounts.CreateAccount("123456789", dec("100.00"))
	require.NoError(t, err)
	assert.Equal(t, "123456789", account.Number())
	assert.True(t, account.Balance().Equal(dec("100.00")))

	stored, err := accounts.GetAccount("123456789")
	require.NoError(t, err)
	assert.True(t, stored.Balance().Equal(dec("100.00")))
}

func TestCreateAccountValidationFailures(t *testing.T) {
	accounts, _ := newTestServices(t)

	tests := []struct {
		name           string
		number         string
		initialBalance string
		wantErr        error
	}{
		{"empty number", "", "100.00", errors.ErrEmptyAccountNumber},
		{"short number", "12345", "100.00", errors.ErrMalformedAccountNumber},
		{"negative balance", "123456789", "-1.00", errors.ErrNegativeInitialBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := accounts.CreateAccount(tt.number, dec(tt.initialBalance))
			assert.Nil(t, account)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateAccountDuplicate(t *testing.T) {
	accounts, _ := newTestServices(t)

	_, err := accounts.CreateAccount("123456789", dec("100.00"))
	require.NoError(t, err)

	_, err = accounts.CreateAccount("123456789", dec("0.00"))
	assert.ErrorIs(t, err, errors.ErrDuplicateAccount)
}

func TestCreateAccountReturnsSnapshot(t *testing.T) {
	accounts, _ := newTestServices(t)

	created, err := accounts.CreateAccount("123456789", dec("100.00"))
	require.NoError(t, err)

	// Mutating the returned snapshot must not reach the store.
	require.NoError(t, created.Deposit(dec("400.00")))

	stored, err := accounts.GetAccount("123456789")
	require.NoError(t, err)
	assert.True(t, stored.Balance().Equal(dec("100.00")))
}

func TestCreateAccountSnapshotUnaffectedByConcurrentDeposits(t *testing.T) {
	accounts, transactions := newTestServices(t)

	stop := make(chan struct{})
	applied := 0
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			// Fails with account_not_found until the account is registered.
			if _, err := transactions.Deposit("123456789", dec("1.00")); err == nil {
				applied++
			}
		}
	}()

	created, err := accounts.CreateAccount("123456789", dec("500.00"))
	close(stop)
	wg.Wait()
	require.NoError(t, err)

	// The snapshot is taken before the store publishes the account, so
	// deposits landing during creation never show up in it.
	assert.True(t, created.Balance().Equal(dec("500.00")), "got %s", created.Balance())
	assert.Empty(t, created.History())

	stored, err := accounts.GetAccount("123456789")
	require.NoError(t, err)
	expected := dec("500.00").Add(dec("1.00").Mul(decimal.NewFromInt(int64(applied))))
	assert.True(t, stored.Balance().Equal(expected), "expected %s, got %s", expected, stored.Balance())
	assert.Len(t, stored.History(), applied)
}

func TestGetAccountNotFound(t *testing.T) {
	accounts, _ := newTestServices(t)

	account, err := accounts.GetAccount("999999999")
	assert.Nil(t, account)
	assert.ErrorIs(t, err, errors.ErrAccountNotFound)
}

func TestGetAccountMalformedNumber(t *testing.T) {
	accounts, _ := newTestServices(t)

	// A malformed number is reported as such, not as a missing account.
	_, err := accounts.GetAccount("12345")
	assert.ErrorIs(t, err, errors.ErrMalformedAccountNumber)
}

func TestListAccountNumbers(t *testing.T) {
	accounts, _ := newTestServices(t)

	_, err := accounts.CreateAccount("222222222", dec("0.00"))
	require.NoError(t, err)
	_, err = accounts.CreateAccount("111111111", dec("0.00"))
	require.NoError(t, err)

	assert.Equal(t, []string{"111111111", "222222222"}, accounts.ListAccountNumbers())
}
