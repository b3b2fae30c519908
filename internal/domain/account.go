// Package domain holds the core account model and its validation rules.
package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bank-accounts/internal/errors"
)

// CurrencyScale is the fixed number of fractional digits for balances and
// amounts. All rounding is half-up at this scale.
const CurrencyScale = 2

var accountNumberPattern = regexp.MustCompile(`^[0-9]{9}$`)

// Account models a single bank account: an immutable nine-digit account
// number, an exact decimal balance and an append-only transaction history.
//
// The type assumes one logical caller at a time and carries no locking of
// its own; when several goroutines share an account, repository.Store
// serializes every access.
type Account struct {
	number  string
	balance decimal.Decimal
	history []Transaction
}

// ValidateNumber checks that number is exactly nine ASCII digits. An empty
// number gets its own diagnostic; both failures share the
// InvalidAccountNumber code.
func ValidateNumber(number string) error {
	if number == "" {
		return errors.ErrEmptyAccountNumber
	}
	if !accountNumberPattern.MatchString(number) {
		return errors.ErrMalformedAccountNumber
	}
	return nil
}

// NewAccount validates the account number and initial balance and returns a
// fresh account with an empty history. The initial balance is rounded
// half-up to two decimal places; a raw negative value is rejected before
// rounding.
func NewAccount(number string, initialBalance decimal.Decimal) (*Account, error) {
	if err := ValidateNumber(number); err != nil {
		return nil, err
	}
	if initialBalance.IsNegative() {
		return nil, errors.ErrNegativeInitialBalance
	}
	return &Account{
		number:  number,
		balance: initialBalance.Round(CurrencyScale),
	}, nil
}

// ValidateAmount applies the amount contract shared by Deposit and
// Withdraw: the raw value is rounded half-up to two decimal places and must
// be strictly positive afterwards. Sub-cent inputs such as 0.001 round to
// zero and are rejected rather than silently becoming no-ops. Validating an
// already rounded value returns it unchanged.
func ValidateAmount(raw decimal.Decimal) (decimal.Decimal, error) {
	amount := raw.Round(CurrencyScale)
	if !amount.IsPositive() {
		return decimal.Decimal{}, errors.ErrNonPositiveAmount
	}
	return amount, nil
}

// ParseAmount converts a textual amount into a validated decimal. Text that
// does not parse as a number yields ErrNonNumericAmount; the parsed value
// then goes through ValidateAmount. Amounts cross the API boundary as
// strings, so this is the entry point the handlers use.
func ParseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, errors.ErrNonNumericAmount.WithDetails(err.Error())
	}
	return ValidateAmount(d)
}

// Deposit adds amount to the balance and records a deposit transaction.
// Validation runs before any mutation, so a failed deposit leaves both the
// balance and the history untouched.
func (a *Account) Deposit(amount decimal.Decimal) error {
	validated, err := ValidateAmount(amount)
	if err != nil {
		return err
	}
	a.balance = a.balance.Add(validated)
	a.record(KindDeposit, validated)
	return nil
}

// Withdraw subtracts amount from the balance and records a withdrawal
// transaction. Withdrawing the exact balance is allowed and leaves 0.00;
// anything beyond it fails with ErrInsufficientFunds and changes nothing.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	validated, err := ValidateAmount(amount)
	if err != nil {
		return err
	}
	if validated.GreaterThan(a.balance) {
		return errors.ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(validated)
	a.record(KindWithdrawal, validated)
	return nil
}

// record appends a stamped transaction. It runs only after validation, so
// the balance update and its history entry always land together.
func (a *Account) record(kind TransactionKind, amount decimal.Decimal) {
	a.history = append(a.history, Transaction{
		ID:        uuid.New(),
		Kind:      kind,
		Amount:    amount,
		Timestamp: time.Now().UTC(),
	})
}

// Number returns the immutable account number.
func (a *Account) Number() string {
	return a.number
}

// Balance returns the current balance as a value copy.
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// History returns a copy of the full transaction log in insertion order.
// Mutating the returned slice does not affect the account.
func (a *Account) History() []Transaction {
	out := make([]Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// Clone returns a deep snapshot of the account, history included. The store
// hands clones to readers so live state never escapes its lock.
func (a *Account) Clone() *Account {
	return &Account{
		number:  a.number,
		balance: a.balance,
		history: a.History(),
	}
}

// AccountRepository is implemented by the store that owns live accounts and
// serializes access to them.
type AccountRepository interface {
	CreateAccount(account *Account) error
	GetAccount(number string) (*Account, error)
	WithAccount(number string, fn func(*Account) error) error
	Numbers() []string
}
