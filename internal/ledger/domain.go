package ledger

import (
	"errors"
	"time"
)

// AccountType enumerates chart-of-accounts categories.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Account models a chart of accounts node. Accounts are owned by the
// upstream chart-of-accounts collaborator and read-only here.
type Account struct {
	ID        int64
	Code      string
	Name      string
	Type      AccountType
	Category  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	// ErrLedgerUnavailable indicates the ledger store could not be read.
	// Reports are pure functions of ledger state; the caller decides whether
	// to fail the page or re-run, the engine never retries or degrades.
	ErrLedgerUnavailable = errors.New("ledger: store unavailable")
)
