package reports

import (
	"sort"
	"strings"
)

// Account carries the chart-of-accounts attributes the report builders and
// classification policies need.
type Account struct {
	Code     string
	Name     string
	Type     string
	Category string
}

// AccountBalance models a general ledger account with aggregated debit and
// credit totals up to a reporting date.
type AccountBalance struct {
	Account
	Debit  float64
	Credit float64
}

// Signed computes the balance using the type-dependent sign convention:
// debit-normal accounts (asset, expense) grow with debits, credit-normal
// accounts (liability, equity, revenue) grow with credits.
func (a AccountBalance) Signed() float64 {
	switch strings.ToUpper(a.Type) {
	case "LIABILITY", "EQUITY", "REVENUE", "INCOME":
		return a.Credit - a.Debit
	default:
		return a.Debit - a.Credit
	}
}

// BalanceRow is a single account balance line in a report.
type BalanceRow struct {
	Code    string
	Name    string
	Type    string
	Balance float64
}

// BuildBalances converts raw account aggregates into signed balance rows
// ordered by account code.
func BuildBalances(accounts []AccountBalance) []BalanceRow {
	rows := make([]BalanceRow, 0, len(accounts))
	for _, acc := range accounts {
		rows = append(rows, BalanceRow{
			Code:    acc.Code,
			Name:    acc.Name,
			Type:    strings.ToUpper(acc.Type),
			Balance: acc.Signed(),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows
}

// Totals sums balance rows by account type.
type Totals struct {
	Assets      float64
	Liabilities float64
	Equity      float64
	Revenue     float64
	Expenses    float64
	NetProfit   float64
}

// BuildTotals aggregates rows into the five category totals and net profit.
func BuildTotals(rows []BalanceRow) Totals {
	var t Totals
	for _, row := range rows {
		switch row.Type {
		case "ASSET":
			t.Assets += row.Balance
		case "LIABILITY":
			t.Liabilities += row.Balance
		case "EQUITY":
			t.Equity += row.Balance
		case "REVENUE", "INCOME":
			t.Revenue += row.Balance
		case "EXPENSE", "COGS":
			t.Expenses += row.Balance
		}
	}
	t.NetProfit = t.Revenue - t.Expenses
	return t
}
