package reports

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSignedFollowsAccountType(t *testing.T) {
	cases := []struct {
		name    string
		acc     AccountBalance
		balance float64
	}{
		{"asset debit normal", AccountBalance{Account: Account{Type: "ASSET"}, Debit: 500, Credit: 200}, 300},
		{"expense debit normal", AccountBalance{Account: Account{Type: "EXPENSE"}, Debit: 120, Credit: 20}, 100},
		{"liability credit normal", AccountBalance{Account: Account{Type: "LIABILITY"}, Debit: 100, Credit: 400}, 300},
		{"equity credit normal", AccountBalance{Account: Account{Type: "EQUITY"}, Debit: 0, Credit: 1000}, 1000},
		{"revenue credit normal", AccountBalance{Account: Account{Type: "REVENUE"}, Debit: 50, Credit: 450}, 400},
		{"income alias", AccountBalance{Account: Account{Type: "income"}, Debit: 0, Credit: 70}, 70},
		{"lowercase asset", AccountBalance{Account: Account{Type: "asset"}, Debit: 90, Credit: 10}, 80},
		{"unknown type debit normal", AccountBalance{Account: Account{Type: "OTHER"}, Debit: 30, Credit: 10}, 20},
	}
	for _, tc := range cases {
		if got := tc.acc.Signed(); !almostEqual(got, tc.balance) {
			t.Errorf("%s: got %.2f want %.2f", tc.name, got, tc.balance)
		}
	}
}

func TestBuildBalancesSortsByCode(t *testing.T) {
	rows := BuildBalances([]AccountBalance{
		{Account: Account{Code: "4000", Name: "Sales", Type: "REVENUE"}, Credit: 100},
		{Account: Account{Code: "1000", Name: "Cash", Type: "ASSET"}, Debit: 100},
		{Account: Account{Code: "2000", Name: "Payables", Type: "liability"}, Credit: 50},
	})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, code := range []string{"1000", "2000", "4000"} {
		if rows[i].Code != code {
			t.Errorf("row %d: got code %s want %s", i, rows[i].Code, code)
		}
	}
	if rows[2].Type != "REVENUE" {
		t.Errorf("type should be normalized upper, got %s", rows[2].Type)
	}
}

func TestBuildTotalsNetProfit(t *testing.T) {
	rows := BuildBalances([]AccountBalance{
		{Account: Account{Code: "1000", Type: "ASSET"}, Debit: 1500},
		{Account: Account{Code: "2000", Type: "LIABILITY"}, Credit: 400},
		{Account: Account{Code: "3000", Type: "EQUITY"}, Credit: 500},
		{Account: Account{Code: "4000", Type: "REVENUE"}, Credit: 900},
		{Account: Account{Code: "5000", Type: "EXPENSE"}, Debit: 300},
	})
	totals := BuildTotals(rows)
	if !almostEqual(totals.Assets, 1500) {
		t.Errorf("assets: got %.2f", totals.Assets)
	}
	if !almostEqual(totals.Liabilities, 400) {
		t.Errorf("liabilities: got %.2f", totals.Liabilities)
	}
	if !almostEqual(totals.Equity, 500) {
		t.Errorf("equity: got %.2f", totals.Equity)
	}
	if !almostEqual(totals.Revenue, 900) {
		t.Errorf("revenue: got %.2f", totals.Revenue)
	}
	if !almostEqual(totals.Expenses, 300) {
		t.Errorf("expenses: got %.2f", totals.Expenses)
	}
	if !almostEqual(totals.NetProfit, 600) {
		t.Errorf("net profit: got %.2f want 600", totals.NetProfit)
	}
}

func TestBuildTotalsEmpty(t *testing.T) {
	totals := BuildTotals(nil)
	if totals.NetProfit != 0 || totals.Assets != 0 {
		t.Fatalf("empty input should produce zero totals, got %+v", totals)
	}
}

func TestBalancedEntrySumsToZeroUnderSignConvention(t *testing.T) {
	// A balanced journal entry: debit cash 1000, credit sales 1000.
	// Signed asset growth must equal signed revenue growth.
	cash := AccountBalance{Account: Account{Type: "ASSET"}, Debit: 1000}
	sales := AccountBalance{Account: Account{Type: "REVENUE"}, Credit: 1000}
	if !almostEqual(cash.Signed(), sales.Signed()) {
		t.Fatalf("balanced entry: asset %.2f vs revenue %.2f", cash.Signed(), sales.Signed())
	}
}

func TestBuildBalanceSheetBalances(t *testing.T) {
	rows := BuildBalances([]AccountBalance{
		{Account: Account{Code: "1000", Type: "ASSET"}, Debit: 1000},
		{Account: Account{Code: "2000", Type: "LIABILITY"}, Credit: 400},
		{Account: Account{Code: "3000", Type: "EQUITY"}, Credit: 600},
	})
	bs := BuildBalanceSheet(rows)
	if !almostEqual(bs.Assets.Total, 1000) {
		t.Errorf("assets total: got %.2f", bs.Assets.Total)
	}
	if !almostEqual(bs.TotalLiabilitiesAndEquity, 1000) {
		t.Errorf("liabilities+equity: got %.2f", bs.TotalLiabilitiesAndEquity)
	}
}

func TestBuildProfitAndLoss(t *testing.T) {
	rows := BuildBalances([]AccountBalance{
		{Account: Account{Code: "4000", Type: "REVENUE"}, Credit: 900},
		{Account: Account{Code: "5000", Type: "EXPENSE"}, Debit: 300},
		{Account: Account{Code: "5100", Type: "COGS"}, Debit: 200},
	})
	pl := BuildProfitAndLoss(rows)
	if !almostEqual(pl.Revenue.Total, 900) {
		t.Errorf("revenue: got %.2f", pl.Revenue.Total)
	}
	if !almostEqual(pl.Expense.Total, 500) {
		t.Errorf("expenses: got %.2f", pl.Expense.Total)
	}
	if !almostEqual(pl.NetProfit, 400) {
		t.Errorf("net profit: got %.2f want 400", pl.NetProfit)
	}
}
