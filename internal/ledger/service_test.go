package ledger

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fingate/fingate/internal/ledger/reports"
	_ "github.com/fingate/fingate/testing"
)

type stubRepo struct {
	accounts     []Account
	balances     []reports.AccountBalance
	lines        []reports.EntryLine
	balanceCalls int
	lineCalls    int
}

func (r *stubRepo) ListActiveAccounts(ctx context.Context) ([]Account, error) {
	return r.accounts, nil
}

func (r *stubRepo) AccountBalancesAsOf(ctx context.Context, asOf time.Time) ([]reports.AccountBalance, error) {
	r.balanceCalls++
	return r.balances, nil
}

func (r *stubRepo) ListPostedLines(ctx context.Context, from, to time.Time) ([]reports.EntryLine, error) {
	r.lineCalls++
	return r.lines, nil
}

func newTestService(t *testing.T, repo *stubRepo) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewService(repo, NewCache(client, time.Minute), nil)
	svc.WithNow(func() time.Time { return time.Date(2024, time.May, 15, 10, 0, 0, 0, time.UTC) })
	return svc
}

func testBalances() []reports.AccountBalance {
	return []reports.AccountBalance{
		{Account: reports.Account{Code: "1000", Name: "Main Bank", Type: "ASSET"}, Debit: 1500},
		{Account: reports.Account{Code: "2000", Name: "Payables", Type: "LIABILITY"}, Credit: 400},
		{Account: reports.Account{Code: "3000", Name: "Capital", Type: "EQUITY"}, Credit: 500},
		{Account: reports.Account{Code: "4000", Name: "Sales", Type: "REVENUE"}, Credit: 900},
		{Account: reports.Account{Code: "5000", Name: "Rent", Type: "EXPENSE"}, Debit: 300},
	}
}

func TestSnapshotComputesTotals(t *testing.T) {
	repo := &stubRepo{balances: testBalances()}
	svc := newTestService(t, repo)
	period := svc.ResolvePeriod("monthly", "2024-05-15")

	snap, err := svc.Snapshot(context.Background(), period)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Balances) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(snap.Balances))
	}
	if math.Abs(snap.Totals.NetProfit-600) > 1e-9 {
		t.Errorf("net profit: got %.2f want 600", snap.Totals.NetProfit)
	}
}

func TestSnapshotServedFromCache(t *testing.T) {
	repo := &stubRepo{balances: testBalances()}
	svc := newTestService(t, repo)
	period := svc.ResolvePeriod("monthly", "2024-05-15")

	if _, err := svc.Snapshot(context.Background(), period); err != nil {
		t.Fatalf("first snapshot: %v", err)
	}
	if _, err := svc.Snapshot(context.Background(), period); err != nil {
		t.Fatalf("second snapshot: %v", err)
	}
	if repo.balanceCalls != 1 {
		t.Fatalf("expected 1 repository hit, got %d", repo.balanceCalls)
	}
}

func TestInvalidateCacheForcesRebuild(t *testing.T) {
	repo := &stubRepo{balances: testBalances()}
	svc := newTestService(t, repo)
	period := svc.ResolvePeriod("monthly", "2024-05-15")
	ctx := context.Background()

	if _, err := svc.Snapshot(ctx, period); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if err := svc.InvalidateCache(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := svc.Snapshot(ctx, period); err != nil {
		t.Fatalf("snapshot after invalidate: %v", err)
	}
	if repo.balanceCalls != 2 {
		t.Fatalf("expected rebuild after invalidation, got %d repository hits", repo.balanceCalls)
	}
}

func TestCashFlowStatement(t *testing.T) {
	repo := &stubRepo{
		balances: testBalances(),
		lines: []reports.EntryLine{
			{EntryID: 1, Account: reports.Account{Code: "1000", Name: "Main Bank", Type: "ASSET"}, Debit: 900},
			{EntryID: 1, Account: reports.Account{Code: "4000", Name: "Sales", Type: "REVENUE"}, Credit: 900},
			{EntryID: 2, Account: reports.Account{Code: "5000", Name: "Rent", Type: "EXPENSE"}, Debit: 300},
			{EntryID: 2, Account: reports.Account{Code: "1000", Name: "Main Bank", Type: "ASSET"}, Credit: 300},
		},
	}
	svc := newTestService(t, repo)
	period := svc.ResolvePeriod("monthly", "2024-05-15")

	stmt, err := svc.CashFlowStatement(context.Background(), period)
	if err != nil {
		t.Fatalf("cash flow: %v", err)
	}
	if math.Abs(stmt.CashFlow.Operating-600) > 1e-9 {
		t.Errorf("operating: got %.2f want 600", stmt.CashFlow.Operating)
	}
	if stmt.CashFlow.Investing != 0 || stmt.CashFlow.Financing != 0 {
		t.Errorf("unexpected non-operating flows: %+v", stmt.CashFlow)
	}
	// Both period edges use the same stub balances, so the delta is zero.
	if stmt.Cash.Delta != 0 {
		t.Errorf("delta: got %.2f want 0", stmt.Cash.Delta)
	}
	if math.Abs(stmt.Cash.End-1500) > 1e-9 {
		t.Errorf("end cash: got %.2f want 1500", stmt.Cash.End)
	}
}

func TestBalanceSheetAndProfitAndLoss(t *testing.T) {
	repo := &stubRepo{balances: testBalances()}
	svc := newTestService(t, repo)
	period := svc.ResolvePeriod("monthly", "2024-05-15")
	ctx := context.Background()

	bs, totals, err := svc.BalanceSheet(ctx, period)
	if err != nil {
		t.Fatalf("balance sheet: %v", err)
	}
	if math.Abs(bs.Assets.Total-1500) > 1e-9 {
		t.Errorf("assets: got %.2f", bs.Assets.Total)
	}
	if math.Abs(bs.TotalLiabilitiesAndEquity-900) > 1e-9 {
		t.Errorf("liabilities+equity: got %.2f", bs.TotalLiabilitiesAndEquity)
	}
	if math.Abs(totals.NetProfit-600) > 1e-9 {
		t.Errorf("net profit: got %.2f", totals.NetProfit)
	}

	pl, err := svc.ProfitAndLoss(ctx, period)
	if err != nil {
		t.Fatalf("profit and loss: %v", err)
	}
	if math.Abs(pl.NetProfit-600) > 1e-9 {
		t.Errorf("pl net profit: got %.2f", pl.NetProfit)
	}
}

func TestTrialBalanceGroups(t *testing.T) {
	repo := &stubRepo{balances: testBalances()}
	svc := newTestService(t, repo)
	period := svc.ResolvePeriod("monthly", "2024-05-15")

	tb, err := svc.TrialBalance(context.Background(), period)
	if err != nil {
		t.Fatalf("trial balance: %v", err)
	}
	if len(tb.Groups) != 5 {
		t.Fatalf("expected 5 groups, got %d", len(tb.Groups))
	}
	if math.Abs(tb.TotalDebit-tb.TotalCredit) > 1e-9 {
		t.Errorf("trial balance out of balance: debit %.2f credit %.2f", tb.TotalDebit, tb.TotalCredit)
	}
}
