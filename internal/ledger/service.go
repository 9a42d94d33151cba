package ledger

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fingate/fingate/internal/ledger/reports"
)

// RepositoryPort abstracts the read-only ledger store.
type RepositoryPort interface {
	ListActiveAccounts(ctx context.Context) ([]Account, error)
	AccountBalancesAsOf(ctx context.Context, asOf time.Time) ([]reports.AccountBalance, error)
	ListPostedLines(ctx context.Context, from, to time.Time) ([]reports.EntryLine, error)
}

// Service produces financial reports from raw journal data. Every report is
// a pure read; concurrent identical requests are collapsed through
// singleflight and results are cached with a versioned Redis key.
type Service struct {
	repo   RepositoryPort
	cache  *Cache
	isCash reports.CashDetector
	builds singleflight.Group
	now    func() time.Time
}

// NewService constructs the reporting service. overrideCodes lists account
// codes always treated as cash in addition to the name/category heuristic.
func NewService(repo RepositoryPort, cache *Cache, overrideCodes []string) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		isCash: reports.NewCashDetector(overrideCodes),
		now:    time.Now,
	}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// ResolvePeriod derives the reporting window from raw request filters.
func (s *Service) ResolvePeriod(kind, dateRaw string) reports.ReportingPeriod {
	asOf := reports.ParseAsOf(dateRaw, s.now())
	return reports.ResolvePeriod(kind, asOf)
}

// Accounts returns the active chart of accounts.
func (s *Service) Accounts(ctx context.Context) ([]Account, error) {
	return s.repo.ListActiveAccounts(ctx)
}

// Snapshot computes per-account signed balances and category totals as of
// the period end.
func (s *Service) Snapshot(ctx context.Context, period reports.ReportingPeriod) (reports.Snapshot, error) {
	var snap reports.Snapshot
	err := s.fetch(ctx, "snapshot:"+period.To.Format("2006-01-02"), &snap, func(ctx context.Context) (interface{}, error) {
		balances, err := s.repo.AccountBalancesAsOf(ctx, period.To)
		if err != nil {
			return nil, err
		}
		rows := reports.BuildBalances(balances)
		return reports.Snapshot{
			Period:   period,
			Balances: rows,
			Totals:   reports.BuildTotals(rows),
		}, nil
	})
	return snap, err
}

// BalanceSheet builds the balance sheet as of the period end.
func (s *Service) BalanceSheet(ctx context.Context, period reports.ReportingPeriod) (reports.BalanceSheet, reports.Totals, error) {
	snap, err := s.Snapshot(ctx, period)
	if err != nil {
		return reports.BalanceSheet{}, reports.Totals{}, err
	}
	return reports.BuildBalanceSheet(snap.Balances), snap.Totals, nil
}

// ProfitAndLoss builds the income statement as of the period end.
func (s *Service) ProfitAndLoss(ctx context.Context, period reports.ReportingPeriod) (reports.ProfitAndLoss, error) {
	snap, err := s.Snapshot(ctx, period)
	if err != nil {
		return reports.ProfitAndLoss{}, err
	}
	return reports.BuildProfitAndLoss(snap.Balances), nil
}

// TrialBalance builds the grouped trial balance as of the period end.
func (s *Service) TrialBalance(ctx context.Context, period reports.ReportingPeriod) (reports.TrialBalance, error) {
	var tb reports.TrialBalance
	err := s.fetch(ctx, "tb:"+period.To.Format("2006-01-02"), &tb, func(ctx context.Context) (interface{}, error) {
		balances, err := s.repo.AccountBalancesAsOf(ctx, period.To)
		if err != nil {
			return nil, err
		}
		return reports.BuildTrialBalance(balances), nil
	})
	return tb, err
}

// CashFlowStatement classifies cash movements within the period into
// operating, investing, and financing buckets and reconciles them against
// the start and end cash balances.
func (s *Service) CashFlowStatement(ctx context.Context, period reports.ReportingPeriod) (reports.Statement, error) {
	key := "cashflow:" + period.From.Format("2006-01-02") + ":" + period.To.Format("2006-01-02")
	var stmt reports.Statement
	err := s.fetch(ctx, key, &stmt, func(ctx context.Context) (interface{}, error) {
		lines, err := s.repo.ListPostedLines(ctx, period.From, period.To)
		if err != nil {
			return nil, err
		}
		startBalances, err := s.repo.AccountBalancesAsOf(ctx, period.From.AddDate(0, 0, -1))
		if err != nil {
			return nil, err
		}
		endBalances, err := s.repo.AccountBalancesAsOf(ctx, period.To)
		if err != nil {
			return nil, err
		}

		classifier := reports.NewClassifier(s.isCash)
		return reports.Statement{
			Period:   period,
			CashFlow: classifier.Classify(lines),
			Cash:     reports.Reconcile(s.isCash, startBalances, endBalances),
		}, nil
	})
	return stmt, err
}

// InvalidateCache drops every cached report, typically after journals are
// posted upstream.
func (s *Service) InvalidateCache(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

// fetch funnels a report build through singleflight and the versioned cache.
func (s *Service) fetch(ctx context.Context, keyBase string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	key, err := s.cache.BuildKey(ctx, "reports", keyBase)
	if err != nil {
		return err
	}
	result := s.builds.DoChan(key, func() (interface{}, error) {
		return nil, s.cache.FetchJSON(ctx, key, dest, loader)
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return res.Err
		}
		if res.Shared {
			// Another caller populated the cache; read it back for this dest.
			return s.cache.FetchJSON(ctx, key, dest, loader)
		}
		return nil
	}
}
