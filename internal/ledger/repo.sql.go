package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fingate/fingate/internal/ledger/reports"
)

// Repository reads journal data from PostgreSQL. All queries are read-only;
// entries are posted by the upstream ledger collaborator.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Entries count toward balances when posted or when the status column was
// never filled in by the legacy importer.
const postedPredicate = `(je.status = 'POSTED' OR je.status IS NULL OR je.status = '')`

// ListActiveAccounts returns active chart-of-accounts rows ordered by code.
func (r *Repository) ListActiveAccounts(ctx context.Context) ([]Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, code, name, type, COALESCE(category, ''), is_active, created_at, updated_at
FROM accounts WHERE is_active ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	defer rows.Close()
	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.Category, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// AccountBalancesAsOf aggregates debit and credit per active account across
// posted entries dated on or before asOf.
func (r *Repository) AccountBalancesAsOf(ctx context.Context, asOf time.Time) ([]reports.AccountBalance, error) {
	rows, err := r.pool.Query(ctx, `SELECT a.code, a.name, a.type, COALESCE(a.category, ''),
COALESCE(SUM(jl.debit), 0), COALESCE(SUM(jl.credit), 0)
FROM accounts a
LEFT JOIN (journal_lines jl
	JOIN journal_entries je ON je.id = jl.je_id AND `+postedPredicate+` AND je.entry_date <= $1)
	ON jl.account_id = a.id
WHERE a.is_active
GROUP BY a.code, a.name, a.type, a.category
ORDER BY a.code`, asOf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	defer rows.Close()
	var balances []reports.AccountBalance
	for rows.Next() {
		var b reports.AccountBalance
		if err := rows.Scan(&b.Code, &b.Name, &b.Type, &b.Category, &b.Debit, &b.Credit); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// ListPostedLines returns journal lines on posted entries dated within
// [from, to], joined with account attributes, ordered so that lines of the
// same entry stay adjacent.
func (r *Repository) ListPostedLines(ctx context.Context, from, to time.Time) ([]reports.EntryLine, error) {
	rows, err := r.pool.Query(ctx, `SELECT jl.je_id, a.code, a.name, a.type, COALESCE(a.category, ''), jl.debit, jl.credit
FROM journal_lines jl
JOIN journal_entries je ON je.id = jl.je_id
JOIN accounts a ON a.id = jl.account_id
WHERE `+postedPredicate+` AND je.entry_date BETWEEN $1 AND $2
ORDER BY jl.je_id, jl.id`, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	defer rows.Close()
	var lines []reports.EntryLine
	for rows.Next() {
		var line reports.EntryLine
		if err := rows.Scan(&line.EntryID, &line.Account.Code, &line.Account.Name, &line.Account.Type, &line.Account.Category, &line.Debit, &line.Credit); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
