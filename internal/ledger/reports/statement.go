package reports

// Statement is the full cash flow report for a period: classification totals
// plus the reconciliation against actual cash balances. Delta and the bucket
// sum are both surfaced rather than silently reconciled.
type Statement struct {
	Period   ReportingPeriod
	CashFlow CashFlow
	Cash     CashReconciliation
}

// Snapshot is the point-in-time financial position report: per-account signed
// balances, the five category totals, and net profit.
type Snapshot struct {
	Period   ReportingPeriod
	Balances []BalanceRow
	Totals   Totals
}
