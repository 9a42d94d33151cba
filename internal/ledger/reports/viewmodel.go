package reports

// BalanceSheetViewModel holds SSR/PDF data for the balance sheet report.
type BalanceSheetViewModel struct {
	CompanyName string
	PeriodLabel string
	FilterKind  string
	FilterDate  string
	Report      BalanceSheet
	Totals      Totals
}

// ProfitAndLossViewModel holds SSR/PDF data for the income statement.
type ProfitAndLossViewModel struct {
	CompanyName string
	PeriodLabel string
	FilterKind  string
	FilterDate  string
	Report      ProfitAndLoss
}

// TrialBalanceViewModel holds SSR/PDF data for the trial balance report.
type TrialBalanceViewModel struct {
	CompanyName string
	PeriodLabel string
	FilterKind  string
	FilterDate  string
	Report      TrialBalance
}

// CashFlowViewModel holds SSR/PDF data for the cash flow statement.
type CashFlowViewModel struct {
	CompanyName string
	PeriodLabel string
	FilterKind  string
	FilterDate  string
	Report      Statement
}
