package reports

// BalanceSheetSection contains the accounts and total for a classification.
type BalanceSheetSection struct {
	Label    string
	Accounts []BalanceRow
	Total    float64
}

// BalanceSheet is the structured response for the balance sheet report.
type BalanceSheet struct {
	Assets                    BalanceSheetSection
	Liabilities               BalanceSheetSection
	Equity                    BalanceSheetSection
	TotalLiabilitiesAndEquity float64
}

// BuildBalanceSheet aggregates signed balances into assets, liabilities, and
// equity sections. Rows arrive ordered by code from BuildBalances.
func BuildBalanceSheet(rows []BalanceRow) BalanceSheet {
	assets := BalanceSheetSection{Label: "Assets"}
	liabilities := BalanceSheetSection{Label: "Liabilities"}
	equity := BalanceSheetSection{Label: "Equity"}

	for _, row := range rows {
		switch row.Type {
		case "ASSET":
			assets.Accounts = append(assets.Accounts, row)
			assets.Total += row.Balance
		case "LIABILITY":
			liabilities.Accounts = append(liabilities.Accounts, row)
			liabilities.Total += row.Balance
		case "EQUITY":
			equity.Accounts = append(equity.Accounts, row)
			equity.Total += row.Balance
		}
	}

	return BalanceSheet{
		Assets:                    assets,
		Liabilities:               liabilities,
		Equity:                    equity,
		TotalLiabilitiesAndEquity: liabilities.Total + equity.Total,
	}
}
