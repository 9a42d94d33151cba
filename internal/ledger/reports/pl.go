package reports

// ProfitAndLossSection groups accounts by nature.
type ProfitAndLossSection struct {
	Label    string
	Accounts []BalanceRow
	Total    float64
}

// ProfitAndLoss contains the structured output for the income statement.
type ProfitAndLoss struct {
	Revenue   ProfitAndLossSection
	Expense   ProfitAndLossSection
	NetProfit float64
}

// BuildProfitAndLoss splits signed balances into revenue and expense sections.
func BuildProfitAndLoss(rows []BalanceRow) ProfitAndLoss {
	revenue := ProfitAndLossSection{Label: "Revenue"}
	expense := ProfitAndLossSection{Label: "Expense"}

	for _, row := range rows {
		switch row.Type {
		case "REVENUE", "INCOME":
			revenue.Accounts = append(revenue.Accounts, row)
			revenue.Total += row.Balance
		case "EXPENSE", "COGS":
			expense.Accounts = append(expense.Accounts, row)
			expense.Total += row.Balance
		}
	}

	return ProfitAndLoss{
		Revenue:   revenue,
		Expense:   expense,
		NetProfit: revenue.Total - expense.Total,
	}
}
