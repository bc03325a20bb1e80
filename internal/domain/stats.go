package domain

import "github.com/shopspring/decimal"

// GroupTotal is the sum and count of the records sharing a grouping key
// (a transaction type or an investment category)
type GroupTotal struct {
	Key   string
	Total decimal.Decimal
	Count int
}

// CategoryTotal is a labelled investment category sum
type CategoryTotal struct {
	Category string
	Name     string
	Total    decimal.Decimal
}

// TransactionSummary is the transaction half of the dashboard
type TransactionSummary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Recent  []*Transaction
}

// InvestmentSummary is the investment half of the dashboard
type InvestmentSummary struct {
	Total      decimal.Decimal
	ByCategory []CategoryTotal
}

// DashboardStats is computed on demand and never persisted
type DashboardStats struct {
	Transactions TransactionSummary
	Investments  InvestmentSummary
}
