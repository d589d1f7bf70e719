package domain

import "github.com/shopspring/decimal"

// ProjectionPoint is the simulated state of the portfolio at the start of a month
type ProjectionPoint struct {
	Month              string          `json:"month"` // YYYY-MM
	Year               string          `json:"year"`
	Label              string          `json:"label"`
	Outstanding        decimal.Decimal `json:"outstanding"`
	Repayment          decimal.Decimal `json:"repayment"`
	NetSavings         decimal.Decimal `json:"net_savings"`
	AccumulatedSavings decimal.Decimal `json:"accumulated_savings"`
}

// MonthlyFlow is the recurring monthly income and expense totals
type MonthlyFlow struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}
