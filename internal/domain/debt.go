package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency of a payment plan or a financial item
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyOneOff  Frequency = "one_off"
)

// PaymentPlan describes how a debt is intended to be repaid
type PaymentPlan struct {
	Amount    decimal.Decimal `json:"amount"`
	Frequency Frequency       `json:"frequency"`
	StartDate time.Time       `json:"start_date"`
}

// Debt is a read-only snapshot of a user's debt
type Debt struct {
	ID           string          `json:"id"`
	CreditorName string          `json:"creditor_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	StartDate    time.Time       `json:"start_date"`
	PaymentPlan  *PaymentPlan    `json:"payment_plan,omitempty"`
	PaidOn       []string        `json:"paid_on,omitempty"` // due-date keys (YYYY-MM-DD)
	IsPaidOff    bool            `json:"is_paid_off"`
}

// IsActive reports whether the debt still takes part in portfolio calculations
func (d *Debt) IsActive() bool {
	return !d.IsPaidOff
}

// FinancialItem is a recurring or one-off income or expense
type FinancialItem struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency Frequency       `json:"frequency"`
	StartDate time.Time       `json:"start_date"`
}

// MonthlyAmount is the amount the item contributes to every month
func (f FinancialItem) MonthlyAmount() decimal.Decimal {
	if f.Frequency == FrequencyMonthly {
		return f.Amount
	}
	return decimal.Zero
}
