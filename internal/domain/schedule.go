package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduledPayment is one dated obligation derived from a debt's plan
type ScheduledPayment struct {
	DebtID       string          `json:"debt_id"`
	CreditorName string          `json:"creditor_name"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      time.Time       `json:"due_date"`
	IsPaid       bool            `json:"is_paid"`
	Plan         PaymentPlan     `json:"plan"`
}

// DebtSummary aggregates the resolved schedule of a single debt
type DebtSummary struct {
	DebtID         string            `json:"debt_id"`
	Installments   int               `json:"installments"`
	PaidCount      int               `json:"paid_count"`
	TotalPaid      decimal.Decimal   `json:"total_paid"`
	Remaining      decimal.Decimal   `json:"remaining"`
	NextPayment    *ScheduledPayment `json:"next_payment,omitempty"`
	ExpectedPayoff *time.Time        `json:"expected_payoff,omitempty"`
	FullyScheduled bool              `json:"fully_scheduled"`
}
