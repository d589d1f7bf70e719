// Package schedule turns a debt's payment plan into dated payment obligations
// and resolves which of them have been paid.
package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/segyhp/debt-planner/internal/domain"
	"github.com/segyhp/debt-planner/pkg/utils"
)

// MaxInstallments bounds a monthly schedule at 100 years
const MaxInstallments = 12 * 100

// Generate returns the ordered payment obligations of a debt.
// Paid flags are left unset. A debt that is paid off, has no plan, or has a
// non-positive plan amount yields an empty schedule. Monthly schedules that
// hit MaxInstallments are returned truncated.
func Generate(debt *domain.Debt) []domain.ScheduledPayment {
	if debt == nil || debt.IsPaidOff || debt.PaymentPlan == nil {
		return []domain.ScheduledPayment{}
	}

	plan := *debt.PaymentPlan
	if !plan.Amount.IsPositive() || !debt.TotalAmount.IsPositive() {
		return []domain.ScheduledPayment{}
	}

	start := utils.NormalizeDate(plan.StartDate)
	plan.StartDate = start

	newPayment := func(amount decimal.Decimal, dueDate time.Time) domain.ScheduledPayment {
		return domain.ScheduledPayment{
			DebtID:       debt.ID,
			CreditorName: debt.CreditorName,
			Amount:       amount,
			DueDate:      dueDate,
			Plan:         plan,
		}
	}

	if plan.Frequency == domain.FrequencyOneOff {
		return []domain.ScheduledPayment{
			newPayment(utils.MinDecimal(plan.Amount, debt.TotalAmount), start),
		}
	}

	remaining := debt.TotalAmount
	payments := make([]domain.ScheduledPayment, 0, estimateInstallments(remaining, plan.Amount))

	for i := 0; remaining.IsPositive() && i < MaxInstallments; i++ {
		installment := utils.MinDecimal(plan.Amount, remaining)
		payments = append(payments, newPayment(installment, utils.AddMonths(start, i)))
		remaining = remaining.Sub(installment)
	}

	return payments
}

// estimateInstallments is a capacity hint, capped before converting to int
func estimateInstallments(total, installment decimal.Decimal) int {
	n := total.Div(installment).Ceil()
	if n.GreaterThan(decimal.NewFromInt(MaxInstallments)) {
		return MaxInstallments
	}
	return int(n.IntPart())
}
