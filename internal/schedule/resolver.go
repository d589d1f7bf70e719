package schedule

import (
	"github.com/shopspring/decimal"

	"github.com/segyhp/debt-planner/internal/domain"
	"github.com/segyhp/debt-planner/pkg/utils"
)

// Resolver marks generated obligations as paid and derives per-debt totals
type Resolver struct {
	cache *Cache
}

// NewResolver creates a resolver. A nil cache disables memoisation.
func NewResolver(cache *Cache) *Resolver {
	return &Resolver{cache: cache}
}

// Resolve returns the debt's schedule with paid flags set from debt.PaidOn
func (r *Resolver) Resolve(debt *domain.Debt) []domain.ScheduledPayment {
	if debt == nil || debt.IsPaidOff {
		return []domain.ScheduledPayment{}
	}
	if r.cache == nil {
		return resolve(debt)
	}
	return r.cache.GetOrCompute(debt, resolve)
}

func resolve(debt *domain.Debt) []domain.ScheduledPayment {
	payments := Generate(debt)
	if len(payments) == 0 || len(debt.PaidOn) == 0 {
		return payments
	}

	paid := make(map[string]struct{}, len(debt.PaidOn))
	for _, key := range debt.PaidOn {
		paid[key] = struct{}{}
	}

	for i := range payments {
		_, payments[i].IsPaid = paid[utils.DateKey(payments[i].DueDate)]
	}
	return payments
}

// TotalPaid is the total amount for a paid-off debt, otherwise the sum of paid obligations
func (r *Resolver) TotalPaid(debt *domain.Debt) decimal.Decimal {
	if debt.IsPaidOff {
		return debt.TotalAmount
	}

	total := decimal.Zero
	for _, p := range r.Resolve(debt) {
		if p.IsPaid {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// Remaining is the unpaid part of the debt, never negative
func (r *Resolver) Remaining(debt *domain.Debt) decimal.Decimal {
	return utils.FloorZero(debt.TotalAmount.Sub(r.TotalPaid(debt)))
}

// Summary aggregates the resolved schedule of a debt
func (r *Resolver) Summary(debt *domain.Debt) domain.DebtSummary {
	summary := domain.DebtSummary{
		DebtID:    debt.ID,
		TotalPaid: decimal.Zero,
	}

	if debt.IsPaidOff {
		summary.TotalPaid = debt.TotalAmount
		summary.Remaining = decimal.Zero
		summary.FullyScheduled = true
		return summary
	}

	payments := r.Resolve(debt)
	scheduled := decimal.Zero
	for i := range payments {
		p := payments[i]
		scheduled = scheduled.Add(p.Amount)
		if p.IsPaid {
			summary.PaidCount++
			summary.TotalPaid = summary.TotalPaid.Add(p.Amount)
			continue
		}
		if summary.NextPayment == nil {
			summary.NextPayment = &p
		}
	}

	summary.Installments = len(payments)
	summary.Remaining = utils.FloorZero(debt.TotalAmount.Sub(summary.TotalPaid))
	summary.FullyScheduled = scheduled.Equal(debt.TotalAmount)
	if len(payments) > 0 {
		last := payments[len(payments)-1].DueDate
		summary.ExpectedPayoff = &last
	}

	return summary
}
