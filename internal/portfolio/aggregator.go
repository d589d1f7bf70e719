// Package portfolio answers questions about a whole set of debts: overdue and
// upcoming obligations, monthly repayment totals, the debt-free date and the
// month-by-month projection of debt and savings.
package portfolio

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/segyhp/debt-planner/internal/domain"
	"github.com/segyhp/debt-planner/internal/schedule"
	"github.com/segyhp/debt-planner/pkg/utils"
)

// Aggregator combines per-debt schedules across a portfolio
type Aggregator struct {
	resolver *schedule.Resolver
}

// NewAggregator creates an aggregator that resolves schedules through resolver
func NewAggregator(resolver *schedule.Resolver) *Aggregator {
	return &Aggregator{resolver: resolver}
}

// Resolver exposes the per-debt resolver the aggregator works with
func (a *Aggregator) Resolver() *schedule.Resolver {
	return a.resolver
}

func activeDebts(debts []*domain.Debt) []*domain.Debt {
	active := make([]*domain.Debt, 0, len(debts))
	for _, d := range debts {
		if d != nil && d.IsActive() {
			active = append(active, d)
		}
	}
	return active
}

func sortByDueDate(payments []domain.ScheduledPayment) {
	sort.SliceStable(payments, func(i, j int) bool {
		if !payments[i].DueDate.Equal(payments[j].DueDate) {
			return payments[i].DueDate.Before(payments[j].DueDate)
		}
		return payments[i].CreditorName < payments[j].CreditorName
	})
}

// OverduePayments returns unpaid obligations of active debts due strictly before ref,
// oldest first
func (a *Aggregator) OverduePayments(debts []*domain.Debt, ref time.Time) []domain.ScheduledPayment {
	ref = utils.NormalizeDate(ref)

	overdue := []domain.ScheduledPayment{}
	for _, debt := range activeDebts(debts) {
		for _, p := range a.resolver.Resolve(debt) {
			if !p.IsPaid && p.DueDate.Before(ref) {
				overdue = append(overdue, p)
			}
		}
	}

	sortByDueDate(overdue)
	return overdue
}

// UpcomingPayments returns obligations of active debts due within [from, to],
// ordered by due date then creditor name
func (a *Aggregator) UpcomingPayments(debts []*domain.Debt, from, to time.Time) []domain.ScheduledPayment {
	from, to = utils.NormalizeDate(from), utils.NormalizeDate(to)

	upcoming := []domain.ScheduledPayment{}
	for _, debt := range activeDebts(debts) {
		for _, p := range a.resolver.Resolve(debt) {
			if !p.DueDate.Before(from) && !p.DueDate.After(to) {
				upcoming = append(upcoming, p)
			}
		}
	}

	sortByDueDate(upcoming)
	return upcoming
}

// TotalPlannedRepayment sums the obligations of active debts due in target's calendar month
func (a *Aggregator) TotalPlannedRepayment(debts []*domain.Debt, target time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, debt := range activeDebts(debts) {
		for _, p := range a.resolver.Resolve(debt) {
			if utils.SameMonth(p.DueDate, target) {
				total = total.Add(p.Amount)
			}
		}
	}
	return total
}

// RepaymentsByMonth totals the obligations of active debts per YYYY-MM month key
func (a *Aggregator) RepaymentsByMonth(debts []*domain.Debt) map[string]decimal.Decimal {
	byMonth := make(map[string]decimal.Decimal)
	for _, debt := range activeDebts(debts) {
		for _, p := range a.resolver.Resolve(debt) {
			key := utils.MonthKey(p.DueDate)
			byMonth[key] = byMonth[key].Add(p.Amount)
		}
	}
	return byMonth
}

// DebtFreeDate returns the first day of the month after the last scheduled
// obligation across active debts. With no active debts the portfolio is
// already debt-free as of ref. The boolean is false when active debts exist
// but none of them has a schedule.
func (a *Aggregator) DebtFreeDate(debts []*domain.Debt, ref time.Time) (time.Time, bool) {
	active := activeDebts(debts)
	if len(active) == 0 {
		return utils.NormalizeDate(ref), true
	}

	var latest time.Time
	found := false
	for _, debt := range active {
		payments := a.resolver.Resolve(debt)
		if len(payments) == 0 {
			continue
		}
		if last := payments[len(payments)-1].DueDate; !found || last.After(latest) {
			latest = last
			found = true
		}
	}

	if !found {
		return time.Time{}, false
	}
	return utils.FirstOfNextMonth(latest), true
}
