package portfolio

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/segyhp/debt-planner/internal/domain"
	"github.com/segyhp/debt-planner/pkg/utils"
)

// MaxProjectionMonths bounds the simulation at 100 years
const MaxProjectionMonths = 12 * 100

// Simulator runs the month-by-month projection of debt and savings
type Simulator struct {
	aggregator *Aggregator
}

// NewSimulator creates a simulator reading repayments from aggregator
func NewSimulator(aggregator *Aggregator) *Simulator {
	return &Simulator{aggregator: aggregator}
}

// MonthlyNetFlow totals the recurring monthly incomes and expenses.
// One-off items are ignored.
func MonthlyNetFlow(incomes, expenses []domain.FinancialItem) domain.MonthlyFlow {
	flow := domain.MonthlyFlow{
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}
	for _, i := range incomes {
		flow.Income = flow.Income.Add(i.MonthlyAmount())
	}
	for _, e := range expenses {
		flow.Expenses = flow.Expenses.Add(e.MonthlyAmount())
	}
	flow.Net = flow.Income.Sub(flow.Expenses)
	return flow
}

func newPoint(month time.Time, outstanding, repayment, net, accumulated decimal.Decimal) domain.ProjectionPoint {
	return domain.ProjectionPoint{
		Month:              utils.MonthKey(month),
		Year:               month.Format("2006"),
		Label:              month.Format("Jan"),
		Outstanding:        utils.FloorZero(outstanding),
		Repayment:          repayment,
		NetSavings:         net,
		AccumulatedSavings: utils.FloorZero(accumulated),
	}
}

// Project simulates the portfolio from the month of the earliest active debt
// start through the debt-free date. Each point holds the balance at the start
// of its month. When the debt is cleared a closing point with zero balance is
// appended. No active debts, or no schedule at all, yields an empty result.
func (s *Simulator) Project(debts []*domain.Debt, incomes, expenses []domain.FinancialItem) []domain.ProjectionPoint {
	points := []domain.ProjectionPoint{}

	active := activeDebts(debts)
	if len(active) == 0 {
		return points
	}

	end, ok := s.aggregator.DebtFreeDate(active, time.Time{})
	if !ok {
		return points
	}

	outstanding := decimal.Zero
	earliest := active[0].StartDate
	for _, d := range active {
		outstanding = outstanding.Add(d.TotalAmount)
		if d.StartDate.Before(earliest) {
			earliest = d.StartDate
		}
	}

	byMonth := s.aggregator.RepaymentsByMonth(active)

	start := utils.FirstOfMonth(earliest)
	startKey := utils.MonthKey(start)
	for key, amount := range byMonth {
		// YYYY-MM keys order lexically
		if key < startKey {
			outstanding = outstanding.Sub(amount)
		}
	}

	flow := MonthlyNetFlow(incomes, expenses)
	accumulated := decimal.Zero

	cursor := start
	for i := 0; !cursor.After(end) && i < MaxProjectionMonths && outstanding.IsPositive(); i++ {
		repayment := byMonth[utils.MonthKey(cursor)]
		net := flow.Net.Sub(repayment)

		points = append(points, newPoint(cursor, outstanding, repayment, net, accumulated))

		outstanding = outstanding.Sub(repayment)
		accumulated = accumulated.Add(net)
		cursor = utils.AddMonths(start, i+1)
	}

	if len(points) > 0 && !outstanding.IsPositive() {
		points = append(points, newPoint(cursor, decimal.Zero, decimal.Zero, flow.Net, accumulated))
	}

	return points
}
