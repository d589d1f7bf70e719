package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	customError "github.com/segyhp/debt-planner/pkg/errors"
	"github.com/segyhp/debt-planner/pkg/utils"
)

// DTOs for requests and responses

type PaymentPlanDTO struct {
	Amount    decimal.Decimal `json:"amount" validate:"decimal_gte=0"`
	Frequency string          `json:"frequency" validate:"required,oneof=monthly one_off"`
	StartDate string          `json:"start_date" validate:"required,datetime=2006-01-02"`
}

type DebtInput struct {
	ID           string          `json:"id" validate:"omitempty,max=64"`
	CreditorName string          `json:"creditor_name" validate:"required,max=200"`
	TotalAmount  decimal.Decimal `json:"total_amount" validate:"decimal_gt=0"`
	StartDate    string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	PaymentPlan  *PaymentPlanDTO `json:"payment_plan,omitempty"`
	PaidOn       []string        `json:"paid_on,omitempty" validate:"dive,datetime=2006-01-02"`
	IsPaidOff    bool            `json:"is_paid_off"`
}

type FinancialItemInput struct {
	ID        string          `json:"id" validate:"omitempty,max=64"`
	Label     string          `json:"label" validate:"required,max=200"`
	Amount    decimal.Decimal `json:"amount" validate:"decimal_gte=0"`
	Frequency string          `json:"frequency" validate:"required,oneof=monthly one_off"`
	StartDate string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

// PortfolioRequest carries a snapshot of the caller's debts and cash flows.
// Date fields are only read by the operations that need them.
type PortfolioRequest struct {
	Debts         []DebtInput          `json:"debts" validate:"dive"`
	Incomes       []FinancialItemInput `json:"incomes" validate:"dive"`
	Expenses      []FinancialItemInput `json:"expenses" validate:"dive"`
	ReferenceDate string               `json:"reference_date" validate:"omitempty,datetime=2006-01-02"`
	Month         string               `json:"month" validate:"omitempty,datetime=2006-01"`
	From          string               `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To            string               `json:"to" validate:"omitempty,datetime=2006-01-02"`
}

type ScheduledPaymentDTO struct {
	DebtID       string          `json:"debt_id"`
	CreditorName string          `json:"creditor_name"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      string          `json:"due_date"`
	IsPaid       bool            `json:"is_paid"`
	Plan         PaymentPlanDTO  `json:"plan"`
}

type DebtSummaryDTO struct {
	DebtID         string               `json:"debt_id"`
	Installments   int                  `json:"installments"`
	PaidCount      int                  `json:"paid_count"`
	TotalPaid      decimal.Decimal      `json:"total_paid"`
	Remaining      decimal.Decimal      `json:"remaining"`
	NextPayment    *ScheduledPaymentDTO `json:"next_payment,omitempty"`
	ExpectedPayoff *string              `json:"expected_payoff,omitempty"`
	FullyScheduled bool                 `json:"fully_scheduled"`
}

type ScheduleResponse struct {
	DebtID   string                `json:"debt_id"`
	Schedule []ScheduledPaymentDTO `json:"schedule"`
	Summary  DebtSummaryDTO        `json:"summary"`
}

type PaymentsResponse struct {
	Payments []ScheduledPaymentDTO `json:"payments"`
	Count    int                   `json:"count"`
	Total    decimal.Decimal       `json:"total"`
}

type RepaymentResponse struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type DebtFreeDateResponse struct {
	Date *string `json:"date"`
}

type ProjectionResponse struct {
	Points       []ProjectionPoint `json:"points"`
	DebtFreeDate *string           `json:"debt_free_date"`
	MonthlyFlow  MonthlyFlow       `json:"monthly_flow"`
}

func parseFrequency(field, value string) (Frequency, error) {
	switch f := Frequency(value); f {
	case FrequencyMonthly, FrequencyOneOff:
		return f, nil
	default:
		return "", customError.WrapInvalidFrequency(field, value)
	}
}

// ToDomain converts the plan DTO into an engine plan
func (p *PaymentPlanDTO) ToDomain() (*PaymentPlan, error) {
	freq, err := parseFrequency("payment_plan.frequency", p.Frequency)
	if err != nil {
		return nil, err
	}

	start, err := utils.ParseDateKey(p.StartDate)
	if err != nil {
		return nil, customError.WrapInvalidDate("payment_plan.start_date", p.StartDate)
	}

	return &PaymentPlan{
		Amount:    p.Amount,
		Frequency: freq,
		StartDate: start,
	}, nil
}

// ToDomain converts the debt DTO into an engine debt.
// A debt without an id gets a generated one.
func (d *DebtInput) ToDomain() (*Debt, error) {
	if !d.TotalAmount.IsPositive() {
		return nil, customError.WrapInvalidAmount("total_amount", d.TotalAmount.String())
	}

	start, err := utils.ParseDateKey(d.StartDate)
	if err != nil {
		return nil, customError.WrapInvalidDate("start_date", d.StartDate)
	}

	for _, key := range d.PaidOn {
		if _, err := utils.ParseDateKey(key); err != nil {
			return nil, customError.WrapInvalidDate("paid_on", key)
		}
	}

	debt := &Debt{
		ID:           d.ID,
		CreditorName: d.CreditorName,
		TotalAmount:  d.TotalAmount,
		StartDate:    start,
		PaidOn:       append([]string(nil), d.PaidOn...),
		IsPaidOff:    d.IsPaidOff,
	}
	if debt.ID == "" {
		debt.ID = uuid.NewString()
	}

	if d.PaymentPlan != nil {
		plan, err := d.PaymentPlan.ToDomain()
		if err != nil {
			return nil, err
		}
		debt.PaymentPlan = plan
	}

	return debt, nil
}

// ToDomain converts the income/expense DTO into an engine item
func (f *FinancialItemInput) ToDomain() (FinancialItem, error) {
	freq, err := parseFrequency("frequency", f.Frequency)
	if err != nil {
		return FinancialItem{}, err
	}
	if f.Amount.IsNegative() {
		return FinancialItem{}, customError.WrapInvalidAmount("amount", f.Amount.String())
	}

	item := FinancialItem{
		ID:        f.ID,
		Label:     f.Label,
		Amount:    f.Amount,
		Frequency: freq,
	}
	if f.StartDate != "" {
		start, err := utils.ParseDateKey(f.StartDate)
		if err != nil {
			return FinancialItem{}, customError.WrapInvalidDate("start_date", f.StartDate)
		}
		item.StartDate = start
	}

	return item, nil
}

// DebtsToDomain converts every debt in the request
func (r *PortfolioRequest) DebtsToDomain() ([]*Debt, error) {
	debts := make([]*Debt, 0, len(r.Debts))
	for i := range r.Debts {
		debt, err := r.Debts[i].ToDomain()
		if err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}
	return debts, nil
}

// CashFlowsToDomain converts the incomes and expenses in the request
func (r *PortfolioRequest) CashFlowsToDomain() (incomes, expenses []FinancialItem, err error) {
	incomes, err = itemsToDomain(r.Incomes)
	if err != nil {
		return nil, nil, err
	}
	expenses, err = itemsToDomain(r.Expenses)
	if err != nil {
		return nil, nil, err
	}
	return incomes, expenses, nil
}

func itemsToDomain(in []FinancialItemInput) ([]FinancialItem, error) {
	items := make([]FinancialItem, 0, len(in))
	for i := range in {
		item, err := in[i].ToDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// NewPaymentPlanDTO renders an engine plan for the wire
func NewPaymentPlanDTO(p PaymentPlan) PaymentPlanDTO {
	return PaymentPlanDTO{
		Amount:    p.Amount,
		Frequency: string(p.Frequency),
		StartDate: utils.DateKey(p.StartDate),
	}
}

// NewScheduledPaymentDTO renders an obligation for the wire
func NewScheduledPaymentDTO(p ScheduledPayment) ScheduledPaymentDTO {
	return ScheduledPaymentDTO{
		DebtID:       p.DebtID,
		CreditorName: p.CreditorName,
		Amount:       p.Amount,
		DueDate:      utils.DateKey(p.DueDate),
		IsPaid:       p.IsPaid,
		Plan:         NewPaymentPlanDTO(p.Plan),
	}
}

// NewScheduledPaymentDTOs renders a list of obligations, never nil
func NewScheduledPaymentDTOs(payments []ScheduledPayment) []ScheduledPaymentDTO {
	out := make([]ScheduledPaymentDTO, 0, len(payments))
	for _, p := range payments {
		out = append(out, NewScheduledPaymentDTO(p))
	}
	return out
}

// NewDebtSummaryDTO renders a debt summary for the wire
func NewDebtSummaryDTO(s DebtSummary) DebtSummaryDTO {
	dto := DebtSummaryDTO{
		DebtID:         s.DebtID,
		Installments:   s.Installments,
		PaidCount:      s.PaidCount,
		TotalPaid:      s.TotalPaid,
		Remaining:      s.Remaining,
		FullyScheduled: s.FullyScheduled,
	}
	if s.NextPayment != nil {
		next := NewScheduledPaymentDTO(*s.NextPayment)
		dto.NextPayment = &next
	}
	if s.ExpectedPayoff != nil {
		key := utils.DateKey(*s.ExpectedPayoff)
		dto.ExpectedPayoff = &key
	}
	return dto
}
