package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/segyhp/debt-planner/internal/domain"
	"github.com/segyhp/debt-planner/internal/portfolio"
	"github.com/segyhp/debt-planner/internal/repository"
	"github.com/segyhp/debt-planner/internal/schedule"
	customError "github.com/segyhp/debt-planner/pkg/errors"
	"github.com/segyhp/debt-planner/pkg/utils"
)

const projectionCacheNamespace = "projection"

type PlannerService struct {
	resolver   *schedule.Resolver
	aggregator *portfolio.Aggregator
	simulator  *portfolio.Simulator
	cache      repository.CacheRepository
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewPlannerService wires the engine around a schedule cache.
// cache may be nil, in which case projections are never memoised.
func NewPlannerService(
	scheduleCache *schedule.Cache,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *PlannerService {
	resolver := schedule.NewResolver(scheduleCache)
	aggregator := portfolio.NewAggregator(resolver)

	return &PlannerService{
		resolver:   resolver,
		aggregator: aggregator,
		simulator:  portfolio.NewSimulator(aggregator),
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Schedule returns the resolved schedule and summary of one debt
func (s *PlannerService) Schedule(ctx context.Context, input *domain.DebtInput) (*domain.ScheduleResponse, error) {
	debt, err := input.ToDomain()
	if err != nil {
		return nil, err
	}

	payments := s.resolver.Resolve(debt)

	s.logger.Debug("schedule generated",
		zap.String("debt_id", debt.ID),
		zap.Int("installments", len(payments)),
	)

	return &domain.ScheduleResponse{
		DebtID:   debt.ID,
		Schedule: domain.NewScheduledPaymentDTOs(payments),
		Summary:  domain.NewDebtSummaryDTO(s.resolver.Summary(debt)),
	}, nil
}

// Overdue returns the unpaid obligations due before the request's reference date
func (s *PlannerService) Overdue(ctx context.Context, req *domain.PortfolioRequest) (*domain.PaymentsResponse, error) {
	ref, err := requiredDate("reference_date", req.ReferenceDate)
	if err != nil {
		return nil, err
	}

	debts, err := req.DebtsToDomain()
	if err != nil {
		return nil, err
	}

	return newPaymentsResponse(s.aggregator.OverduePayments(debts, ref)), nil
}

// Upcoming returns the obligations due within the request's from/to range
func (s *PlannerService) Upcoming(ctx context.Context, req *domain.PortfolioRequest) (*domain.PaymentsResponse, error) {
	from, err := requiredDate("from", req.From)
	if err != nil {
		return nil, err
	}
	to, err := requiredDate("to", req.To)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, customError.WrapInvalidRange(req.From, req.To)
	}

	debts, err := req.DebtsToDomain()
	if err != nil {
		return nil, err
	}

	return newPaymentsResponse(s.aggregator.UpcomingPayments(debts, from, to)), nil
}

// PlannedRepayment totals the obligations due in the request's month
func (s *PlannerService) PlannedRepayment(ctx context.Context, req *domain.PortfolioRequest) (*domain.RepaymentResponse, error) {
	month, err := utils.ParseMonthKey(req.Month)
	if err != nil {
		return nil, customError.WrapInvalidMonth("month", req.Month)
	}

	debts, err := req.DebtsToDomain()
	if err != nil {
		return nil, err
	}

	return &domain.RepaymentResponse{
		Month: utils.MonthKey(month),
		Total: s.aggregator.TotalPlannedRepayment(debts, month),
	}, nil
}

// DebtFreeDate returns the month the portfolio becomes debt-free, or a nil date
// when no active debt has a schedule
func (s *PlannerService) DebtFreeDate(ctx context.Context, req *domain.PortfolioRequest) (*domain.DebtFreeDateResponse, error) {
	ref, err := requiredDate("reference_date", req.ReferenceDate)
	if err != nil {
		return nil, err
	}

	debts, err := req.DebtsToDomain()
	if err != nil {
		return nil, err
	}

	resp := &domain.DebtFreeDateResponse{}
	if date, ok := s.aggregator.DebtFreeDate(debts, ref); ok {
		key := utils.DateKey(date)
		resp.Date = &key
	}
	return resp, nil
}

// Projection simulates the portfolio month by month.
// Results are memoised in the response cache keyed on the request payload.
func (s *PlannerService) Projection(ctx context.Context, req *domain.PortfolioRequest) (*domain.ProjectionResponse, error) {
	debts, err := req.DebtsToDomain()
	if err != nil {
		return nil, err
	}
	incomes, expenses, err := req.CashFlowsToDomain()
	if err != nil {
		return nil, err
	}

	ref := time.Time{}
	if req.ReferenceDate != "" {
		if ref, err = requiredDate("reference_date", req.ReferenceDate); err != nil {
			return nil, err
		}
	}

	key, cached := s.cachedProjection(ctx, req)
	if cached != nil {
		return cached, nil
	}

	resp := &domain.ProjectionResponse{
		Points:      s.simulator.Project(debts, incomes, expenses),
		MonthlyFlow: portfolio.MonthlyNetFlow(incomes, expenses),
	}

	if date, ok := s.aggregator.DebtFreeDate(debts, ref); ok && !date.IsZero() {
		dateKey := utils.DateKey(date)
		resp.DebtFreeDate = &dateKey
	}

	s.storeProjection(ctx, key, resp)

	s.logger.Info("projection computed",
		zap.Int("debts", len(debts)),
		zap.Int("months", len(resp.Points)),
	)

	return resp, nil
}

func (s *PlannerService) cachedProjection(ctx context.Context, req *domain.PortfolioRequest) (string, *domain.ProjectionResponse) {
	if s.cache == nil {
		return "", nil
	}

	payload, err := json.Marshal(req)
	if err != nil {
		s.logger.Warn("projection cache key", zap.Error(err))
		return "", nil
	}
	key := repository.DigestKey(projectionCacheNamespace, payload)

	val, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("projection cache read failed", zap.Error(customError.WrapCacheError(err)))
		return key, nil
	}
	if !ok {
		return key, nil
	}

	var resp domain.ProjectionResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		s.logger.Warn("projection cache entry corrupt", zap.String("key", key), zap.Error(err))
		return key, nil
	}

	s.logger.Debug("projection cache hit", zap.String("key", key))
	return key, &resp
}

func (s *PlannerService) storeProjection(ctx context.Context, key string, resp *domain.ProjectionResponse) {
	if s.cache == nil || key == "" {
		return
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Warn("projection encode failed", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		s.logger.Warn("projection cache write failed", zap.Error(customError.WrapCacheError(err)))
	}
}

func requiredDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, customError.NewBusinessError(
			customError.ErrCodeValidation,
			field+" is required",
			customError.ErrValidation,
		)
	}
	t, err := utils.ParseDateKey(value)
	if err != nil {
		return time.Time{}, customError.WrapInvalidDate(field, value)
	}
	return t, nil
}

func newPaymentsResponse(payments []domain.ScheduledPayment) *domain.PaymentsResponse {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return &domain.PaymentsResponse{
		Payments: domain.NewScheduledPaymentDTOs(payments),
		Count:    len(payments),
		Total:    total,
	}
}
