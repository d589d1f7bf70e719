package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/segyhp/debt-planner/internal/domain"
	customError "github.com/segyhp/debt-planner/pkg/errors"
	"github.com/segyhp/debt-planner/pkg/response"
)

const maxBodyBytes = 1 << 20

// Planner is the set of engine operations exposed over HTTP
type Planner interface {
	Schedule(ctx context.Context, input *domain.DebtInput) (*domain.ScheduleResponse, error)
	Overdue(ctx context.Context, req *domain.PortfolioRequest) (*domain.PaymentsResponse, error)
	Upcoming(ctx context.Context, req *domain.PortfolioRequest) (*domain.PaymentsResponse, error)
	PlannedRepayment(ctx context.Context, req *domain.PortfolioRequest) (*domain.RepaymentResponse, error)
	DebtFreeDate(ctx context.Context, req *domain.PortfolioRequest) (*domain.DebtFreeDateResponse, error)
	Projection(ctx context.Context, req *domain.PortfolioRequest) (*domain.ProjectionResponse, error)
}

type PlannerHandler struct {
	service   Planner
	validator *validator.Validate
	logger    *zap.Logger
}

func NewPlannerHandler(service Planner, logger *zap.Logger) *PlannerHandler {
	return &PlannerHandler{
		service:   service,
		validator: newValidator(),
		logger:    logger,
	}
}

// decode reads and validates a JSON body, writing a 400 on failure
func (h *PlannerHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		response.BadRequest(w, "Validation failed", customError.WrapValidation(err))
		return false
	}
	return true
}

func (h *PlannerHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if customError.IsClientError(err) {
		response.BadRequest(w, "Invalid request", err)
		return
	}
	h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	response.InternalServerError(w, "Internal server error", err)
}

// Schedule handles POST /debts/schedule
func (h *PlannerHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var input domain.DebtInput
	if !h.decode(w, r, &input) {
		return
	}

	resp, err := h.service.Schedule(r.Context(), &input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, resp)
}

// portfolio decodes a PortfolioRequest and hands it to call
func portfolio[T any](h *PlannerHandler, call func(context.Context, *domain.PortfolioRequest) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.PortfolioRequest
		if !h.decode(w, r, &req) {
			return
		}

		resp, err := call(r.Context(), &req)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		response.Success(w, resp)
	}
}

// Overdue handles POST /portfolio/overdue
func (h *PlannerHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	portfolio(h, h.service.Overdue)(w, r)
}

// Upcoming handles POST /portfolio/upcoming
func (h *PlannerHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	portfolio(h, h.service.Upcoming)(w, r)
}

// PlannedRepayment handles POST /portfolio/repayment
func (h *PlannerHandler) PlannedRepayment(w http.ResponseWriter, r *http.Request) {
	portfolio(h, h.service.PlannedRepayment)(w, r)
}

// DebtFreeDate handles POST /portfolio/debt-free-date
func (h *PlannerHandler) DebtFreeDate(w http.ResponseWriter, r *http.Request) {
	portfolio(h, h.service.DebtFreeDate)(w, r)
}

// Projection handles POST /portfolio/projection
func (h *PlannerHandler) Projection(w http.ResponseWriter, r *http.Request) {
	portfolio(h, h.service.Projection)(w, r)
}
