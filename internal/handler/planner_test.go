package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/segyhp/debt-planner/internal/domain"
	"github.com/segyhp/debt-planner/internal/mocks"
	"github.com/segyhp/debt-planner/internal/repository"
	"github.com/segyhp/debt-planner/internal/schedule"
	"github.com/segyhp/debt-planner/internal/service"
	customError "github.com/segyhp/debt-planner/pkg/errors"
)

func newTestRouter(planner Planner) http.Handler {
	logger := zap.NewNop()
	return NewRouter(
		NewPlannerHandler(planner, logger),
		NewHealthHandler(nil, nil, time.Second),
		logger,
	)
}

func doJSON(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPlannerHandler_Schedule(t *testing.T) {
	validDebt := `{
		"id": "d1",
		"creditor_name": "Bank",
		"total_amount": "1200",
		"start_date": "2025-01-15",
		"payment_plan": {"amount": 500, "frequency": "monthly", "start_date": "2025-01-15"},
		"paid_on": ["2025-01-15"]
	}`

	tests := []struct {
		name           string
		body           string
		setupMock      func(*mocks.MockPlannerService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "valid debt",
			body: validDebt,
			setupMock: func(m *mocks.MockPlannerService) {
				m.On("Schedule", mock.Anything, mock.MatchedBy(func(in *domain.DebtInput) bool {
					return in.ID == "d1" &&
						in.TotalAmount.Equal(decimal.NewFromInt(1200)) &&
						in.PaymentPlan != nil &&
						in.PaymentPlan.Amount.Equal(decimal.NewFromInt(500))
				})).Return(&domain.ScheduleResponse{DebtID: "d1"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var wrapper struct {
					Success bool                    `json:"success"`
					Data    domain.ScheduleResponse `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapper))
				assert.True(t, wrapper.Success)
				assert.Equal(t, "d1", wrapper.Data.DebtID)
			},
		},
		{
			name:           "malformed json",
			body:           `{"id": `,
			setupMock:      func(*mocks.MockPlannerService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown field",
			body:           `{"creditor_name": "Bank", "total_amount": 1, "start_date": "2025-01-01", "colour": "red"}`,
			setupMock:      func(*mocks.MockPlannerService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing creditor",
			body:           `{"total_amount": 100, "start_date": "2025-01-01"}`,
			setupMock:      func(*mocks.MockPlannerService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero total amount",
			body:           `{"creditor_name": "Bank", "total_amount": 0, "start_date": "2025-01-01"}`,
			setupMock:      func(*mocks.MockPlannerService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative plan amount",
			body:           `{"creditor_name": "Bank", "total_amount": 10, "start_date": "2025-01-01", "payment_plan": {"amount": -1, "frequency": "monthly", "start_date": "2025-01-01"}}`,
			setupMock:      func(*mocks.MockPlannerService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unparseable start date",
			body:           `{"creditor_name": "Bank", "total_amount": 10, "start_date": "01/01/2025"}`,
			setupMock:      func(*mocks.MockPlannerService) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Body.String(), "StartDate")
			},
		},
		{
			name:           "unparseable paid date",
			body:           `{"creditor_name": "Bank", "total_amount": 10, "start_date": "2025-01-01", "paid_on": ["yesterday"]}`,
			setupMock:      func(*mocks.MockPlannerService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unexpected service failure",
			body: validDebt,
			setupMock: func(m *mocks.MockPlannerService) {
				m.On("Schedule", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "service rejects input",
			body: validDebt,
			setupMock: func(m *mocks.MockPlannerService) {
				m.On("Schedule", mock.Anything, mock.Anything).Return(nil, customError.WrapInvalidDate("start_date", "x")).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := mocks.NewMockPlannerService()
			tt.setupMock(mockService)

			w := doJSON(t, newTestRouter(mockService), "/api/v1/debts/schedule", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestPlannerHandler_PortfolioRoutes(t *testing.T) {
	tests := []struct {
		path   string
		method string
		result interface{}
	}{
		{path: "/api/v1/portfolio/overdue", method: "Overdue", result: &domain.PaymentsResponse{}},
		{path: "/api/v1/portfolio/upcoming", method: "Upcoming", result: &domain.PaymentsResponse{}},
		{path: "/api/v1/portfolio/repayment", method: "PlannedRepayment", result: &domain.RepaymentResponse{Month: "2025-03"}},
		{path: "/api/v1/portfolio/debt-free-date", method: "DebtFreeDate", result: &domain.DebtFreeDateResponse{}},
		{path: "/api/v1/portfolio/projection", method: "Projection", result: &domain.ProjectionResponse{}},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			mockService := mocks.NewMockPlannerService()
			mockService.On(tt.method, mock.Anything, mock.MatchedBy(func(req *domain.PortfolioRequest) bool {
				return req.ReferenceDate == "2025-04-01" && len(req.Debts) == 0
			})).Return(tt.result, nil).Once()

			w := doJSON(t, newTestRouter(mockService), tt.path, `{"debts": [], "reference_date": "2025-04-01"}`)

			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

func TestPlannerHandler_PortfolioValidation(t *testing.T) {
	mockService := mocks.NewMockPlannerService()
	router := newTestRouter(mockService)

	bodies := []string{
		`{"reference_date": "2025-4-1"}`,
		`{"month": "March"}`,
		`{"debts": [{"creditor_name": "", "total_amount": 1, "start_date": "2025-01-01"}]}`,
		`{"incomes": [{"label": "salary", "amount": 100, "frequency": "weekly"}]}`,
	}

	for _, body := range bodies {
		w := doJSON(t, router, "/api/v1/portfolio/projection", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	mockService.AssertNotCalled(t, "Projection", mock.Anything, mock.Anything)
}

func TestRouter_NotFoundAndHealth(t *testing.T) {
	router := newTestRouter(mocks.NewMockPlannerService())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandler_ReadyCacheDown(t *testing.T) {
	cache := &mocks.MockCacheRepository{}
	cache.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()

	h := NewHealthHandler(cache, schedule.NewCache(1), time.Second)
	w := httptest.NewRecorder()
	h.Ready(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	cache.AssertExpectations(t)
}

// End to end through the real service
func TestPlannerHandler_EndToEnd(t *testing.T) {
	svc := service.NewPlannerService(schedule.NewCache(schedule.DefaultCacheSize), repository.NewMemoryCache(repository.DefaultMemoryCacheSize, time.Minute), time.Minute, zap.NewNop())
	router := newTestRouter(svc)

	debt := map[string]interface{}{
		"id":            "d1",
		"creditor_name": "Bank",
		"total_amount":  "1200",
		"start_date":    "2025-01-15",
		"payment_plan":  map[string]interface{}{"amount": "500", "frequency": "monthly", "start_date": "2025-01-15"},
		"paid_on":       []string{"2025-01-15", "2025-02-15"},
	}

	w := doJSON(t, router, "/api/v1/portfolio/overdue", map[string]interface{}{
		"debts":          []interface{}{debt},
		"reference_date": "2025-04-01",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var overdue struct {
		Data domain.PaymentsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overdue))
	require.Len(t, overdue.Data.Payments, 1)
	assert.Equal(t, "2025-03-15", overdue.Data.Payments[0].DueDate)
	assert.True(t, overdue.Data.Payments[0].Amount.Equal(decimal.NewFromInt(200)))

	single := map[string]interface{}{
		"id":            "d2",
		"creditor_name": "Shop",
		"total_amount":  "300",
		"start_date":    "2025-06-10",
		"payment_plan":  map[string]interface{}{"amount": "300", "frequency": "one_off", "start_date": "2025-06-10"},
	}
	w = doJSON(t, router, "/api/v1/portfolio/debt-free-date", map[string]interface{}{
		"debts":          []interface{}{single},
		"reference_date": "2025-01-01",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var free struct {
		Data domain.DebtFreeDateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &free))
	require.NotNil(t, free.Data.Date)
	assert.Equal(t, "2025-07-01", *free.Data.Date)
}
