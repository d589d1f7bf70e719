package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/segyhp/debt-planner/pkg/response"
)

// NewRouter mounts the health and planner endpoints
func NewRouter(planner *PlannerHandler, health *HealthHandler, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(logger), response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", health.Ready).Methods(http.MethodGet)

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/debts/schedule", planner.Schedule).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/portfolio/overdue", planner.Overdue).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/portfolio/upcoming", planner.Upcoming).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/portfolio/repayment", planner.PlannedRepayment).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/portfolio/debt-free-date", planner.DebtFreeDate).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/portfolio/projection", planner.Projection).Methods(http.MethodPost, http.MethodOptions)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return router
}
