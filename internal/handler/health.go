package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/segyhp/debt-planner/internal/repository"
	"github.com/segyhp/debt-planner/internal/schedule"
	"github.com/segyhp/debt-planner/pkg/response"
)

type HealthHandler struct {
	cache         repository.CacheRepository
	scheduleCache *schedule.Cache
	timeout       time.Duration
}

// NewHealthHandler creates the health endpoints. cache may be nil when no
// response cache is configured.
func NewHealthHandler(cache repository.CacheRepository, scheduleCache *schedule.Cache, timeout time.Duration) *HealthHandler {
	return &HealthHandler{
		cache:         cache,
		scheduleCache: scheduleCache,
		timeout:       timeout,
	}
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health performs a basic health check
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	if h.scheduleCache != nil {
		stats := h.scheduleCache.Stats()
		status.Checks["schedule_cache_entries"] = strconv.Itoa(stats.Entries)
	}

	response.Success(w, status)
}

// Ready performs readiness check including response cache connectivity
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		if err := h.cache.Ping(ctx); err != nil {
			status.Status = "error"
			status.Checks["cache"] = "failed: " + err.Error()
		} else {
			status.Checks["cache"] = "ok"
		}
	}

	if status.Status == "error" {
		response.Error(w, http.StatusServiceUnavailable, "Service not ready", nil)
		return
	}

	response.Success(w, status)
}
