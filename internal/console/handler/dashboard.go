package handler

import (
	"context"
	"net/http"

	"github.com/dncoder14/crimewatch-ai/internal/domain"
)

// DashboardService Описываем, что нам нужно от сервиса
type DashboardService interface {
	Stats(ctx context.Context) domain.AggregateStatistics
	Overview(ctx context.Context) (*domain.Overview, error)
}

type DashboardHandler struct {
	service DashboardService
}

func NewDashboardHandler(s DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

type statsResponse struct {
	domain.AggregateStatistics
	MonthlySeries []domain.MonthPoint `json:"monthlySeries"`
}

// GetStats GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := h.service.Stats(r.Context())
	writeJSON(w, http.StatusOK, statsResponse{
		AggregateStatistics: stats,
		MonthlySeries:       domain.MonthlySeries(stats),
	})
}

// GetOverview GET /api/v1/dashboard/overview
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
