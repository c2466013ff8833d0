package handler

import (
	"context"
	"net/http"

	"github.com/dncoder14/crimewatch-ai/internal/domain"
)

type PredictionService interface {
	Predictions(ctx context.Context) (*domain.PredictionResult, error)
}

type PredictionHandler struct {
	service PredictionService
}

func NewPredictionHandler(s PredictionService) *PredictionHandler {
	return &PredictionHandler{service: s}
}

// Get GET /api/v1/predictions
// Отключение клиента отменяет r.Context(), ожидание прогноза прерывается.
func (h *PredictionHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Predictions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
