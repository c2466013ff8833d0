package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dncoder14/crimewatch-ai/internal/console/service"
	"github.com/dncoder14/crimewatch-ai/internal/crimedata"
	"github.com/dncoder14/crimewatch-ai/internal/domain"
)

type IncidentService interface {
	Incidents(ctx context.Context, q service.IncidentQuery) ([]domain.Incident, error)
}

type IncidentHandler struct {
	service IncidentService
}

func NewIncidentHandler(s IncidentService) *IncidentHandler {
	return &IncidentHandler{service: s}
}

// List GET /api/v1/incidents?count=30&lat=34.05&lng=-118.24&categories=robbery,theft
func (h *IncidentHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseIncidentQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	incidents, err := h.service.Incidents(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, incidents)
}

func parseIncidentQuery(r *http.Request) (service.IncidentQuery, error) {
	var q service.IncidentQuery
	params := r.URL.Query()

	if raw := params.Get("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return q, &domain.InvalidArgumentError{Field: "count", Value: raw, Reason: "not an integer"}
		}
		if count > crimedata.MaxIncidentCount {
			return q, &domain.InvalidArgumentError{
				Field:  "count",
				Value:  count,
				Reason: fmt.Sprintf("must not exceed %d", crimedata.MaxIncidentCount),
			}
		}
		q.Count = &count
	}

	rawLat, rawLng := params.Get("lat"), params.Get("lng")
	if rawLat != "" || rawLng != "" {
		if rawLat == "" || rawLng == "" {
			return q, &domain.InvalidArgumentError{Field: "lat,lng", Value: rawLat + "," + rawLng, Reason: "both coordinates are required"}
		}
		lat, err := strconv.ParseFloat(rawLat, 64)
		if err != nil || lat < -90 || lat > 90 {
			return q, &domain.InvalidArgumentError{Field: "lat", Value: rawLat, Reason: "must be a latitude in [-90, 90]"}
		}
		lng, err := strconv.ParseFloat(rawLng, 64)
		if err != nil || lng < -180 || lng > 180 {
			return q, &domain.InvalidArgumentError{Field: "lng", Value: rawLng, Reason: "must be a longitude in [-180, 180]"}
		}
		q.Center = &domain.Coordinate{Lat: lat, Lng: lng}
	}

	if params.Has("categories") {
		set, err := crimedata.ParseCategorySet(params.Get("categories"))
		if err != nil {
			return q, err
		}
		q.Categories = set
	}

	return q, nil
}
