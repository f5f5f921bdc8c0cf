package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/service"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/visitor"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/pkg/logger"
)

// TrackHandler handles public page-view tracking requests
type TrackHandler struct {
	analyticsService service.AnalyticsService
	logger           *logger.Logger
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(analyticsService service.AnalyticsService, logger *logger.Logger) *TrackHandler {
	return &TrackHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// TrackResponse represents the response for view tracking
type TrackResponse struct {
	Success bool `json:"success"`
}

// RecordView handles POST /api/track/view. It derives the visitor id, device
// class and country from the request, hands them to the collector, and
// answers 200 unconditionally: a page load must never wait on, or fail
// because of, analytics.
func (h *TrackHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	visitorID := visitor.ClientIP(r)
	device := visitor.DeviceFrom(r.UserAgent())
	country := visitor.CountryFrom(r)

	h.analyticsService.RecordView(r.Context(), visitorID, device, country)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(TrackResponse{Success: true}); err != nil {
		h.logger.WithError(err).Error("Failed to encode track response")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"device":      device,
		"has_country": country != "",
	}).Debug("View tracked")
}

// RegisterRoutes registers track handler routes with the router
func (h *TrackHandler) RegisterRoutes(r chi.Router) {
	r.Route("/track", func(r chi.Router) {
		r.Post("/view", h.RecordView)
	})
}
