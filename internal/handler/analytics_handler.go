package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/service"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/pkg/logger"
)

const (
	defaultSummaryDays = 30
	maxSummaryDays     = 365
)

// AnalyticsHandler handles authenticated dashboard queries
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	logger           *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService service.AnalyticsService, logger *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// ActiveUsersResponse represents the response for the active users query
type ActiveUsersResponse struct {
	ActiveUsers int `json:"activeUsers"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// GetActiveUsers handles GET /api/analytics/active
func (h *AnalyticsHandler) GetActiveUsers(w http.ResponseWriter, r *http.Request) {
	response := ActiveUsersResponse{
		ActiveUsers: h.analyticsService.ActiveVisitors(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.WithError(err).Error("Failed to encode active users response")
	}
}

// GetSummary handles GET /api/analytics?days=N
func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	days := defaultSummaryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.sendErrorResponse(w, http.StatusBadRequest, "validation", "days must be a positive integer")
			return
		}
		days = parsed
	}
	if days > maxSummaryDays {
		days = maxSummaryDays
	}

	summary, err := h.analyticsService.Summarize(r.Context(), days)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build analytics summary")
		h.sendErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to load analytics")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(summary); err != nil {
		h.logger.WithError(err).Error("Failed to encode summary response")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"days":         days,
		"total_views":  summary.TotalViews,
		"total_unique": summary.TotalUnique,
	}).Debug("Analytics summary served")
}

// sendErrorResponse sends a standardized error response
func (h *AnalyticsHandler) sendErrorResponse(w http.ResponseWriter, statusCode int, errorType, message string) {
	response := map[string]interface{}{
		"success": false,
		"error": ErrorResponse{
			Type:    errorType,
			Message: message,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.WithError(err).Error("Failed to encode error response")
	}
}

// RegisterRoutes registers analytics handler routes with the router
func (h *AnalyticsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/", h.GetSummary)
		r.Get("/active", h.GetActiveUsers)
	})
}
