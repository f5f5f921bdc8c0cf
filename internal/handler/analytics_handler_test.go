package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/domain"
)

func TestGetActiveUsers(t *testing.T) {
	stub := &stubAnalyticsService{active: 7}
	h := NewAnalyticsHandler(stub, testLogger())

	r := httptest.NewRequest("GET", "/api/analytics/active", nil)
	w := httptest.NewRecorder()
	h.GetActiveUsers(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ActiveUsersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 7, response.ActiveUsers)
}

func TestGetSummary_DefaultDays(t *testing.T) {
	stub := &stubAnalyticsService{summary: &domain.AnalyticsSummary{
		TotalViews:  42,
		TotalUnique: 17,
		ActiveUsers: 3,
		DeviceData:  []domain.BreakdownEntry{{Name: "Mobile", Value: 30}, {Name: "Desktop", Value: 12}},
		GeoData:     []domain.BreakdownEntry{{Name: "India", Value: 25}, {Name: "USA", Value: 17}},
	}}
	h := NewAnalyticsHandler(stub, testLogger())

	r := httptest.NewRequest("GET", "/api/analytics", nil)
	w := httptest.NewRecorder()
	h.GetSummary(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, stub.lastDays)

	var response domain.AnalyticsSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(42), response.TotalViews)
	assert.Equal(t, int64(17), response.TotalUnique)
	assert.Equal(t, 3, response.ActiveUsers)
	assert.Len(t, response.DeviceData, 2)
	assert.Len(t, response.GeoData, 2)
}

func TestGetSummary_DaysParam(t *testing.T) {
	stub := &stubAnalyticsService{summary: &domain.AnalyticsSummary{}}
	h := NewAnalyticsHandler(stub, testLogger())

	r := httptest.NewRequest("GET", "/api/analytics?days=7", nil)
	w := httptest.NewRecorder()
	h.GetSummary(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, stub.lastDays)
}

func TestGetSummary_ClampsLargeRange(t *testing.T) {
	stub := &stubAnalyticsService{summary: &domain.AnalyticsSummary{}}
	h := NewAnalyticsHandler(stub, testLogger())

	r := httptest.NewRequest("GET", "/api/analytics?days=10000", nil)
	w := httptest.NewRecorder()
	h.GetSummary(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, maxSummaryDays, stub.lastDays)
}

func TestGetSummary_InvalidDays(t *testing.T) {
	tests := []string{"abc", "0", "-5", "1.5"}

	for _, days := range tests {
		t.Run(days, func(t *testing.T) {
			stub := &stubAnalyticsService{summary: &domain.AnalyticsSummary{}}
			h := NewAnalyticsHandler(stub, testLogger())

			r := httptest.NewRequest("GET", "/api/analytics?days="+days, nil)
			w := httptest.NewRecorder()
			h.GetSummary(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, stub.lastDays)
		})
	}
}

func TestGetSummary_StoreErrorPropagates(t *testing.T) {
	stub := &stubAnalyticsService{summaryErr: fmt.Errorf("connection refused")}
	h := NewAnalyticsHandler(stub, testLogger())

	r := httptest.NewRequest("GET", "/api/analytics", nil)
	w := httptest.NewRecorder()
	h.GetSummary(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
