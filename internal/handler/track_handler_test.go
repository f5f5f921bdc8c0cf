package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/domain"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/pkg/logger"
)

// stubAnalyticsService records calls and serves canned summaries.
type stubAnalyticsService struct {
	recorded   []recordedView
	active     int
	summary    *domain.AnalyticsSummary
	summaryErr error
	lastDays   int
}

type recordedView struct {
	visitorID string
	device    domain.DeviceCategory
	country   string
}

func (s *stubAnalyticsService) Start(ctx context.Context) error { return nil }
func (s *stubAnalyticsService) Stop(ctx context.Context) error  { return nil }

func (s *stubAnalyticsService) RecordView(ctx context.Context, visitorID string, device domain.DeviceCategory, country string) {
	s.recorded = append(s.recorded, recordedView{visitorID: visitorID, device: device, country: country})
}

func (s *stubAnalyticsService) ActiveVisitors() int { return s.active }

func (s *stubAnalyticsService) Summarize(ctx context.Context, days int) (*domain.AnalyticsSummary, error) {
	s.lastDays = days
	if s.summaryErr != nil {
		return nil, s.summaryErr
	}
	return s.summary, nil
}

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func TestRecordView_AlwaysSucceeds(t *testing.T) {
	stub := &stubAnalyticsService{}
	h := NewTrackHandler(stub, testLogger())

	r := httptest.NewRequest("POST", "/api/track/view", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	r.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0) Mobile/15E148")
	r.Header.Set("CF-IPCountry", "IN")
	w := httptest.NewRecorder()

	h.RecordView(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var response TrackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)

	require.Len(t, stub.recorded, 1)
	assert.Equal(t, "203.0.113.7", stub.recorded[0].visitorID)
	assert.Equal(t, domain.DeviceMobile, stub.recorded[0].device)
	assert.Equal(t, "India", stub.recorded[0].country)
}

func TestRecordView_NoDerivableInputsStillSucceeds(t *testing.T) {
	stub := &stubAnalyticsService{}
	h := NewTrackHandler(stub, testLogger())

	// No UA, no country header: desktop default, no country
	r := httptest.NewRequest("POST", "/api/track/view", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	w := httptest.NewRecorder()

	h.RecordView(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, stub.recorded, 1)
	assert.Equal(t, domain.DeviceDesktop, stub.recorded[0].device)
	assert.Equal(t, "", stub.recorded[0].country)
}
