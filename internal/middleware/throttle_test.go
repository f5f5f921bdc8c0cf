package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/pkg/logger"
)

func TestThrottle_AllowsWithinBurst(t *testing.T) {
	log := &logger.Logger{Logger: zap.NewNop()}
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	h := Throttle(100, 5, log)(next)

	for i := 0; i < 5; i++ {
		r := httptest.NewRequest("POST", "/api/track/view", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 5, calls)
}

func TestThrottle_RejectsBeyondBurst(t *testing.T) {
	log := &logger.Logger{Logger: zap.NewNop()}
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	// Refill is far too slow to matter within the test
	h := Throttle(0.001, 1, log)(next)

	r1 := httptest.NewRequest("POST", "/api/track/view", nil)
	w1 := httptest.NewRecorder()
	h.ServeHTTP(w1, r1)
	assert.Equal(t, http.StatusOK, w1.Code)

	r2 := httptest.NewRequest("POST", "/api/track/view", nil)
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, r2)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
	assert.NotEmpty(t, w2.Header().Get("Retry-After"))

	assert.Equal(t, 1, calls)
}
