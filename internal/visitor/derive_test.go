package visitor

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/domain"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "203.0.113.7:51234",
			expected:   "203.0.113.7",
		},
		{
			name:       "cloudflare header wins",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.9", "X-Forwarded-For": "192.0.2.1"},
			expected:   "198.51.100.9",
		},
		{
			name:       "forwarded-for takes first hop",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2, 10.0.0.3"},
			expected:   "203.0.113.7",
		},
		{
			name:       "real ip fallback",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "203.0.113.99"},
			expected:   "203.0.113.99",
		},
		{
			name:       "unparseable remote addr passes through",
			remoteAddr: "bogus",
			expected:   "bogus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/track/view", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, ClientIP(r))
		})
	}
}

func TestDeviceFrom(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		expected  domain.DeviceCategory
	}{
		{
			name:      "iphone is mobile",
			userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148",
			expected:  domain.DeviceMobile,
		},
		{
			name:      "android phone is mobile",
			userAgent: "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Mobile Safari/537.36",
			expected:  domain.DeviceMobile,
		},
		{
			name:      "ipad is tablet",
			userAgent: "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15",
			expected:  domain.DeviceTablet,
		},
		{
			name:      "android tablet beats mobile marker",
			userAgent: "Mozilla/5.0 (Linux; Android 13; SM-X710 Tablet) AppleWebKit/537.36 Mobile Safari/537.36",
			expected:  domain.DeviceTablet,
		},
		{
			name:      "desktop chrome",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/126.0 Safari/537.36",
			expected:  domain.DeviceDesktop,
		},
		{
			name:      "empty ua defaults to desktop",
			userAgent: "",
			expected:  domain.DeviceDesktop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeviceFrom(tt.userAgent))
		})
	}
}

func TestCountryFrom(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{
			name:     "no header means no country",
			expected: "",
		},
		{
			name:     "known code maps to display name",
			headers:  map[string]string{"CF-IPCountry": "IN"},
			expected: "India",
		},
		{
			name:     "vercel header works too",
			headers:  map[string]string{"X-Vercel-IP-Country": "us"},
			expected: "USA",
		},
		{
			name:     "unknown marker is treated as absent",
			headers:  map[string]string{"CF-IPCountry": "XX"},
			expected: "",
		},
		{
			name:     "unmapped code passes through",
			headers:  map[string]string{"CF-IPCountry": "AQ"},
			expected: "AQ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/track/view", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, CountryFrom(r))
		})
	}
}
