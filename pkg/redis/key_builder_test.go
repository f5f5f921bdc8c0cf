package redis

import (
	"testing"
)

func TestKeyBuilder_Environment_Prefixes(t *testing.T) {
	tests := []struct {
		name           string
		environment    string
		expectedPrefix string
	}{
		{
			name:           "Production environment should use prod prefix",
			environment:    "production",
			expectedPrefix: "prod",
		},
		{
			name:           "Development environment should use staging prefix",
			environment:    "development",
			expectedPrefix: "staging",
		},
		{
			name:           "Staging environment should use staging prefix",
			environment:    "staging",
			expectedPrefix: "staging",
		},
		{
			name:           "Unknown environment should default to prod prefix",
			environment:    "unknown",
			expectedPrefix: "prod",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			if kb.GetPrefix() != tt.expectedPrefix {
				t.Errorf("NewKeyBuilder(%s).GetPrefix() = %s, want %s",
					tt.environment, kb.GetPrefix(), tt.expectedPrefix)
			}
		})
	}
}

func TestKeyBuilder_KeyGeneration(t *testing.T) {
	kb := NewKeyBuilder("production")

	tests := []struct {
		name     string
		method   func() string
		expected string
	}{
		{
			name:     "AnalyticsSummary key",
			method:   func() string { return kb.KeyAnalyticsSummary(30) },
			expected: "prod:analytics:summary:30",
		},
		{
			name:     "TrackRateLimit key",
			method:   func() string { return kb.KeyTrackRateLimit("ab12cd34") },
			expected: "prod:analytics:ratelimit:ab12cd34",
		},
		{
			name:     "BuildKey passthrough",
			method:   func() string { return kb.BuildKey("custom:key") },
			expected: "prod:custom:key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.method(); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestKeyBuilder_StagingPrefix(t *testing.T) {
	kb := NewKeyBuilder("staging")

	if got := kb.KeyAnalyticsSummary(7); got != "staging:analytics:summary:7" {
		t.Errorf("got %s, want staging:analytics:summary:7", got)
	}
}
