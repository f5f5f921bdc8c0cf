package redis

import "fmt"

// Key patterns for the analytics collector
const (
	KeyAnalyticsSummary = "analytics:summary:%d"      // analytics:summary:{days}
	KeyTrackRateLimit   = "analytics:ratelimit:%s"    // analytics:ratelimit:{ip_hash}
)

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyAnalyticsSummary returns the cache key for a summary over the given
// number of days
func (kb *KeyBuilder) KeyAnalyticsSummary(days int) string {
	return kb.BuildKey(fmt.Sprintf(KeyAnalyticsSummary, days))
}

// KeyTrackRateLimit returns the rate limit counter key for a hashed IP
func (kb *KeyBuilder) KeyTrackRateLimit(ipHash string) string {
	return kb.BuildKey(fmt.Sprintf(KeyTrackRateLimit, ipHash))
}
