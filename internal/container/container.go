package container

import (
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/config"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/tracker"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/pkg/logger"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client
	Presence    *tracker.PresenceTracker
	Dedup       *tracker.DailyDedup
}

// New creates a new dependency injection container. The in-memory trackers
// live here for the whole process; handlers and services receive them by
// reference instead of reaching for globals.
func New(cfg *config.Config, logger *logger.Logger) (*Container, error) {
	// Initialize Redis client if Redis URL is configured
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, logger.Logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			logger.Info("Redis client initialized successfully")
		}
	} else {
		logger.Info("Redis URL not configured, proceeding without caching")
	}

	return &Container{
		Config:      cfg,
		Logger:      logger,
		RedisClient: redisClient,
		Presence:    tracker.NewPresenceTracker(),
		Dedup:       tracker.NewDailyDedup(),
	}, nil
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}
