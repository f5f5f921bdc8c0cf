package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/config"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/container"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/handler"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/middleware"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/repository"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/service"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/pkg/database"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/pkg/logger"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	db               *database.PostgresDB
	redisClient      *redis.Client
	analyticsService service.AnalyticsService
	server           *http.Server
	log              *logger.Logger
	mu               sync.Mutex
	closed           bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		r.log.Info("Shutting down HTTP server...")
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	// Stop the analytics service (drains queued rollup writes)
	if r.analyticsService != nil {
		r.log.Info("Stopping analytics service...")
		if err := r.analyticsService.Stop(ctx); err != nil {
			r.log.WithError(err).Error("Failed to stop analytics service")
			errs = append(errs, fmt.Errorf("analytics service shutdown: %w", err))
		} else {
			r.log.Info("Analytics service stopped successfully")
		}
	}

	// Close Redis connection
	if r.redisClient != nil {
		r.log.Info("Closing Redis connection...")
		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errs = append(errs, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed successfully")
		}
	}

	// Close database connection pool
	if r.db != nil {
		r.log.Info("Closing database connection pool...")
		r.db.Close()
		r.log.Info("Database connection pool closed successfully")
	}

	if len(errs) > 0 {
		r.log.WithField("error_count", len(errs)).Error("Cleanup completed with errors")
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errs), errs)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting portfolio analytics server")

	// Create dependency injection container
	container, err := container.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	// Initialize database connection
	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Initialize the analytics collector
	rollupRepo := repository.NewRollupRepository(db)
	analyticsService := service.NewAnalyticsService(
		rollupRepo,
		container.GetRedisClient(),
		container.Presence,
		container.Dedup,
		log,
		cfg.TrackRateLimit,
	)

	if err := analyticsService.Start(ctx); err != nil {
		log.WithError(err).Fatal("Failed to start analytics service")
	}

	// Setup router
	router := setupRouter(container, analyticsService)

	// Create HTTP server
	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	// Create resources manager for cleanup
	resources := &Resources{
		db:               db,
		redisClient:      container.GetRedisClient(),
		analyticsService: analyticsService,
		server:           server,
		log:              log,
	}

	// Setup graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	log.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(container *container.Container, analyticsService service.AnalyticsService) *chi.Mux {
	cfg := container.GetConfig()
	log := container.GetLogger()

	r := chi.NewRouter()

	// Setup CORS middleware
	corsConfig := &middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	// Setup middlewares
	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Create handlers
	healthHandler := handler.NewHealthHandler(container)
	trackHandler := handler.NewTrackHandler(analyticsService, log)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, log)

	// Health check (no auth required)
	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		// Public tracking endpoint, behind a process-wide throttle
		r.Group(func(r chi.Router) {
			r.Use(middleware.Throttle(100, 200, log))
			trackHandler.RegisterRoutes(r)
		})

		// Dashboard queries (require admin token)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.AdminJWTSecret, log))
			analyticsHandler.RegisterRoutes(r)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured successfully")
	return r
}
