package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"alcyxob/lifetrack/internal/api"
	"alcyxob/lifetrack/internal/config"
	"alcyxob/lifetrack/internal/enrichment"
	"alcyxob/lifetrack/internal/logger"
	"alcyxob/lifetrack/internal/monitoring"
	"alcyxob/lifetrack/internal/repository"
	"alcyxob/lifetrack/internal/repository/mongo"
	"alcyxob/lifetrack/internal/repository/sqldb"
	"alcyxob/lifetrack/internal/service"
	"alcyxob/lifetrack/internal/storage"
	"alcyxob/lifetrack/internal/tracing"
)

// @title LifeTrack API
// @version 1.0
// @description Diet, workout and work-session tracking with daily dashboards.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "FATAL: jwt.secret (JWT_SECRET) must be set")
		os.Exit(1)
	}

	log, level := logger.New(cfg.Log, cfg.Server.Mode)
	defer func() { _ = log.Sync() }()
	log.Info("Starting LifeTrack server", zap.String("db_driver", cfg.Database.Driver), zap.String("mode", cfg.Server.Mode))

	// --- Tracing & metrics ---
	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			log.Warn("Tracing disabled: could not create exporter", zap.Error(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = tp.Shutdown(ctx)
			}()
		}
	}
	monitoring.Init()

	// --- Record store ---
	store, err := openStore(cfg.Database, log)
	if err != nil {
		log.Fatal("Could not open record store", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			log.Error("Failed to close record store", zap.Error(err))
		}
	}()

	// --- Initialize Storage ---
	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	fileStorage, err := storage.NewS3Storage(initCtx, cfg.S3, log)
	if err != nil {
		cancelInit()
		log.Fatal("Failed to initialize S3 storage", zap.Error(err))
	}

	// --- Enrichment providers ---
	nutrition := newNutritionProvider(initCtx, cfg, log)
	analyzer := newReportAnalyzer(cfg.Report)
	cancelInit()

	// --- Initialize Services ---
	fetchTimeout := service.NewFetchTimeout(cfg.Tracker.FetchTimeout)
	profileService := service.NewProfileService(store.Profiles)
	services := api.Services{
		Auth:    service.NewAuthService(store.Users, store.Profiles, cfg.JWT.Secret, cfg.JWT.Expiration, log),
		Profile: profileService,
		Entry:   service.NewEntryService(store, fileStorage, cfg.S3.PresignExpiry, log),
		Goal:    service.NewGoalService(store.Goals),
		Dashboard: service.NewDashboardService(store, service.DashboardSettings{
			StreakWindowDays: cfg.Tracker.StreakWindowDays,
			ChartDays:        cfg.Tracker.ChartDays,
		}, fetchTimeout, log),
		Calendar:  service.NewCalendarService(store, fetchTimeout, log),
		Nutrition: service.NewNutritionService(nutrition),
		Report:    service.NewReportService(store.Reports, fileStorage, analyzer, profileService, cfg.S3.PresignExpiry, log),
	}

	// Log level and fetch timeout follow config file edits without a restart.
	config.Watch(func(next config.Config, err error) {
		if err != nil {
			log.Warn("Ignoring unreadable config change", zap.Error(err))
			return
		}
		level.SetLevel(logger.ParseLevel(next.Log.Level))
		fetchTimeout.Set(next.Tracker.FetchTimeout)
		log.Info("Config reloaded", zap.String("log_level", next.Log.Level), zap.Duration("fetch_timeout", next.Tracker.FetchTimeout))
	})

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())

	stopLimiter := make(chan struct{})
	defer close(stopLimiter)
	router.Use(api.RequestLogger(log))
	router.Use(api.CORS(cfg.Server.AllowedOrigins))
	router.Use(api.Secure())
	router.Use(api.RateLimiter(cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window, stopLimiter))
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}
	router.Use(monitoring.MetricsMiddleware())

	api.SetupRoutes(router, cfg.JWT.Secret, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // report analysis can take a while
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exiting.")
}

// openStore connects the configured backend and returns its repositories.
func openStore(cfg config.DatabaseConfig, log *zap.Logger) (*repository.Store, error) {
	switch cfg.Driver {
	case "mongo", "":
		client, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		db := client.Database(cfg.Name)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := mongo.EnsureIndexes(ctx, db); err != nil {
				log.Error("Index creation failed", zap.Error(err))
				return
			}
			log.Info("Index creation process completed.")
		}()
		return mongo.NewStore(client, db), nil
	case "postgres", "sqlite":
		db, err := sqldb.Open(cfg.Driver, cfg.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
		}
		return sqldb.NewStore(db), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func newNutritionProvider(ctx context.Context, cfg config.Config, log *zap.Logger) enrichment.NutritionProvider {
	mock := enrichment.MockNutritionProvider{}
	if cfg.Nutrition.Provider != "nutritionix" {
		return mock
	}

	var provider enrichment.NutritionProvider = enrichment.NewNutritionixClient(
		cfg.Nutrition.Endpoint, cfg.Nutrition.AppID, cfg.Nutrition.AppKey, cfg.Nutrition.Timeout)
	if cfg.Redis.Enabled {
		rdb, err := enrichment.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("Redis unavailable, nutrition lookups are not cached", zap.Error(err))
		} else {
			provider = enrichment.NewCachedNutritionProvider(provider, rdb, cfg.Redis.TTL, log)
		}
	}
	return enrichment.NewFallbackNutritionProvider(provider, mock, log)
}

func newReportAnalyzer(cfg config.ReportConfig) enrichment.ReportAnalyzer {
	if cfg.Analyzer == "http" && cfg.Endpoint != "" {
		return enrichment.NewHTTPAnalyzer(cfg.Endpoint, cfg.Timeout)
	}
	return enrichment.MockAnalyzer{Delay: cfg.MockDelay}
}
