package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myDecisionCoach/app/echo-server/metrics"
	"myDecisionCoach/app/echo-server/router"
	"myDecisionCoach/business/bandit"
	"myDecisionCoach/business/decision"
	"myDecisionCoach/business/emotion"
	"myDecisionCoach/business/history"
	"myDecisionCoach/internal/middleware"
	psqlRepo "myDecisionCoach/internal/repository/postgres"
	redisRepo "myDecisionCoach/internal/repository/redis"
	"myDecisionCoach/internal/rest"
	"myDecisionCoach/pkg/config"
	"myDecisionCoach/pkg/database"
	redisDB "myDecisionCoach/pkg/database/redis"
	"myDecisionCoach/pkg/logger"
	"myDecisionCoach/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var logOutputs []string
	if cfg.App.LogOutput != "" {
		logOutputs = []string{cfg.App.LogOutput}
	}
	if err := logger.Init(cfg.App.Environment, logOutputs...); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("Starting Decision Coach", "version", cfg.App.Version)

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		defer database.ClosePostgres(db)

		if err := database.Migrate(db); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
		logger.Info("Database connected successfully")
	}

	// Init arm store
	var armStore bandit.ArmStore
	switch cfg.Bandit.Store {
	case config.StorePostgres:
		armStore = psqlRepo.NewArmRepository(db)
	case config.StoreRedis:
		var client *goredis.Client
		client, err = redisDB.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		defer redisDB.CloseRedisClient(client)
		armStore = redisRepo.NewArmRepository(client, cfg.Redis.KeyPrefix)
	default:
		armStore = bandit.NewMemoryArmStore()
	}
	logger.Info("Arm store ready", "backend", cfg.Bandit.Store)

	// Init emotion lexicon
	lexicon := emotion.DefaultLexicon()
	if cfg.Emotion.LexiconPath != "" {
		lexicon, err = emotion.LoadLexicon(cfg.Emotion.LexiconPath)
		if err != nil {
			logger.Fatal("Failed to load emotion lexicon", "path", cfg.Emotion.LexiconPath, "error", err)
		}
	}

	// Init service
	banditService := bandit.NewBanditService(armStore, bandit.NewRandSource(cfg.Bandit.Seed), bandit.Config{
		AssumedSatisfaction: cfg.Bandit.AssumedSatisfaction,
		SuccessThreshold:    cfg.Bandit.SuccessThreshold,
		AssumeSatisfaction:  cfg.Bandit.AssumeSatisfaction,
		DefaultRating:       bandit.DefaultConfig().DefaultRating,
	})
	decisionService := decision.NewDecisionService(
		emotion.NewAnalyzer(lexicon),
		banditService,
		bandit.NewRandSource(cfg.Bandit.Seed+1),
	)

	var decisionRepo history.DecisionRepository
	if db != nil {
		decisionRepo = psqlRepo.NewDecisionRepository(db)
	}
	historyService := history.NewHistoryService(decisionService, decisionRepo, cfg.Bandit.PerUserArms)

	// Init handler
	decisionHandler := rest.NewDecisionHandler(decisionService, historyService, cfg.Server.RequestTimeout)
	armHandler := rest.NewArmHandler(banditService, cfg.Server.RequestTimeout)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID},
	}))

	metrics.Register(e)

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	optionalAuth := middleware.OptionalAuth()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupDecisionRoutes(api, decisionHandler, authRequired, optionalAuth)
	router.SetupAdminRoutes(api, armHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
