package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/domy415/singapore-property-hub-sub003/pkg/config"
	"github.com/domy415/singapore-property-hub-sub003/pkg/database"
	"github.com/domy415/singapore-property-hub-sub003/pkg/handlers"
	"github.com/domy415/singapore-property-hub-sub003/pkg/llm"
	"github.com/domy415/singapore-property-hub-sub003/pkg/logging"
	"github.com/domy415/singapore-property-hub-sub003/pkg/repositories"
	"github.com/domy415/singapore-property-hub-sub003/pkg/retry"
	"github.com/domy415/singapore-property-hub-sub003/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("baseUrl", cfg.BaseURL),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("llmEndpoint", cfg.LLM.Endpoint),
		zap.String("llmModel", cfg.LLM.Model))

	ctx := context.Background()

	db, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (*database.DB, error) {
		return database.NewConnection(ctx, &database.Config{
			URL:            cfg.Database.ConnectionString(),
			MaxConnections: cfg.Database.MaxConnections,
		})
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := runMigrations(cfg, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisClient == nil {
		logger.Info("Redis not configured, topic cache disabled")
	}

	llmClient, err := llm.NewClient(&llm.Config{
		Endpoint: cfg.LLM.Endpoint,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	articleRepo := repositories.NewArticleRepository(db)

	imageService, err := services.NewImageAssignmentService()
	if err != nil {
		logger.Fatal("Failed to load image pool table", zap.Error(err))
	}

	calendar := services.NewContentCalendar(articleRepo, redisClient, logger)
	drafting := services.NewDraftingService(llmClient, cfg.LLM.Temperature, cfg.LLM.Timeout(), logger)
	scoring := services.NewPropertyScoringService(services.DefaultScoringWeights())
	verifier := services.NewFactVerificationService(llmClient, cfg.Pipeline.PublishThreshold, cfg.LLM.Timeout(), logger)
	notifier := services.NewPublishNotifier(&cfg.Publisher, cfg.BaseURL, logger)

	orchestrator := services.NewContentOrchestrator(
		calendar, drafting, scoring, verifier, imageService,
		articleRepo, notifier, cfg.Pipeline, logger,
	)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewContentHandler(orchestrator, logger).RegisterRoutes(mux)

	server := &http.Server{
		Addr:         cfg.BindAddr + ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // generation runs include multiple LLM calls
	}

	go func() {
		logger.Info("Starting property-content-engine",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
}

// runMigrations applies pending migrations through database/sql as required
// by golang-migrate.
func runMigrations(cfg *config.Config, logger *zap.Logger) error {
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger)
}
