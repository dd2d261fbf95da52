package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/meeting-insights/docs"
	"github.com/johnquangdev/meeting-insights/internal/adapter/handler"
	"github.com/johnquangdev/meeting-insights/internal/adapter/repository"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/meeting-insights/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-insights/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-insights/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-insights/internal/usecase/share"
	pkgai "github.com/johnquangdev/meeting-insights/pkg/ai"
	"github.com/johnquangdev/meeting-insights/pkg/config"
	"github.com/johnquangdev/meeting-insights/pkg/jwt"
	pkgvalidator "github.com/johnquangdev/meeting-insights/pkg/validator"
)

// @title           Meeting Insights API
// @version         1.0
// @description     Upload meeting recordings, transcribe and summarize them, and share the results

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Server.Environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	logger.Info("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via cmd/migrate.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			return errors.New("DB_AUTO_MIGRATE is enabled in production; manage schema with cmd/migrate")
		}
		if err := database.AutoMigrate(db, logger); err != nil {
			return fmt.Errorf("failed to run AutoMigrate: %w", err)
		}
	} else {
		logger.Info("🔄 Skipping GORM AutoMigrate; use cmd/migrate for schema migrations")
	}

	// Initialize object storage
	logger.Info("🗄️  Connecting to object storage...", zap.String("endpoint", cfg.Storage.Endpoint))
	recordings, err := storage.NewMinIOClient(ctx, &cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %w", err)
	}

	// Initialize share link store
	store, closeStore, err := newShareStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Initialize repositories
	meetingRepo := repository.NewMeetingRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	actionItemRepo := repository.NewActionItemRepository(db)

	// Initialize AI providers
	logger.Info("🤖 Initializing AI providers...",
		zap.String("transcription_provider", cfg.Pipeline.TranscriptionProvider),
		zap.String("summary_model", cfg.Groq.SummaryModel),
	)
	policy := pkgai.DefaultRetryPolicy()
	policy.MaxElapsedTime = cfg.Pipeline.RetryMaxElapsed
	groqClient := pkgai.NewGroqClient(&cfg.Groq, pkgai.WithRetryPolicy(policy))

	var transcriber pkgai.Transcriber = groqClient
	if strings.EqualFold(cfg.Pipeline.TranscriptionProvider, config.ProviderAssemblyAI) {
		transcriber = pkgai.NewAssemblyAITranscriber(&cfg.AssemblyAI, cfg.Groq.Language, policy)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pipelineMetrics := metrics.NewPipelineMetrics(registry)

	// Initialize services
	meetingService := meeting.NewMeetingService(
		meetingRepo,
		transcriptRepo,
		summaryRepo,
		actionItemRepo,
		recordings,
		cfg.Server.MaxUploadMB<<20,
		logger.Named("meeting"),
	)

	pipelineService := pipeline.NewService(pipeline.Dependencies{
		Meetings:    meetingRepo,
		Transcripts: transcriptRepo,
		Summaries:   summaryRepo,
		ActionItems: actionItemRepo,
		Audio:       recordings,
		Transcriber: transcriber,
		Summarizer:  groqClient,
		Metrics:     pipelineMetrics,
	}, pipeline.Config{
		TranscriptionTimeout: cfg.Pipeline.TranscriptionTimeout,
		SummarizationTimeout: cfg.Pipeline.SummarizationTimeout,
		LanguageHint:         cfg.Groq.Language,
	}, logger)

	shareService := share.NewShareService(store, meetingService, share.Config{
		AppURL:            cfg.Server.AppURL,
		DefaultExpiryDays: cfg.Share.DefaultExpiryDays,
		MaxExpiryDays:     cfg.Share.MaxExpiryDays,
	}, logger.Named("share"))

	// Stuck-run watchdog
	if cfg.Pipeline.WatchdogEnabled {
		watchdog := pipeline.NewWatchdog(meetingRepo, pipeline.WatchdogConfig{
			Interval:   cfg.Pipeline.WatchdogInterval,
			StaleAfter: cfg.Pipeline.StaleAfter,
		}, pipelineMetrics, logger)
		watchdog.Start(ctx)
		defer watchdog.Stop()
	}

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = pkgvalidator.New()

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Server.MaxUploadMB+1)))

	opts := []handler.RouterOption{
		handler.WithMetrics(registry),
		handler.WithHealthCheck("database", func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		handler.WithHealthCheck("storage", recordings.Ping),
	}
	if cfg.Auth.JWTSecret != "" {
		jwtManager := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
		opts = append(opts, handler.WithAuth(httpmw.EchoAuth(jwtManager, logger.Named("auth"))))
		logger.Info("🔑 Bearer token authentication enabled")
	} else {
		logger.Warn("⚠️  AUTH_JWT_SECRET is empty; API routes are unauthenticated")
	}

	router := handler.NewRouter(
		cfg.Server.Environment,
		handler.NewMeetingHandler(meetingService, logger),
		handler.NewPipelineHandler(pipelineService, logger),
		handler.NewShareHandler(shareService, logger),
		opts...,
	)
	router.Setup(e)

	// Start server
	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	}

	logger.Info("🛑 Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("✅ Server stopped gracefully")
	return nil
}

// newShareStore returns the Redis store when Redis is enabled, otherwise
// an in-process store whose links do not survive a restart
func newShareStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cache.Store, func(), error) {
	if !cfg.Redis.Enabled {
		logger.Warn("⚠️  Redis disabled; share links are kept in memory")
		mem := cache.NewMemoryStore()
		return mem, func() { _ = mem.Close() }, nil
	}

	logger.Info("📦 Connecting to Redis...", zap.String("addr", cfg.Redis.Addr()))
	client, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return cache.NewRedisStore(client, "meeting-insights:"), func() { _ = client.Close() }, nil
}
