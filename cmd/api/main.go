package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/spendboard/internal/config"
	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/handler"
	"github.com/dafibh/spendboard/internal/insight"
	"github.com/dafibh/spendboard/internal/middleware"
	"github.com/dafibh/spendboard/internal/repository/memory"
	"github.com/dafibh/spendboard/internal/repository/postgres"
	"github.com/dafibh/spendboard/internal/repository/storage"
	"github.com/dafibh/spendboard/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Spendboard API
// @version 1.0
// @description Personal expense tracking with categories, recurring monthly budgets and spending analytics.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize repositories
	repos, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to open store")
	}
	defer closeStore()

	// Optional integrations
	var generator domain.InsightGenerator
	if cfg.Insights.Enabled() {
		generator = insight.NewClient(insight.Config{
			APIKey:  cfg.Insights.APIKey,
			BaseURL: cfg.Insights.BaseURL,
			Model:   cfg.Insights.Model,
			Timeout: cfg.Insights.Timeout,
		}, log.Logger)
		log.Info().Str("model", cfg.Insights.Model).Msg("Insights enabled")
	}

	var reportStorage domain.ReportStorage
	if cfg.S3.Enabled() {
		s3Repo, err := storage.NewS3ReportRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize report storage")
		}
		reportStorage = s3Repo
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Report export enabled")
	}

	// Initialize services
	categoryService := service.NewCategoryService(repos.categories)
	expenseService := service.NewExpenseService(repos.expenses)
	budgetService := service.NewRecurringBudgetService(repos.budgets)
	dashboardService := service.NewDashboardService(repos.categories, repos.expenses, repos.budgets, cfg.RecentTransactions)
	analyticsService := service.NewAnalyticsService(repos.categories, repos.expenses, repos.budgets, cfg.TrendMonths)
	insightService := service.NewInsightService(repos.categories, repos.expenses, repos.budgets, generator, cfg.Insights.CurrencySymbol, log.Logger)
	reportService := service.NewReportService(repos.categories, repos.expenses, repos.budgets, reportStorage, log.Logger)

	// Initialize handlers
	categoryHandler := handler.NewCategoryHandler(categoryService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	insightHandler := handler.NewInsightHandler(insightService)
	reportHandler := handler.NewReportHandler(reportService)

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(middleware.RequestLogger())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Register API routes
	handler.RegisterRoutes(e, rateLimiter, categoryHandler, expenseHandler, budgetHandler, dashboardHandler, analyticsHandler, insightHandler, reportHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

type repositories struct {
	categories domain.CategoryRepository
	expenses   domain.ExpenseRepository
	budgets    domain.RecurringBudgetRepository
}

// openStore builds the repositories for the configured store driver
func openStore(ctx context.Context, cfg *config.Config) (repositories, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		store := memory.NewStore()
		log.Info().Msg("Using in-memory store")
		return repositories{
			categories: store.Categories(),
			expenses:   store.Expenses(),
			budgets:    store.RecurringBudgets(),
		}, func() {}, nil
	}

	// Connect to database
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return repositories{}, nil, err
	}

	// Verify database connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return repositories{}, nil, err
	}
	log.Info().Msg("Connected to database")

	if err := postgres.RunMigrations(pool); err != nil {
		pool.Close()
		return repositories{}, nil, err
	}

	return repositories{
		categories: postgres.NewCategoryRepository(pool),
		expenses:   postgres.NewExpenseRepository(pool),
		budgets:    postgres.NewRecurringBudgetRepository(pool),
	}, pool.Close, nil
}
