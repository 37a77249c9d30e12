package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/maelyb/eclat/eclat-backend/internal/config"
	"github.com/maelyb/eclat/eclat-backend/internal/domain"
	"github.com/maelyb/eclat/eclat-backend/internal/handler"
	"github.com/maelyb/eclat/eclat-backend/internal/middleware"
	"github.com/maelyb/eclat/eclat-backend/internal/repository/postgres"
	"github.com/maelyb/eclat/eclat-backend/internal/repository/storage"
	"github.com/maelyb/eclat/eclat-backend/internal/service"
	"github.com/maelyb/eclat/eclat-backend/internal/websocket"
)

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

	// Run schema migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	prestationRepo := postgres.NewPrestationRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)

	// Receipt storage is optional: without S3 credentials the API runs with
	// receipt endpoints disabled
	var receiptStorage storage.ReceiptRepository
	if cfg.ReceiptStorageEnabled() {
		s3Repo, err := storage.NewS3ReceiptRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize receipt storage")
		}
		receiptStorage = s3Repo
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Receipt storage enabled")
	} else {
		log.Warn().Msg("Receipt storage not configured, receipt endpoints disabled")
	}

	// WebSocket hub for live updates
	hub := websocket.NewHub()

	// Initialize services
	categories := domain.DefaultCategorySet()
	prestationService := service.NewPrestationService(prestationRepo, categories, hub)
	expenseService := service.NewExpenseService(expenseRepo, categories, hub)
	receiptService := service.NewReceiptService(expenseRepo, receiptStorage, hub)
	windowService := service.NewWindowService()
	aggregationService := service.NewAggregationService(categories)
	seriesService := service.NewSeriesService(categories)
	dashboardService := service.NewDashboardService(prestationRepo, expenseRepo, windowService, aggregationService, seriesService)
	calendarService := service.NewCalendarService(prestationRepo, expenseRepo)

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, cfg.AllowedEmails)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	// WebSocket connections authenticate with the same Auth0 tokens
	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, cfg.AllowedEmails)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create WebSocket JWT validator")
	}

	// Per-owner rate limiting
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// Initialize handlers
	prestationHandler := handler.NewPrestationHandler(prestationService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	receiptHandler := handler.NewReceiptHandler(receiptService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	calendarHandler := handler.NewCalendarHandler(calendarService)
	categoryHandler := handler.NewCategoryHandler(categories)
	websocketHandler := handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// WebSocket endpoint (token authenticated via query parameter)
	e.GET("/ws", websocketHandler.HandleWS)

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, middleware.RateLimitMiddleware(rateLimiter), prestationHandler, expenseHandler, receiptHandler, dashboardHandler, calendarHandler, categoryHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
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
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
