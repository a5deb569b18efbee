package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sparklweb1988/microfnance/internal/config"
	"github.com/sparklweb1988/microfnance/internal/database"
	"github.com/sparklweb1988/microfnance/internal/handler"
	"github.com/sparklweb1988/microfnance/internal/middleware"
	"github.com/sparklweb1988/microfnance/internal/repository/postgres"
	"github.com/sparklweb1988/microfnance/internal/service"
	"github.com/sparklweb1988/microfnance/internal/websocket"
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

	// Connect to database
	pool, err := database.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	log.Info().Msg("Connected to database")

	// Apply schema migrations
	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize repositories
	orgRepo := postgres.NewOrganizationRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	officerRepo := postgres.NewOfficerRepository(pool)
	borrowerRepo := postgres.NewBorrowerRepository(pool)
	loanRepo := postgres.NewLoanRepository(pool)
	repaymentRepo := postgres.NewRepaymentRepository(pool)
	collectionRepo := postgres.NewCollectionRepository(pool)
	postingRepo := postgres.NewPostingRepository(pool)
	savingRepo := postgres.NewSavingRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)

	// WebSocket hub doubles as the event publisher
	hub := websocket.NewHub()

	// Initialize services
	loanService := service.NewLoanService(loanRepo, borrowerRepo, branchRepo, officerRepo, hub)
	repaymentService := service.NewRepaymentService(pool, loanRepo, repaymentRepo, hub)
	borrowerService := service.NewBorrowerService(borrowerRepo, loanRepo, branchRepo)
	branchService := service.NewBranchService(branchRepo, officerRepo, orgRepo)
	collectionService := service.NewCollectionService(pool, collectionRepo, loanRepo, repaymentRepo, officerRepo, hub)
	postingService := service.NewPostingService(postingRepo, loanRepo, officerRepo)
	savingService := service.NewSavingService(pool, savingRepo, borrowerRepo, hub)
	expenseService := service.NewExpenseService(expenseRepo, vendorRepo, branchRepo, hub)
	aggregationService := service.NewAggregationService(loanRepo, repaymentRepo, collectionRepo, savingRepo, expenseRepo, branchRepo, officerRepo, borrowerRepo)
	reportService := service.NewReportService(aggregationService, loanRepo, repaymentRepo, borrowerRepo)

	// Auth middleware and rate limiter
	authMiddleware := middleware.NewAuthMiddleware(officerRepo)
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Initialize handlers
	handlers := handler.Handlers{
		Borrower:   handler.NewBorrowerHandler(borrowerService, savingService),
		Loan:       handler.NewLoanHandler(loanService),
		Repayment:  handler.NewRepaymentHandler(repaymentService),
		Collection: handler.NewCollectionHandler(collectionService),
		Posting:    handler.NewPostingHandler(postingService),
		Saving:     handler.NewSavingHandler(savingService),
		Expense:    handler.NewExpenseHandler(expenseService),
		Branch:     handler.NewBranchHandler(branchService),
		Report:     handler.NewReportHandler(reportService),
		WebSocket:  handler.NewWebSocketHandler(hub, officerRepo, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()

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

	// Security headers middleware
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

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, handlers)

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
