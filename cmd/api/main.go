package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/KhashayarRezaei/bookverse/internal/auth"
	"github.com/KhashayarRezaei/bookverse/internal/config"
	"github.com/KhashayarRezaei/bookverse/internal/database"
	"github.com/KhashayarRezaei/bookverse/internal/events"
	"github.com/KhashayarRezaei/bookverse/internal/handler"
	"github.com/KhashayarRezaei/bookverse/internal/metrics"
	"github.com/KhashayarRezaei/bookverse/internal/payment"
	"github.com/KhashayarRezaei/bookverse/internal/repository"
	"github.com/KhashayarRezaei/bookverse/internal/router"
	"github.com/KhashayarRezaei/bookverse/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting bookverse API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	bookRepo := repository.NewBookRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize payment gateways
	gateways, err := payment.NewFactory(cfg.Payment, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize payment gateways: %w", err)
	}
	logger.Info().
		Strs("methods", gateways.Methods()).
		Dur("timeout", cfg.Payment.Timeout).
		Msg("payment gateways ready")

	// Initialize order event publisher
	publisher, err := events.NewPublisher(cfg.Events, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	m := metrics.New(cfg.Metrics.Namespace)

	// Initialize services
	bookService := service.NewBookService(bookRepo, logger)
	orderService := service.NewOrderService(
		orderRepo,
		bookService,
		gateways,
		publisher,
		m,
		cfg.Payment.Timeout,
		logger,
	)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Health: handler.NewHealthHandler(pool, logger),
		Books:  handler.NewBookHandler(bookService, logger),
		Orders: handler.NewOrderHandler(orderService, logger),
		Admin:  handler.NewAdminHandler(orderService, logger),
	}

	// Initialize router
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	routerMetrics := m
	if !cfg.Metrics.Enabled {
		routerMetrics = nil
	}
	mux := router.New(handlers, tokens, routerMetrics, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Bool("metrics", cfg.Metrics.Enabled).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// In-flight checkouts finish before the pool and publisher close.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
