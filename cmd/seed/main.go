package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KhashayarRezaei/bookverse/internal/catalog"
	"github.com/KhashayarRezaei/bookverse/internal/config"
	"github.com/KhashayarRezaei/bookverse/internal/database"
	"github.com/KhashayarRezaei/bookverse/internal/repository"
	"github.com/KhashayarRezaei/bookverse/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var file string
	flag.StringVar(&file, "file", cfg.Catalog.SeedFile, "gzipped JSON-lines catalog file")
	flag.Parse()

	logger := config.NewLogger(cfg.Logger).With().Str("component", "seed").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize catalog loader with S3 and local fallback
	fileLoader := catalog.NewFileLoader(logger)
	var s3Loader catalog.Loader
	if cfg.S3.Enabled {
		s3Loader, err = catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		}
	} else {
		logger.Info().Msg("using local file system for catalog files (S3 disabled)")
	}
	loader := catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	books, err := loader.Load(ctx, file)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	bookService := service.NewBookService(repository.NewBookRepository(pool, logger), logger)
	imported, err := bookService.Import(ctx, books)
	logger.Info().
		Int("imported", imported).
		Int("total", len(books)).
		Msg("catalog import finished")
	if err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}

	return nil
}
