package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/KhashayarRezaei/bookverse/internal/config"
	"github.com/KhashayarRezaei/bookverse/internal/database"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var direction string
	flag.StringVar(&direction, "direction", "up", "migration direction: up or down")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger).With().Str("component", "migrator").Logger()

	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Database).
		Str("direction", direction).
		Msg("running migrations")

	return database.Migrate(cfg.Database.ConnectionString(), database.Direction(direction), logger)
}
