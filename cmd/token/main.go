package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/KhashayarRezaei/bookverse/internal/auth"
	"github.com/KhashayarRezaei/bookverse/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run prints a signed bearer token for local development and smoke tests.
func run() error {
	var (
		userID int64
		admin  bool
	)
	flag.Int64Var(&userID, "user", 1, "user id placed in the token subject")
	flag.BoolVar(&admin, "admin", false, "grant admin access")
	flag.Parse()

	if userID <= 0 {
		return fmt.Errorf("user id must be positive, got %d", userID)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	token, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).
		Issue(auth.Principal{ID: userID, IsAdmin: admin})
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	fmt.Println(token)
	return nil
}
