package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/KhashayarRezaei/bookverse/internal/config"
	"github.com/KhashayarRezaei/bookverse/internal/database"
	"github.com/KhashayarRezaei/bookverse/internal/events"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, applies the migrations and
// opens a connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()

	if err := database.Migrate(connStr, database.Up, logger); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	pool, err := database.NewPoolFromURL(ctx, connStr, config.DatabaseConfig{
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedBooks inserts the test catalogue and returns the generated IDs keyed by title.
// Book A costs 15.99, Book B 22.50 and Book C 9.99.
func SeedBooks(t *testing.T, pool *pgxpool.Pool) map[string]int64 {
	t.Helper()

	ctx := context.Background()

	books := []struct {
		title string
		isbn  string
		price string
	}{
		{"Book A", "9780000000001", "15.99"},
		{"Book B", "9780000000002", "22.50"},
		{"Book C", "9780000000003", "9.99"},
	}

	ids := make(map[string]int64, len(books))
	for _, b := range books {
		var id int64
		err := pool.QueryRow(ctx,
			"INSERT INTO books (title, author, isbn, price) VALUES ($1, $2, $3, $4) RETURNING id",
			b.title, "Test Author", b.isbn, decimal.RequireFromString(b.price),
		).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed book %s: %v", b.title, err)
		}
		ids[b.title] = id
	}

	return ids
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "books"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}

// RecordingPublisher is an events.Publisher that keeps every event in memory.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

// Publish records event.
func (p *RecordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Close implements events.Publisher.
func (p *RecordingPublisher) Close() error { return nil }

// OfType returns the recorded events of type typ.
func (p *RecordingPublisher) OfType(typ events.Type) []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []events.Event
	for _, e := range p.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets all recorded events.
func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

// testPaymentConfig returns gateway settings with no latency; paypal declines
// every charge so the rejection path can be exercised end to end.
func testPaymentConfig() config.PaymentConfig {
	return config.PaymentConfig{
		Timeout: 5 * time.Second,
		Stripe: config.GatewayConfig{
			APIKey:   "sk_test_integration",
			Endpoint: "https://api.stripe.test",
		},
		PayPal: config.GatewayConfig{
			APIKey:      "paypal_client",
			APISecret:   "paypal_secret",
			Endpoint:    "https://api.paypal.test",
			FailureRate: 1,
		},
	}
}
