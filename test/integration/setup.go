package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"aura-bijoux/internal/config"
	"aura-bijoux/internal/database"
	"aura-bijoux/internal/handler"
	"aura-bijoux/internal/repository"
	"aura-bijoux/internal/router"
	"aura-bijoux/internal/seed"
	"aura-bijoux/internal/store"
	"aura-bijoux/internal/task"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAPIKey        = "test-api-key"
	testAdminEmail    = "admin@aurabijoux.pt"
	testAdminPassword = "admin123"
)

// TestDB represents a migrated archive database running in a container.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

// SetupTestDB starts PostgreSQL and opens the archive through database.Open,
// so the pool settings and the schema migration are exercised as in production.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

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
	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	pool, err := database.Open(ctx, config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  5,
		MinConnections:  1,
		MaxConnLifetime: 300,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return &TestDB{Container: postgresContainer, Pool: pool}
}

// TestApp is a fully wired server over one store.
type TestApp struct {
	Store   *store.Store
	Handler http.Handler
}

// SetupTestApp wires the store, the interaction layer and the router the way
// cmd/api does, without simulated delays. A nil db runs without archive.
func SetupTestApp(t *testing.T, db *TestDB) *TestApp {
	t.Helper()

	logger := zerolog.Nop()
	var (
		sink    store.AuditSink
		archive handler.Archive
	)
	if db != nil {
		repo := repository.NewAuditRepository(db.Pool, logger)
		sink, archive = repo, repo
	}

	s, err := store.New(store.Options{
		IDs:          store.NewSequenceGenerator(),
		Admin:        store.AdminAccount{Name: "Admin", Email: testAdminEmail, Password: testAdminPassword},
		Products:     seed.DefaultCatalog(),
		AuditSink:    sink,
		PasswordCost: bcrypt.MinCost,
	}, logger)
	require.NoError(t, err)

	interactions := store.NewInteractions(s, task.NewRunner(task.NoDelay{}, logger), store.Delays{})
	h := router.New(router.Handlers{
		Catalog:  handler.NewCatalogHandler(s, interactions, logger),
		Cart:     handler.NewCartHandler(s, logger),
		Session:  handler.NewSessionHandler(s, logger),
		Orders:   handler.NewOrderHandler(s, interactions, logger),
		Admin:    handler.NewAdminHandler(s, archive, logger),
		Social:   handler.NewSocialHandler(s, logger),
		Settings: handler.NewSettingsHandler(s, interactions, logger),
	}, testAPIKey, logger)

	return &TestApp{Store: s, Handler: h}
}
