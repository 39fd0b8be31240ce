//go:build integration

// Integration tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

package router

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/amalSheikhdaher/Simple-Library-API/internal/config"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresEngine(t *testing.T, perMinute int) *gin.Engine {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcPostgres.WithDatabase("library_test"),
		tcPostgres.WithUsername("library"),
		tcPostgres.WithPassword("library"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "test",
		DBDriver:           "postgres",
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		RateLimitPerMinute: perMinute,
		ServiceName:        "simple-library-api-e2e",
	}

	// Connects, then applies the goose migrations.
	db, err := infra.NewDatabase(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	rdb, err := infra.NewRedis(ctx, cfg.RedisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	return New(cfg, db, rdb)
}

func TestPostgres_FullLifecycle(t *testing.T) {
	r := setupPostgresEngine(t, 1000)

	categoryID := createCategory(t, r, "science fiction")
	bookID := createBook(t, r, categoryID, "dune")
	bookPath := fmt.Sprintf("/api/books/%d", int(bookID))

	resp := do(t, r, http.MethodGet, bookPath, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "1965-08-01", data(t, resp)["published_at"])
	assert.Equal(t, "Science Fiction", data(t, resp)["category"].(map[string]any)["name"])

	resp = do(t, r, http.MethodPut, bookPath, map[string]any{"is_active": false})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, false, data(t, resp)["is_active"])

	resp = do(t, r, http.MethodDelete, fmt.Sprintf("/categories/%d", int(categoryID)), nil)
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = do(t, r, http.MethodDelete, bookPath, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = do(t, r, http.MethodDelete, fmt.Sprintf("/categories/%d", int(categoryID)), nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestPostgres_UniqueNameAfterNormalization(t *testing.T) {
	r := setupPostgresEngine(t, 1000)
	createCategory(t, r, "fiction")

	resp := do(t, r, http.MethodPost, "/categories", map[string]any{"name": "fiction "})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, []any{"This category name is already taken. Please choose another."}, fieldErrors(t, resp, "name"))
}

func TestPostgres_HealthReportsRedis(t *testing.T) {
	r := setupPostgresEngine(t, 1000)

	resp := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "connected", resp.Body["db"])
	assert.Equal(t, "connected", resp.Body["redis"])
}

func TestRedisRateLimit(t *testing.T) {
	r := setupPostgresEngine(t, 3)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/categories", nil).Code)
	}
	resp := do(t, r, http.MethodGet, "/categories", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
}
