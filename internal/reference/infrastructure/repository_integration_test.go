package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("bebetter"),
		postgres.WithUsername("bebetter"),
		postgres.WithPassword("bebetter"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminating postgres container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, EnsureSchema(ctx, db))
	return db
}

func TestReferenceRepositories_Postgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	travelID, err := InsertCategory(ctx, db, "Travel", "Trips and places", "#00aaff")
	require.NoError(t, err)
	lifeID, err := InsertCategory(ctx, db, "Life", "", "")
	require.NoError(t, err)
	_, err = InsertTag(ctx, db, "golang")
	require.NoError(t, err)
	_, err = InsertTag(ctx, db, "focus")
	require.NoError(t, err)

	// Schema creation is idempotent.
	require.NoError(t, EnsureSchema(ctx, db))

	t.Run("categories ordered by name with nullable columns", func(t *testing.T) {
		categories, err := NewCategoryRepository(db).FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 2)

		assert.Equal(t, lifeID, categories[0].ID)
		assert.Equal(t, "Life", categories[0].Name)
		assert.Empty(t, categories[0].Description)
		assert.Empty(t, categories[0].Color)
		assert.False(t, categories[0].CreatedAt.IsZero())

		assert.Equal(t, travelID, categories[1].ID)
		assert.Equal(t, "Trips and places", categories[1].Description)
		assert.Equal(t, "#00aaff", categories[1].Color)
	})

	t.Run("tags ordered by name", func(t *testing.T) {
		tags, err := NewTagRepository(db).FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "focus", tags[0].Name)
		assert.Equal(t, "golang", tags[1].Name)
	})

	t.Run("cancelled context fails", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewTagRepository(db).FindAll(cancelled)
		assert.Error(t, err)
	})
}

func TestCategoryRepository_EmptyTableReturnsEmptySlice(t *testing.T) {
	db := setupPostgres(t)

	categories, err := NewCategoryRepository(db).FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}
