package formstore_test

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/field"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/formstore"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/pg"
	"github.com/dmitrymomot/formkit/pkg/redis"
)

func snapshot() form.Snapshot {
	return form.Snapshot{
		ID:       uuid.NewString(),
		FormName: "signup",
		FormData: map[string]string{"email": "bad", "age": "30"},
		Fields: map[string]field.State{
			"email": {ErrorMessage: "Email is invalid", Dirty: true},
			"age":   {},
		},
		IsValid:   false,
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func testStore(t *testing.T, store formstore.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		s := snapshot()
		require.NoError(t, store.Save(ctx, s))

		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.ID, got.ID)
		assert.Equal(t, s.FormName, got.FormName)
		assert.Equal(t, s.FormData, got.FormData)
		assert.Equal(t, s.Fields, got.Fields)
		assert.Equal(t, s.IsValid, got.IsValid)
		assert.True(t, s.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("overwrite", func(t *testing.T) {
		s := snapshot()
		require.NoError(t, store.Save(ctx, s))
		s.FormData["age"] = "31"
		s.IsValid = true
		require.NoError(t, store.Save(ctx, s))

		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "31", got.FormData["age"])
		assert.True(t, got.IsValid)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := store.Get(ctx, uuid.NewString())
		assert.ErrorIs(t, err, formstore.ErrSnapshotNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		s := snapshot()
		require.NoError(t, store.Save(ctx, s))
		require.NoError(t, store.Delete(ctx, s.ID))
		_, err := store.Get(ctx, s.ID)
		assert.ErrorIs(t, err, formstore.ErrSnapshotNotFound)
		assert.NoError(t, store.Delete(ctx, s.ID), "deleting twice is fine")
	})

	t.Run("invalid", func(t *testing.T) {
		s := snapshot()
		s.ID = ""
		assert.ErrorIs(t, store.Save(ctx, s), formstore.ErrInvalidSnapshot)

		s = snapshot()
		s.FormName = ""
		assert.ErrorIs(t, store.Save(ctx, s), formstore.ErrInvalidSnapshot)
	})
}

func TestMemoryStore(t *testing.T) {
	store := formstore.NewMemoryStore(0)
	defer store.Close()
	testStore(t, store)
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	var mu sync.Mutex
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		now = now.Add(d)
		mu.Unlock()
	}

	store := formstore.NewMemoryStore(time.Hour, formstore.WithClock(clock))
	defer store.Close()

	s := snapshot()
	require.NoError(t, store.Save(ctx, s))

	advance(59 * time.Minute)
	_, err := store.Get(ctx, s.ID)
	require.NoError(t, err)

	advance(time.Minute)
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, formstore.ErrSnapshotNotFound)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, store.Purge())
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := formstore.NewMemoryStore(0)
	defer store.Close()

	s := snapshot()
	require.NoError(t, store.Save(ctx, s))
	s.FormData["email"] = "changed"

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "bad", got.FormData["email"])

	got.FormData["email"] = "again"
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "bad", again.FormData["email"])
}

func TestMemoryStore_CloseIdempotent(t *testing.T) {
	store := formstore.NewMemoryStore(time.Millisecond)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	client, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: url, RetryAttempts: 1, ConnectTimeout: 5 * time.Second})
	require.NoError(t, err)
	defer client.Close()

	testStore(t, formstore.NewRedisStore(client, "formkit:test:", time.Minute))
}

func TestPGStore(t *testing.T) {
	conn := os.Getenv("PG_CONN_URL")
	if conn == "" {
		t.Skip("PG_CONN_URL not set")
	}
	ctx := context.Background()
	pool, err := pg.Connect(ctx, pg.Config{ConnectionString: conn, RetryAttempts: 1})
	require.NoError(t, err)
	defer pool.Close()

	log := logger.New(logger.WithLevel(slog.LevelWarn))
	require.NoError(t, formstore.Migrate(ctx, pool, "formkit_test_migrations", log))

	store := formstore.NewPGStore(pool, time.Minute)
	testStore(t, store)

	_, err = store.Purge(ctx)
	assert.NoError(t, err)
}
