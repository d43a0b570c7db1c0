package valkey

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexmorbo/slack-notifier/domain/recipient"
)

func mustRoute(t *testing.T, name, value string) *recipient.Route {
	t.Helper()
	r, err := recipient.NewRoute(name, value)
	require.NoError(t, err)
	return r
}

func setupTestRedis(t *testing.T) (*RouteRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewRouteRepository(client, logger), mr
}

func TestSaveAndFind(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, repo.Save(ctx, mustRoute(t, "ops", "https://hooks.slack.com/services/T/B/X")))

	found, err := repo.Find(ctx, "ops")
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, "ops", found.Recipient())
	assert.Equal(t, "https://hooks.slack.com/services/T/B/X", found.Value())
	assert.True(t, found.UpdatedAt().After(before))
}

func TestFindNotFound(t *testing.T) {
	repo, _ := setupTestRedis(t)

	found, err := repo.Find(context.Background(), "nobody")
	assert.Nil(t, found)
	assert.ErrorIs(t, err, recipient.ErrNotFound)
}

func TestSaveOverwritesExisting(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, mustRoute(t, "ops", "https://hooks.slack.com/old")))
	require.NoError(t, repo.Save(ctx, mustRoute(t, "ops", "xoxp-new")))

	found, err := repo.Find(ctx, "ops")
	require.NoError(t, err)
	assert.Equal(t, "xoxp-new", found.Value())
}

func TestSaveHasNoTTL(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, repo.Save(context.Background(), mustRoute(t, "ops", "xoxp-1")))

	assert.True(t, mr.Exists(keyPrefix+"ops"))
	assert.Zero(t, mr.TTL(keyPrefix+"ops"))
}

func TestDelete(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, mustRoute(t, "ops", "xoxp-1")))
	require.NoError(t, repo.Delete(ctx, "ops"))

	assert.False(t, mr.Exists(keyPrefix+"ops"))
	assert.ErrorIs(t, repo.Delete(ctx, "ops"), recipient.ErrNotFound)
}

func TestFindCorruptedData(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, mr.Set(keyPrefix+"ops", "not json"))

	found, err := repo.Find(context.Background(), "ops")
	require.Error(t, err)
	assert.Nil(t, found)
	assert.Contains(t, err.Error(), "unmarshal route data")
}

func TestRedisUnavailable(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()
	mr.Close()

	assert.Error(t, repo.Save(ctx, mustRoute(t, "ops", "xoxp-1")))
	_, err := repo.Find(ctx, "ops")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, recipient.ErrNotFound)
	assert.Error(t, repo.Delete(ctx, "ops"))
	assert.Error(t, repo.Ping(ctx))
}

func TestPing(t *testing.T) {
	repo, _ := setupTestRedis(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
