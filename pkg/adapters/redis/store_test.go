package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunReportStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	report := &domain.Report{ID: "report-ttl", Status: domain.StatusHalted, Steps: 6}
	require.NoError(t, store.Save(ctx, report))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, report.ID)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, report.ID)
	assert.ErrorIs(t, err, domain.ErrReportNotFound)

	// The index is pruned against wall-clock time, not miniredis time.
	time.Sleep(1200 * time.Millisecond)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Report{ID: "my-run"}))

	assert.True(t, mr.Exists("custom:app:my-run"), "expected key with custom prefix")
	assert.True(t, mr.Exists("custom:app-index"), "expected index beside the custom prefix")

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"my-run"}, ids)
}

func TestRedisStore_DefaultPrefixAndPing(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Save(ctx, &domain.Report{ID: "abc"}))
	assert.True(t, mr.Exists(redis.DefaultPrefix+"abc"))
}

func TestRedisStore_RejectsEmptyID(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)

	assert.Error(t, store.Save(context.Background(), &domain.Report{}))
}

func TestRedisStore_New(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redis.New(mr.Addr(), "", 0)
	defer store.Close()

	assert.NoError(t, store.Ping(context.Background()))
}

func TestRedisStore_IndexOutsideReportKeys(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	for _, id := range []string{"index", "idx", "-index"} {
		require.NoError(t, store.Save(ctx, &domain.Report{ID: id, Steps: 6}))
	}
	assert.True(t, mr.Exists("turing:report-index"))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"-index", "idx", "index"}, ids)

	loaded, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, uint64(6), loaded.Steps)
}

func TestRedisStore_RejectsIndexCollision(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("run"))

	err := store.Save(context.Background(), &domain.Report{ID: "-index"})
	assert.ErrorContains(t, err, "reserved")
}

func TestRedisStore_ListIsSorted(t *testing.T) {
	_, client := newClient(t)
	ctx := context.Background()
	store := redis.NewFromClient(client, redis.WithTTL(time.Hour))

	// Later saves expire later, so index order differs from ID order.
	for _, id := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, store.Save(ctx, &domain.Report{ID: id}))
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, ids)
}
