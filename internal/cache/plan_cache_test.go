package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type report struct {
	PlanID string   `json:"plan_id"`
	Rooms  []string `json:"rooms"`
}

func setupStore(t *testing.T) (*miniredis.Miniredis, *Store) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, NewStore(rdb, time.Hour, zap.NewNop())
}

func TestStore_PutGet(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutJSON(ctx, "plan:latest", report{PlanID: "p1", Rooms: []string{"E2-1"}}))
	assert.True(t, mr.Exists("clinic-rooms:plan:latest"))
	assert.Equal(t, time.Hour, mr.TTL("clinic-rooms:plan:latest"))

	var got report
	found, err := store.GetJSON(ctx, "plan:latest", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "p1", got.PlanID)
	assert.Equal(t, []string{"E2-1"}, got.Rooms)
}

func TestStore_Miss(t *testing.T) {
	_, store := setupStore(t)

	var got report
	found, err := store.GetJSON(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_CorruptEntryIsAMiss(t *testing.T) {
	mr, store := setupStore(t)
	require.NoError(t, mr.Set("clinic-rooms:plan:latest", "{not json"))

	var got report
	found, err := store.GetJSON(context.Background(), "plan:latest", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_Delete(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.PutJSON(ctx, "k", report{}))

	require.NoError(t, store.Delete(ctx, "k"))
	assert.False(t, mr.Exists("clinic-rooms:k"))
}
