package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDedup(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr())
	t.Cleanup(func() { _ = rdb.Close() })

	d := NewRedisDedup(rdb)

	seen, err := d.Seen(ctx, "order_1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, d.Mark(ctx, "order_1"))

	seen, err = d.Seen(ctx, "order_1")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = d.Seen(ctx, "order_2")
	require.NoError(t, err)
	assert.False(t, seen)

	assert.True(t, mr.Exists("dedup:webhook:order_1"))
	assert.Equal(t, TTLDedup, mr.TTL("dedup:webhook:order_1"))

	mr.FastForward(TTLDedup)
	seen, err = d.Seen(ctx, "order_1")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRedisDedup_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr())
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	d := NewRedisDedup(rdb)
	_, err := d.Seen(context.Background(), "order_1")
	require.Error(t, err)
}

func TestNopDedup(t *testing.T) {
	ctx := context.Background()
	var d Dedup = NopDedup{}
	require.NoError(t, d.Mark(ctx, "order_1"))
	seen, err := d.Seen(ctx, "order_1")
	require.NoError(t, err)
	assert.False(t, seen)
}
