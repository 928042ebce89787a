package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
	"github.com/tendant/simple-pitch/pkg/simplepitch/storage/redis"
	"github.com/tendant/simple-pitch/pkg/simplepitch/storage/storagetest"
)

func newMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	m, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func TestRedisBackend(t *testing.T) {
	m := newMiniredis(t)
	client := goredis.NewClient(&goredis.Options{Addr: m.Addr()})
	b := redis.New(client, "")
	defer b.Close()

	storagetest.Run(t, b)
}

func TestRedisBackendPrefixAndTTL(t *testing.T) {
	ctx := context.Background()
	m := newMiniredis(t)
	client := goredis.NewClient(&goredis.Options{Addr: m.Addr()})
	b := redis.New(client, "tenant-a:")
	defer b.Close()

	require.NoError(t, b.Put(ctx, simplepitch.KeyBrands, []byte(`[]`)))

	got, err := m.Get("tenant-a:pharma_brands")
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)
	assert.Zero(t, m.TTL("tenant-a:pharma_brands"))
}

func TestRedisNewFromURL(t *testing.T) {
	ctx := context.Background()
	m := newMiniredis(t)

	b, err := redis.NewFromURL(ctx, "redis://"+m.Addr()+"/0", "")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, m.Set(redis.DefaultPrefix+simplepitch.KeyDoctors, `[{"id":"d1"}]`))
	got, err := b.Get(ctx, simplepitch.KeyDoctors)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"d1"}]`, string(got))

	_, err = redis.NewFromURL(ctx, "not a url", "")
	assert.Error(t, err)
}
