package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// DefaultPrefix namespaces record keys inside a shared Redis database.
const DefaultPrefix = "simplepitch:"

// Backend stores each record as a plain Redis string under "<prefix><key>".
// Records never expire.
type Backend struct {
	client *redis.Client
	prefix string
}

// New creates a Redis backend over an existing client. Prefix may be empty.
func New(client *redis.Client, prefix string) *Backend {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Backend{client: client, prefix: prefix}
}

// NewFromURL connects using a redis:// URL and verifies the connection.
func NewFromURL(ctx context.Context, url, prefix string) (*Backend, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(client, prefix), nil
}

func (b *Backend) key(k string) string {
	return b.prefix + k
}

// Name returns the backend name
func (b *Backend) Name() string {
	return "redis"
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, simplepitch.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (b *Backend) Put(ctx context.Context, key string, data []byte) error {
	return b.client.Set(ctx, b.key(key), data, 0).Err()
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	return b.client.Del(ctx, b.key(key)).Err()
}

// Close closes the underlying client.
func (b *Backend) Close() error {
	return b.client.Close()
}
