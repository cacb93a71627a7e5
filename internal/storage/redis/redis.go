package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by the getters when the key does not exist.
var ErrCacheMiss = errors.New("key not found")

// Cache holds the per-user conversation data of the bot.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

func New(addr, password string, db int, logger *zap.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("successfully connected to Redis", zap.String("addr", addr), zap.Int("db", db))

	return NewWithClient(client, logger), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, logger *zap.Logger) *Cache {
	return &Cache{
		client: client,
		logger: logger,
	}
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// fail logs a failed command and wraps its error.
func (c *Cache) fail(op string, err error, keys ...string) error {
	c.logger.Error("redis command failed",
		zap.String("op", op),
		zap.Strings("keys", keys),
		zap.Error(err),
	)
	return fmt.Errorf("redis %s: %w", op, err)
}

func (c *Cache) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return c.fail("set", err, key)
	}
	return nil
}

// getJSON decodes the value at key into a new T.
func getJSON[T any](ctx context.Context, c *Cache, key string) (*T, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, c.fail("get", err, key)
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return &value, nil
}

func (c *Cache) del(ctx context.Context, keys ...string) error {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return c.fail("del", err, keys...)
	}
	return nil
}

// incrWindow counts hits in a fixed window that starts with the first hit.
func (c *Cache) incrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, c.fail("incr", err, key)
	}

	return incr.Val(), nil
}
