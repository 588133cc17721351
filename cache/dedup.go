package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// dedup:{scope}:{razorpay_order_id} -> "1"
	keyDedup = "dedup:%s:%s"

	scopeWebhook = "webhook"
)

// TTLDedup bounds how long an applied order is remembered. Razorpay stops
// redelivering well within this window.
var TTLDedup = 72 * time.Hour

// Dedup remembers orders whose webhook has already been applied. It is a
// fast path only; the payment log status stays authoritative.
type Dedup interface {
	Seen(ctx context.Context, orderID string) (bool, error)
	Mark(ctx context.Context, orderID string) error
}

// NewRedisClient opens a client with short timeouts so a slow cache never
// holds up a webhook.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// RedisDedup stores applied orders in Redis
type RedisDedup struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDedup(rdb *redis.Client) *RedisDedup {
	return &RedisDedup{rdb: rdb, ttl: TTLDedup}
}

func (d *RedisDedup) Seen(ctx context.Context, orderID string) (bool, error) {
	n, err := d.rdb.Exists(ctx, key(orderID)).Result()
	return n > 0, err
}

func (d *RedisDedup) Mark(ctx context.Context, orderID string) error {
	return d.rdb.Set(ctx, key(orderID), "1", d.ttl).Err()
}

func key(orderID string) string {
	return fmt.Sprintf(keyDedup, scopeWebhook, orderID)
}

// NopDedup never remembers anything
type NopDedup struct{}

func (NopDedup) Seen(context.Context, string) (bool, error) { return false, nil }
func (NopDedup) Mark(context.Context, string) error         { return nil }
