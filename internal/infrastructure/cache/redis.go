package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/email-scheduler/pkg/config"
)

// NewRedisClient creates a Redis client and verifies the connection
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Println("✅ Redis connected successfully")
	return client, nil
}

// advanceScript moves the watermark forward only. Concurrent sweeps may race
// to publish; the highest value always wins.
var advanceScript = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if cur == false or tonumber(ARGV[1]) > tonumber(cur) then
  redis.call('SET', KEYS[1], ARGV[1])
  return 1
end
return 0
`)

// RedisCursor persists the mailbox history watermark across restarts.
type RedisCursor struct {
	client *redis.Client
	key    string
}

// NewRedisCursor creates a cursor store backed by the given Redis key
func NewRedisCursor(client *redis.Client, key string) *RedisCursor {
	return &RedisCursor{client: client, key: key}
}

// Load returns the persisted watermark, or 0 when none exists yet.
func (c *RedisCursor) Load(ctx context.Context) (uint64, error) {
	val, err := c.client.Get(ctx, c.key).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(val, 10, 64)
}

// Init seeds the watermark only when no value is stored yet, so a restart
// never rewinds the cursor.
func (c *RedisCursor) Init(ctx context.Context, value uint64) error {
	return c.client.SetNX(ctx, c.key, strconv.FormatUint(value, 10), 0).Err()
}

// Advance publishes a new watermark if it is greater than the stored one.
func (c *RedisCursor) Advance(ctx context.Context, value uint64) error {
	return advanceScript.Run(ctx, c.client, []string{c.key}, strconv.FormatUint(value, 10)).Err()
}
