package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const concertListKey = "concerts:list"

type Config struct {
	Addr     string
	Password string
	TTL      time.Duration
}

// Client caches the concert catalog in Redis/Valkey. Every caller treats
// a nil *Client as "no cache configured" and falls through to the
// database, so cache outages never take the API down with them.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to cache: %w", err)
	}

	return &Client{rdb: rdb, ttl: cfg.TTL}, nil
}

// GetConcertListRaw returns the cached concert list as raw JSON, avoiding
// an unmarshal/marshal round trip on the hot read path.
func (c *Client) GetConcertListRaw(ctx context.Context) ([]byte, error) {
	raw, err := c.rdb.Get(ctx, concertListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("concert list not cached")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return raw, nil
}

func (c *Client) SetConcertList(ctx context.Context, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal concert list: %w", err)
	}
	return c.rdb.Set(ctx, concertListKey, payload, c.ttl).Err()
}

// InvalidateConcertList drops the cached catalog. Called whenever a
// concert or any seat counter changes.
func (c *Client) InvalidateConcertList(ctx context.Context) error {
	return c.rdb.Del(ctx, concertListKey).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
