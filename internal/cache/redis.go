package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airplanemode/config"
	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
	pageTTL    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL, pageTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
		pageTTL:    pageTTL,
	}
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, flightsTTL, pageTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, flightsTTL: flightsTTL, pageTTL: pageTTL}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetFlights returns nil without error on a cache miss.
func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	var flights []domain.Flight
	found, err := c.getJSON(ctx, flightsKey(), &flights)
	if err != nil || !found {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	return c.setJSON(ctx, flightsKey(), flights, c.flightsTTL)
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

func (c *RedisCache) GetAirportShops(ctx context.Context) (*domain.AirportShopsPage, error) {
	var page domain.AirportShopsPage
	found, err := c.getJSON(ctx, airportShopsKey(), &page)
	if err != nil || !found {
		return nil, err
	}
	return &page, nil
}

func (c *RedisCache) SetAirportShops(ctx context.Context, page *domain.AirportShopsPage) error {
	return c.setJSON(ctx, airportShopsKey(), page, c.pageTTL)
}

func (c *RedisCache) InvalidateAirportShops(ctx context.Context) error {
	return c.client.Del(ctx, airportShopsKey()).Err()
}

func (c *RedisCache) AcquireSeatLock(ctx context.Context, flight, seat string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatLockKey(flight, seat), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSeatLock(ctx context.Context, flight, seat string) error {
	return c.client.Del(ctx, seatLockKey(flight, seat)).Err()
}

func (c *RedisCache) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func airportShopsKey() string {
	return "cache:www:airport-shops"
}

func seatLockKey(flight, seat string) string {
	return fmt.Sprintf("lock:flight:%s:seat:%s", flight, seat)
}
