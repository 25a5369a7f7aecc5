package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"roombook/internal/config"
	"roombook/internal/models"

	"github.com/redis/go-redis/v9"
)

const roomsKey = "rooms:all"

// RedisRoomCache keeps the serialized rooms collection in Redis with a TTL.
type RedisRoomCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisRoomCache(client *redis.Client, ttl time.Duration) *RedisRoomCache {
	return &RedisRoomCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisRoomCache) GetRooms(ctx context.Context) ([]models.Room, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, roomsKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms from redis: %w", err)
	}

	var rooms []models.Room
	if err := json.Unmarshal([]byte(val), &rooms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rooms: %w", err)
	}

	return rooms, nil
}

func (r *RedisRoomCache) SetRooms(ctx context.Context, rooms []models.Room) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("failed to marshal rooms: %w", err)
	}

	if err := r.client.Set(ctx, roomsKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set rooms in redis: %w", err)
	}

	return nil
}

func (r *RedisRoomCache) Invalidate(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, roomsKey).Err(); err != nil {
		return fmt.Errorf("failed to delete rooms from redis: %w", err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
