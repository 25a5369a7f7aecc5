package repository

import (
	"context"
	"sync"
	"time"

	"roombook/internal/models"
)

// MemoryRoomCache is the in-process fallback cache.
type MemoryRoomCache struct {
	mu        sync.RWMutex
	rooms     []models.Room
	expiresAt time.Time
	ttl       time.Duration
}

func NewMemoryRoomCache(ttl time.Duration) *MemoryRoomCache {
	return &MemoryRoomCache{ttl: ttl}
}

func (r *MemoryRoomCache) GetRooms(ctx context.Context) ([]models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.rooms == nil || time.Now().After(r.expiresAt) {
		return nil, nil
	}
	out := append([]models.Room(nil), r.rooms...)
	return out, nil
}

func (r *MemoryRoomCache) SetRooms(ctx context.Context, rooms []models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms = append([]models.Room(nil), rooms...)
	r.expiresAt = time.Now().Add(r.ttl)
	return nil
}

func (r *MemoryRoomCache) Invalidate(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms = nil
	return nil
}
