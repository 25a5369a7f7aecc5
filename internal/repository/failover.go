package repository

import (
	"context"
	"sync/atomic"
	"time"

	"roombook/internal/domain"
	"roombook/internal/models"

	"github.com/rs/zerolog"
)

// FailoverRoomCache serves from the primary cache until it errors, then trips
// to the fallback and retries the primary after a cooldown.
type FailoverRoomCache struct {
	primary   domain.RoomCache
	fallback  domain.RoomCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverRoomCache(primary, fallback domain.RoomCache, logger *zerolog.Logger) *FailoverRoomCache {
	return &FailoverRoomCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverRoomCache) GetRooms(ctx context.Context) ([]models.Room, error) {
	if !r.isDown.Load() {
		rooms, err := r.primary.GetRooms(ctx)
		if err == nil {
			return rooms, nil
		}
		r.logger.Error().Err(err).Msg("Primary room cache failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	// Try to recover after 1 minute
	if r.isDown.Load() && time.Since(r.lastCheck) > time.Minute {
		rooms, err := r.primary.GetRooms(ctx)
		if err == nil {
			r.isDown.Store(false)
			return rooms, nil
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.GetRooms(ctx)
}

func (r *FailoverRoomCache) SetRooms(ctx context.Context, rooms []models.Room) error {
	if !r.isDown.Load() {
		err := r.primary.SetRooms(ctx, rooms)
		if err == nil {
			return r.fallback.SetRooms(ctx, rooms)
		}
		r.logger.Error().Err(err).Msg("Primary room cache failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	return r.fallback.SetRooms(ctx, rooms)
}

func (r *FailoverRoomCache) Invalidate(ctx context.Context) error {
	if !r.isDown.Load() {
		err := r.primary.Invalidate(ctx)
		if err == nil {
			return r.fallback.Invalidate(ctx)
		}
		r.logger.Error().Err(err).Msg("Primary room cache failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	return r.fallback.Invalidate(ctx)
}
