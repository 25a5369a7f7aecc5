package domain

import (
	"context"

	"roombook/internal/models"
)

// RoomCache caches the read-only rooms collection. GetRooms returns
// (nil, nil) on a miss.
type RoomCache interface {
	GetRooms(ctx context.Context) ([]models.Room, error)
	SetRooms(ctx context.Context, rooms []models.Room) error
	Invalidate(ctx context.Context) error
}

// EventPublisher emits domain events with a JSON payload.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
