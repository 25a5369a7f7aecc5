package store

import (
	"context"
	"fmt"
	"os"

	"roombook/internal/models"

	"gopkg.in/yaml.v3"
)

// SeedRooms loads room inventory from a YAML file and writes it into the
// rooms collection when the collection is empty. An already-populated
// collection is left untouched so manual edits survive restarts.
func (s *Store) SeedRooms(ctx context.Context, path string) error {
	existing, err := s.Rooms(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read rooms seed: %w", err)
	}

	var seed struct {
		Rooms []models.Room `yaml:"rooms"`
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse rooms seed: %w", err)
	}

	if err := ValidateRooms(seed.Rooms); err != nil {
		return err
	}

	s.logger.Info().Int("count", len(seed.Rooms)).Str("path", path).Msg("seeding rooms collection")
	return s.SaveRooms(ctx, seed.Rooms)
}

// ValidateRooms rejects duplicate or zero room IDs.
func ValidateRooms(rooms []models.Room) error {
	seen := make(map[int64]bool)
	for _, room := range rooms {
		if room.ID == 0 {
			return fmt.Errorf("room with invalid ID 0")
		}
		if seen[room.ID] {
			return fmt.Errorf("duplicate room ID found: %d", room.ID)
		}
		seen[room.ID] = true
	}
	return nil
}
