package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"roombook/internal/metrics"
	"roombook/internal/models"

	"github.com/rs/zerolog"
)

// ErrUnavailable marks storage-level failures (missing or corrupt files).
// Handlers map it to HTTP 500.
var ErrUnavailable = errors.New("storage unavailable")

// Store keeps each collection as one JSON array file under dir. Every read
// loads the whole file; every write rewrites it. A mutex per collection
// serializes read-modify-write sequences so concurrent handlers cannot lose
// updates.
type Store struct {
	dir    string
	logger *zerolog.Logger
	locks  map[string]*sync.Mutex
}

func New(dir string, logger *zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Store{
		dir:    dir,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
	for _, name := range []string{
		models.CollectionUsers,
		models.CollectionRooms,
		models.CollectionBookings,
		models.CollectionContacts,
	} {
		s.locks[name] = &sync.Mutex{}
		if err := s.ensureFile(name); err != nil {
			return nil, err
		}
	}

	logger.Info().Str("dir", dir).Msg("document store initialized")
	return s, nil
}

// ensureFile seeds a missing collection file with an empty array. Absence
// after startup is treated as a storage failure, not re-seeded.
func (s *Store) ensureFile(name string) error {
	path := s.path(name)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte("[]\n"), 0o644); err != nil {
		return fmt.Errorf("seed collection %s: %w", name, err)
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) load(name string, out any) error {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrUnavailable, name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrUnavailable, name, err)
	}
	metrics.IncStorage(name, "load")
	return nil
}

func (s *Store) save(name string, records any) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrUnavailable, name, err)
	}
	if err := os.WriteFile(s.path(name), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, name, err)
	}
	metrics.IncStorage(name, "save")
	return nil
}

// Users returns the full users collection in insertion order.
func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	mu := s.locks[models.CollectionUsers]
	mu.Lock()
	defer mu.Unlock()

	var users []models.User
	if err := s.load(models.CollectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUsers runs fn under the users lock and persists the slice it returns.
// The whole load-mutate-save sequence is atomic with respect to other calls.
func (s *Store) UpdateUsers(ctx context.Context, fn func(users []models.User) ([]models.User, error)) error {
	mu := s.locks[models.CollectionUsers]
	mu.Lock()
	defer mu.Unlock()

	var users []models.User
	if err := s.load(models.CollectionUsers, &users); err != nil {
		return err
	}
	updated, err := fn(users)
	if err != nil {
		return err
	}
	return s.save(models.CollectionUsers, updated)
}

func (s *Store) Rooms(ctx context.Context) ([]models.Room, error) {
	mu := s.locks[models.CollectionRooms]
	mu.Lock()
	defer mu.Unlock()

	var rooms []models.Room
	if err := s.load(models.CollectionRooms, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// SaveRooms replaces the rooms collection. Only seeding uses it; the API
// treats rooms as read-only.
func (s *Store) SaveRooms(ctx context.Context, rooms []models.Room) error {
	mu := s.locks[models.CollectionRooms]
	mu.Lock()
	defer mu.Unlock()

	return s.save(models.CollectionRooms, rooms)
}

func (s *Store) Bookings(ctx context.Context) ([]models.Booking, error) {
	mu := s.locks[models.CollectionBookings]
	mu.Lock()
	defer mu.Unlock()

	var bookings []models.Booking
	if err := s.load(models.CollectionBookings, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *Store) UpdateBookings(ctx context.Context, fn func(bookings []models.Booking) ([]models.Booking, error)) error {
	mu := s.locks[models.CollectionBookings]
	mu.Lock()
	defer mu.Unlock()

	var bookings []models.Booking
	if err := s.load(models.CollectionBookings, &bookings); err != nil {
		return err
	}
	updated, err := fn(bookings)
	if err != nil {
		return err
	}
	return s.save(models.CollectionBookings, updated)
}

func (s *Store) Contacts(ctx context.Context) ([]models.Contact, error) {
	mu := s.locks[models.CollectionContacts]
	mu.Lock()
	defer mu.Unlock()

	var contacts []models.Contact
	if err := s.load(models.CollectionContacts, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *Store) UpdateContacts(ctx context.Context, fn func(contacts []models.Contact) ([]models.Contact, error)) error {
	mu := s.locks[models.CollectionContacts]
	mu.Lock()
	defer mu.Unlock()

	var contacts []models.Contact
	if err := s.load(models.CollectionContacts, &contacts); err != nil {
		return err
	}
	updated, err := fn(contacts)
	if err != nil {
		return err
	}
	return s.save(models.CollectionContacts, updated)
}

// Ping verifies the data directory is still readable. Used by /readyz.
func (s *Store) Ping() error {
	if _, err := os.Stat(s.dir); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}
