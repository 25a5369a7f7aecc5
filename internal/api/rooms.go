package api

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"roombook/internal/models"
)

// listRooms reads the rooms collection through the cache when one is wired.
func (s *Server) listRooms(r *http.Request) ([]models.Room, error) {
	if s.rooms != nil {
		if cached, err := s.rooms.GetRooms(r.Context()); err == nil && cached != nil {
			return cached, nil
		}
	}

	rooms, err := s.store.Rooms(r.Context())
	if err != nil {
		return nil, err
	}

	if s.rooms != nil {
		if err := s.rooms.SetRooms(r.Context(), rooms); err != nil {
			s.logger.Warn().Err(err).Msg("room cache fill failed")
		}
	}
	return rooms, nil
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rooms, err := s.listRooms(r)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("guests")); raw != "" {
		guests, err := strconv.Atoi(raw)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "guests must be a number")
			return
		}
		filtered := make([]models.Room, 0, len(rooms))
		for _, room := range rooms {
			if room.MaxGuests >= guests {
				filtered = append(filtered, room)
			}
		}
		rooms = filtered
	}

	if date := strings.TrimSpace(query.Get("checkInDate")); date != "" {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
			return
		}
		filtered := make([]models.Room, 0, len(rooms))
		for _, room := range rooms {
			if room.AvailableOn(date) {
				filtered = append(filtered, room)
			}
		}
		rooms = filtered
	}

	// Sort a copy so neither the store's insertion order nor a shared cached
	// slice is disturbed. Ties keep their relative order.
	switch query.Get("sort") {
	case models.SortAsc:
		rooms = append([]models.Room(nil), rooms...)
		sort.SliceStable(rooms, func(i, j int) bool {
			return rooms[i].PricePerNight < rooms[j].PricePerNight
		})
	case models.SortDesc:
		rooms = append([]models.Room(nil), rooms...)
		sort.SliceStable(rooms, func(i, j int) bool {
			return rooms[i].PricePerNight > rooms[j].PricePerNight
		})
	}

	if rooms == nil {
		rooms = []models.Room{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (s *Server) handleRoomByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := pathID(r.URL.Path, "/api/rooms/")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid room id")
		return
	}

	rooms, err := s.listRooms(r)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	for _, room := range rooms {
		if room.ID == id {
			writeJSON(w, http.StatusOK, room)
			return
		}
	}

	writeMessage(w, http.StatusNotFound, "Room not found")
}

// pathID extracts the trailing integer path parameter.
func pathID(path, prefix string) (int64, bool) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
