package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"roombook/internal/events"
	"roombook/internal/models"
	"roombook/internal/store"
)

var errBookingNotFound = errors.New("booking not found")

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListBookings(w, r)
	case http.MethodPost:
		s.handleCreateBooking(w, r)
	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleListBookings returns the caller's bookings. The owner is always the
// verified token identity; a userId query parameter is ignored.
func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	bookings, err := s.store.Bookings(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	mine := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.UserID == claims.UserID {
			mine = append(mine, b)
		}
	}

	writeJSON(w, http.StatusOK, mine)
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	// A userId field in the body is deliberately not decoded; ownership
	// comes from the token.
	var body struct {
		RoomID   int64  `json:"roomId"`
		Checkin  string `json:"checkin"`
		Checkout string `json:"checkout"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking := models.Booking{
		ID:       store.NextID(),
		UserID:   claims.UserID,
		RoomID:   body.RoomID,
		Checkin:  body.Checkin,
		Checkout: body.Checkout,
	}

	err := s.store.UpdateBookings(r.Context(), func(bookings []models.Booking) ([]models.Booking, error) {
		return append(bookings, booking), nil
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	_ = s.events.PublishJSON(events.EventBookingCreated, events.BookingEventPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		RoomID:    booking.RoomID,
		Checkin:   booking.Checkin,
		Checkout:  booking.Checkout,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Booking created",
		"booking": booking,
	})
}

func (s *Server) handleBookingByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/bookings/")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	switch r.Method {
	case http.MethodPatch:
		s.handleUpdateBookingContact(w, r, id)
	case http.MethodDelete:
		s.handleDeleteBooking(w, r, id)
	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleUpdateBookingContact(w http.ResponseWriter, r *http.Request, id int64) {
	var body struct {
		ContactID *int64 `json:"contactId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.ContactID == nil {
		writeMessage(w, http.StatusBadRequest, "contactId is required")
		return
	}

	contacts, err := s.store.Contacts(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	contactExists := false
	for _, c := range contacts {
		if c.ID == *body.ContactID {
			contactExists = true
			break
		}
	}
	if !contactExists {
		writeMessage(w, http.StatusBadRequest, "Contact not found")
		return
	}

	var updated models.Booking
	err = s.store.UpdateBookings(r.Context(), func(bookings []models.Booking) ([]models.Booking, error) {
		for i := range bookings {
			if bookings[i].ID == id {
				bookings[i].ContactID = *body.ContactID
				updated = bookings[i]
				return bookings, nil
			}
		}
		return nil, errBookingNotFound
	})
	if errors.Is(err, errBookingNotFound) {
		writeMessage(w, http.StatusNotFound, "Booking not found")
		return
	}
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	_ = s.events.PublishJSON(events.EventBookingContactLinked, events.BookingEventPayload{
		BookingID: updated.ID,
		UserID:    updated.UserID,
		RoomID:    updated.RoomID,
		ContactID: updated.ContactID,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Booking updated",
		"booking": updated,
	})
}

// handleDeleteBooking removes the booking only when both the id and the
// authenticated owner match. Either mismatch leaves the collection untouched,
// and the response is the same success message in every case.
func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request, id int64) {
	claims := claimsFrom(r)

	var removed *models.Booking
	err := s.store.UpdateBookings(r.Context(), func(bookings []models.Booking) ([]models.Booking, error) {
		kept := make([]models.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.ID == id && b.UserID == claims.UserID {
				removed = &b
				continue
			}
			kept = append(kept, b)
		}
		return kept, nil
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	if removed != nil {
		_ = s.events.PublishJSON(events.EventBookingCancelled, events.BookingEventPayload{
			BookingID: removed.ID,
			UserID:    removed.UserID,
			RoomID:    removed.RoomID,
		})
	}

	writeMessage(w, http.StatusOK, "Booking cancelled")
}
