package models

// Room is seed inventory. The API never creates, updates or deletes rooms.
type Room struct {
	ID             int64    `json:"id" yaml:"id"`
	MaxGuests      int      `json:"maxGuests" yaml:"max_guests"`
	PricePerNight  float64  `json:"pricePerNight" yaml:"price_per_night"`
	AvailableDates []string `json:"availableDates" yaml:"available_dates"`
}

// AvailableOn reports whether the exact YYYY-MM-DD string is in the
// room's availability set.
func (r Room) AvailableOn(date string) bool {
	for _, d := range r.AvailableDates {
		if d == date {
			return true
		}
	}
	return false
}
