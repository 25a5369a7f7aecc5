package models

// Booking links a user to a room for a date range. ContactID is zero until
// a contact is attached via PATCH.
type Booking struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	RoomID    int64  `json:"roomId"`
	Checkin   string `json:"checkin"`
	Checkout  string `json:"checkout"`
	ContactID int64  `json:"contactId"`
}
