package models

// Contact is a guest contact card attached to bookings. UserID is an owner
// reference only; reads are not ownership-checked.
type Contact struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	UserID int64  `json:"userId"`
}
