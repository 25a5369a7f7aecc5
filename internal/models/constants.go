package models

// Collection names double as the file names (with .json) in the data dir.
const (
	CollectionUsers    = "users"
	CollectionRooms    = "rooms"
	CollectionBookings = "bookings"
	CollectionContacts = "contacts"
)

// DateLayout is the wire format for checkin/checkout and availability dates.
const DateLayout = "2006-01-02"

const (
	// DefaultPort серверный порт по умолчанию
	DefaultPort = 3000

	// DefaultBcryptCost стоимость хеширования пароля
	DefaultBcryptCost = 10

	// RoomsCacheTTL время жизни кэша комнат
	RoomsCacheTTL = 30 * 60 // 30 минут в секундах

	// SortAsc / SortDesc допустимые значения параметра sort
	SortAsc  = "asc"
	SortDesc = "desc"
)
