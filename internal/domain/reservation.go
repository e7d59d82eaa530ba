package domain

import "time"

// Reservation is an exclusive claim on an item by a prospective buyer's
// cart. At most one reservation exists per item at any time; it is
// destroyed on purchase settlement or explicit cart removal.
type Reservation struct {
	ID        string
	ItemID    string
	UserID    string
	CreatedAt time.Time
}
