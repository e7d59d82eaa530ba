package domain

import "time"

// User holds the account identity and balance. Owned items and sales
// history are derived by query, never stored on the user record.
// Balance is in cents and never goes negative.
type User struct {
	ID        string
	Name      string
	Balance   int64
	CreatedAt time.Time
}
