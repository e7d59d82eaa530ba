package domain

import "time"

// Trade is the immutable settlement record written when a purchase
// completes: funds moved and ownership transferred in the same
// transaction that created it.
type Trade struct {
	ID        string
	ItemID    string
	SellerID  string
	BuyerID   string
	Price     int64
	CreatedAt time.Time
}
