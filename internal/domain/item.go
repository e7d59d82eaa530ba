package domain

import "time"

type ItemType string

const (
	ItemTypeMarketplace ItemType = "marketplace"
	ItemTypeAuction     ItemType = "auction"
	ItemTypeNone        ItemType = "none"
)

// ValidItemType reports whether t is one of the recognized item types.
func ValidItemType(t ItemType) bool {
	switch t {
	case ItemTypeMarketplace, ItemTypeAuction, ItemTypeNone:
		return true
	}
	return false
}

type Availability string

const (
	AvailabilityListed   Availability = "listed"
	AvailabilityReserved Availability = "reserved"
	AvailabilitySold     Availability = "sold"
)

// Item is a uniquely named digital good with a single current owner.
// Names are unique per item type, not globally.
type Item struct {
	ID           string
	Type         ItemType
	Name         string
	Description  string
	Price        int64
	ImageRef     string
	OwnerID      string
	Availability Availability
	CreatedAt    time.Time
}
