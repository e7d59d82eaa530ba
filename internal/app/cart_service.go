package app

import (
	"context"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/clock"
	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
)

type CartRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetItemForUpdate(ctx context.Context, itemType domain.ItemType, name string) (domain.Item, error)
	FindReservationByItem(ctx context.Context, itemID string) (*domain.Reservation, error)
	CreateReservation(ctx context.Context, res domain.Reservation) error
	DeleteReservation(ctx context.Context, userID, itemID string) error
	SetAvailability(ctx context.Context, itemID string, availability domain.Availability) error
	ListCartItems(ctx context.Context, userID string) ([]domain.Item, error)
}

// CartService is the single-buyer lock: it is the only writer of
// reservations, and an item can appear in at most one cart at a time.
// It never moves money or changes ownership.
type CartService struct {
	repo  CartRepository
	clock clock.Clock
}

func NewCartService(repo CartRepository, clk clock.Clock) *CartService {
	return &CartService{
		repo:  repo,
		clock: clk,
	}
}

// AddToCart reserves the item for userID. The item row lock is taken
// without waiting, so two concurrent adds on the same item resolve to
// exactly one success; the unique index on reservations.item_id is the
// backstop for the same race across transactions.
func (s *CartService) AddToCart(ctx context.Context, userID string, itemType domain.ItemType, itemName string) (domain.Item, error) {
	if userID == "" {
		return domain.Item{}, domain.ErrInvalidID
	}
	if !domain.ValidItemType(itemType) {
		return domain.Item{}, domain.ErrInvalidItemType
	}

	var result domain.Item
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		item, err := s.repo.GetItemForUpdate(txCtx, itemType, itemName)
		if err != nil {
			return err
		}
		// Sold items are delisted as far as buyers are concerned.
		if item.Availability == domain.AvailabilitySold {
			return domain.ErrItemNotFound
		}
		if item.OwnerID == userID {
			return domain.ErrSelfPurchase
		}

		existing, err := s.repo.FindReservationByItem(txCtx, item.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.UserID == userID {
				return domain.ErrAlreadyInCart
			}
			return domain.ErrAlreadyReserved
		}

		res := domain.Reservation{
			ID:        newID(),
			ItemID:    item.ID,
			UserID:    userID,
			CreatedAt: s.clock.Now(),
		}
		if err := s.repo.CreateReservation(txCtx, res); err != nil {
			return err
		}
		if err := s.repo.SetAvailability(txCtx, item.ID, domain.AvailabilityReserved); err != nil {
			return err
		}

		item.Availability = domain.AvailabilityReserved
		result = item
		return nil
	})
	if err != nil {
		return domain.Item{}, err
	}
	return result, nil
}

// RemoveFromCart releases the caller's reservation. The item goes back
// to listed unless it was already sold.
func (s *CartService) RemoveFromCart(ctx context.Context, userID string, itemType domain.ItemType, itemName string) error {
	if userID == "" {
		return domain.ErrInvalidID
	}
	if !domain.ValidItemType(itemType) {
		return domain.ErrInvalidItemType
	}

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		item, err := s.repo.GetItemForUpdate(txCtx, itemType, itemName)
		if err != nil {
			return err
		}

		existing, err := s.repo.FindReservationByItem(txCtx, item.ID)
		if err != nil {
			return err
		}
		if existing == nil || existing.UserID != userID {
			return domain.ErrNotReserved
		}

		if err := s.repo.DeleteReservation(txCtx, userID, item.ID); err != nil {
			return err
		}
		if item.Availability != domain.AvailabilitySold {
			return s.repo.SetAvailability(txCtx, item.ID, domain.AvailabilityListed)
		}
		return nil
	})
}

// Settle destroys the reservation after a successful purchase. Called
// only by the exchange engine; the item stays sold.
func (s *CartService) Settle(ctx context.Context, userID, itemID string) error {
	if userID == "" || itemID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteReservation(ctx, userID, itemID)
}

func (s *CartService) ListCart(ctx context.Context, userID string) ([]domain.Item, error) {
	if userID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListCartItems(ctx, userID)
}
