package app

import (
	"context"
	"strings"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/clock"
	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
)

type ItemRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateItem(ctx context.Context, item domain.Item) error
	GetItem(ctx context.Context, itemType domain.ItemType, name string) (domain.Item, error)
	ListItemsByType(ctx context.Context, itemType domain.ItemType) ([]domain.Item, error)
	GetListedForUpdate(ctx context.Context, itemType domain.ItemType, name string) (domain.Item, error)
	UpdateOwnership(ctx context.Context, itemID, fromOwner, toOwner string) error
	ListItemsByOwner(ctx context.Context, ownerID string) ([]domain.Item, error)
}

// CatalogService owns item records: creation, lookup, listing and
// ownership transfer. It is the sole writer of an item's owner.
type CatalogService struct {
	repo  ItemRepository
	clock clock.Clock
}

func NewCatalogService(repo ItemRepository, clk clock.Clock) *CatalogService {
	return &CatalogService{
		repo:  repo,
		clock: clk,
	}
}

type CreateItemInput struct {
	Name        string
	Type        domain.ItemType
	Description string
	Price       int64
	ImageRef    string
	OwnerID     string
}

func (s *CatalogService) CreateItem(ctx context.Context, in CreateItemInput) (domain.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Item{}, domain.ErrItemNameRequired
	}
	if !domain.ValidItemType(in.Type) {
		return domain.Item{}, domain.ErrInvalidItemType
	}
	if in.Price < 0 {
		return domain.Item{}, domain.ErrInvalidPrice
	}
	if in.OwnerID == "" {
		return domain.Item{}, domain.ErrInvalidID
	}

	item := domain.Item{
		ID:           newID(),
		Type:         in.Type,
		Name:         name,
		Description:  in.Description,
		Price:        in.Price,
		ImageRef:     in.ImageRef,
		OwnerID:      in.OwnerID,
		Availability: domain.AvailabilityListed,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

// ListItems returns items of the given type. Sold items stay out of the
// listing; stripping owner identity from the response is the transport's
// job, so the internal record keeps it.
func (s *CatalogService) ListItems(ctx context.Context, itemType domain.ItemType) ([]domain.Item, error) {
	if !domain.ValidItemType(itemType) {
		return nil, domain.ErrInvalidItemType
	}
	return s.repo.ListItemsByType(ctx, itemType)
}

func (s *CatalogService) GetItem(ctx context.Context, itemType domain.ItemType, name string) (domain.Item, error) {
	if !domain.ValidItemType(itemType) {
		return domain.Item{}, domain.ErrInvalidItemType
	}
	return s.repo.GetItem(ctx, itemType, name)
}

// LockForPurchase loads an unsold item and takes its row lock without
// waiting, so a purchase blocked by another buyer fails fast with
// ErrAlreadyReserved instead of queueing behind them.
func (s *CatalogService) LockForPurchase(ctx context.Context, itemType domain.ItemType, name string) (domain.Item, error) {
	if !domain.ValidItemType(itemType) {
		return domain.Item{}, domain.ErrInvalidItemType
	}
	return s.repo.GetListedForUpdate(ctx, itemType, name)
}

// TransferOwnership moves the item to toOwner and marks it sold. The
// update is conditional on fromOwner still being the recorded owner;
// a stale read loses with ErrOwnershipMismatch.
func (s *CatalogService) TransferOwnership(ctx context.Context, itemID, fromOwner, toOwner string) error {
	if itemID == "" || fromOwner == "" || toOwner == "" {
		return domain.ErrInvalidID
	}
	return s.repo.UpdateOwnership(ctx, itemID, fromOwner, toOwner)
}

func (s *CatalogService) ListOwned(ctx context.Context, ownerID string) ([]domain.Item, error) {
	if ownerID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListItemsByOwner(ctx, ownerID)
}
