package app

import (
	"context"
	"errors"
	"log"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/clock"
	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
)

// Catalog is the slice of the item catalog the exchange engine needs.
type Catalog interface {
	LockForPurchase(ctx context.Context, itemType domain.ItemType, name string) (domain.Item, error)
	TransferOwnership(ctx context.Context, itemID, fromOwner, toOwner string) error
}

// Ledger is the slice of the account ledger the exchange engine needs.
type Ledger interface {
	Balance(ctx context.Context, userID string) (int64, error)
	Transfer(ctx context.Context, fromUserID, toUserID string, amount int64) error
}

// Carts is the slice of the cart reservation manager the exchange
// engine needs.
type Carts interface {
	AddToCart(ctx context.Context, userID string, itemType domain.ItemType, itemName string) (domain.Item, error)
	RemoveFromCart(ctx context.Context, userID string, itemType domain.ItemType, itemName string) error
	Settle(ctx context.Context, userID, itemID string) error
}

type TradeRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	RecordTrade(ctx context.Context, trade domain.Trade) error
}

// ExchangeService orchestrates a purchase: validate, reserve, move
// funds, transfer ownership, settle. The whole protocol runs inside one
// database transaction, so the item row lock taken at validation is
// held through settlement and any failure leaves no partial state.
type ExchangeService struct {
	repo    TradeRepository
	catalog Catalog
	ledger  Ledger
	carts   Carts
	clock   clock.Clock
	logger  *log.Logger
}

func NewExchangeService(repo TradeRepository, catalog Catalog, ledger Ledger, carts Carts, clk clock.Clock, logger *log.Logger) *ExchangeService {
	if logger == nil {
		logger = log.Default()
	}
	return &ExchangeService{
		repo:    repo,
		catalog: catalog,
		ledger:  ledger,
		carts:   carts,
		clock:   clk,
		logger:  logger,
	}
}

type PurchaseInput struct {
	BuyerID  string
	ItemType domain.ItemType
	ItemName string
}

func (s *ExchangeService) Purchase(ctx context.Context, in PurchaseInput) (domain.Item, error) {
	if in.BuyerID == "" {
		return domain.Item{}, domain.ErrInvalidID
	}
	if !domain.ValidItemType(in.ItemType) {
		return domain.Item{}, domain.ErrInvalidItemType
	}

	var result domain.Item
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		item, err := s.catalog.LockForPurchase(txCtx, in.ItemType, in.ItemName)
		if err != nil {
			return err
		}
		seller := item.OwnerID
		if seller == in.BuyerID {
			return domain.ErrSelfPurchase
		}

		balance, err := s.ledger.Balance(txCtx, in.BuyerID)
		if err != nil {
			return err
		}
		if balance < item.Price {
			return domain.ErrInsufficientFunds
		}

		// Reservation is the enforcement point for buyer races: first
		// reservation wins, not first payment. No effects have landed
		// yet, so a failure here fails the purchase as-is.
		if _, err := s.carts.AddToCart(txCtx, in.BuyerID, in.ItemType, in.ItemName); err != nil {
			return err
		}

		if err := s.ledger.Transfer(txCtx, in.BuyerID, seller, item.Price); err != nil {
			// Funds moved under us since validation. Release the
			// reservation so nothing keeps the item promised to a
			// buyer who cannot pay.
			if errors.Is(err, domain.ErrInsufficientFunds) {
				if relErr := s.carts.RemoveFromCart(txCtx, in.BuyerID, in.ItemType, in.ItemName); relErr != nil {
					s.logger.Printf("WARN: release reservation after failed transfer: %v", relErr)
				}
			}
			return err
		}

		if err := s.catalog.TransferOwnership(txCtx, item.ID, seller, in.BuyerID); err != nil {
			if errors.Is(err, domain.ErrOwnershipMismatch) {
				// Another transfer completed first. Reverse the funds
				// and report a retryable conflict.
				if revErr := s.ledger.Transfer(txCtx, seller, in.BuyerID, item.Price); revErr != nil {
					s.logger.Printf("WARN: reverse transfer after ownership mismatch: %v", revErr)
				}
				return domain.ErrConcurrentConflict
			}
			return err
		}

		if err := s.carts.Settle(txCtx, in.BuyerID, item.ID); err != nil {
			return err
		}

		trade := domain.Trade{
			ID:        newID(),
			ItemID:    item.ID,
			SellerID:  seller,
			BuyerID:   in.BuyerID,
			Price:     item.Price,
			CreatedAt: s.clock.Now(),
		}
		if err := s.repo.RecordTrade(txCtx, trade); err != nil {
			return err
		}

		item.OwnerID = in.BuyerID
		item.Availability = domain.AvailabilitySold
		result = item
		return nil
	})
	if err != nil {
		return domain.Item{}, err
	}
	return result, nil
}
