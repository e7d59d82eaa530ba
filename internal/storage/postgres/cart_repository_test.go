package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
	"github.com/Prakshal-Jain/The-NFT-Club/internal/testutil"
	"github.com/google/uuid"
)

func TestCartRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewCartRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("GetItemForUpdate still finds sold items", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		ownerID := testutil.InsertUser(t, ctx, pool, "alice", 100)
		itemID := testutil.InsertItem(t, ctx, pool, domain.Item{
			Type: domain.ItemTypeMarketplace, Name: "Sword", Price: 40, OwnerID: ownerID,
			Availability: domain.AvailabilitySold,
		})

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			item, err := repo.GetItemForUpdate(txCtx, domain.ItemTypeMarketplace, "Sword")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if item.ID != itemID || item.Availability != domain.AvailabilitySold {
				t.Fatalf("unexpected item: %+v", item)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("tx failed: %v", err)
		}

		if _, err := repo.GetItemForUpdate(ctx, domain.ItemTypeMarketplace, "Ghost"); err != domain.ErrItemNotFound {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("FindReservationByItem returns nil when absent", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		ownerID := testutil.InsertUser(t, ctx, pool, "alice", 100)
		buyerID := testutil.InsertUser(t, ctx, pool, "bob", 100)
		itemID := testutil.InsertItem(t, ctx, pool, domain.Item{
			Type: domain.ItemTypeMarketplace, Name: "Sword", Price: 40, OwnerID: ownerID,
		})

		res, err := repo.FindReservationByItem(ctx, itemID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res != nil {
			t.Fatalf("expected nil, got %+v", res)
		}

		resID := testutil.InsertReservation(t, ctx, pool, itemID, buyerID)
		res, err = repo.FindReservationByItem(ctx, itemID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res == nil || res.ID != resID || res.UserID != buyerID {
			t.Fatalf("unexpected reservation: %+v", res)
		}
	})

	t.Run("CreateReservation admits exactly one holder per item", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		ownerID := testutil.InsertUser(t, ctx, pool, "alice", 100)
		itemID := testutil.InsertItem(t, ctx, pool, domain.Item{
			Type: domain.ItemTypeMarketplace, Name: "Sword", Price: 40, OwnerID: ownerID,
		})

		const buyers = 8
		var wg sync.WaitGroup
		errs := make([]error, buyers)
		for i := 0; i < buyers; i++ {
			buyerID := testutil.InsertUser(t, ctx, pool, "buyer-"+uuid.NewString(), 100)
			wg.Add(1)
			go func(i int, buyerID string) {
				defer wg.Done()
				errs[i] = repo.CreateReservation(ctx, domain.Reservation{
					ID:        uuid.NewString(),
					ItemID:    itemID,
					UserID:    buyerID,
					CreatedAt: time.Now().UTC(),
				})
			}(i, buyerID)
		}
		wg.Wait()

		var winners, losers int
		for _, err := range errs {
			switch err {
			case nil:
				winners++
			case domain.ErrAlreadyReserved:
				losers++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if winners != 1 || losers != buyers-1 {
			t.Fatalf("expected exactly one winner, got %d winners and %d losers", winners, losers)
		}
	})

	t.Run("CreateReservation rejects unknown item", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		buyerID := testutil.InsertUser(t, ctx, pool, "bob", 100)

		err := repo.CreateReservation(ctx, domain.Reservation{
			ID:        uuid.NewString(),
			ItemID:    uuid.NewString(),
			UserID:    buyerID,
			CreatedAt: time.Now().UTC(),
		})
		if err != domain.ErrItemNotFound {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("DeleteReservation requires the holder", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		ownerID := testutil.InsertUser(t, ctx, pool, "alice", 100)
		buyerID := testutil.InsertUser(t, ctx, pool, "bob", 100)
		otherID := testutil.InsertUser(t, ctx, pool, "carol", 100)
		itemID := testutil.InsertItem(t, ctx, pool, domain.Item{
			Type: domain.ItemTypeMarketplace, Name: "Sword", Price: 40, OwnerID: ownerID,
		})
		testutil.InsertReservation(t, ctx, pool, itemID, buyerID)

		if err := repo.DeleteReservation(ctx, otherID, itemID); err != domain.ErrNotReserved {
			t.Fatalf("expected ErrNotReserved for non-holder, got %v", err)
		}
		if err := repo.DeleteReservation(ctx, buyerID, itemID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := repo.DeleteReservation(ctx, buyerID, itemID); err != domain.ErrNotReserved {
			t.Fatalf("expected ErrNotReserved after delete, got %v", err)
		}
	})

	t.Run("SetAvailability updates the item row", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		ownerID := testutil.InsertUser(t, ctx, pool, "alice", 100)
		itemID := testutil.InsertItem(t, ctx, pool, domain.Item{
			Type: domain.ItemTypeMarketplace, Name: "Sword", Price: 40, OwnerID: ownerID,
		})

		if err := repo.SetAvailability(ctx, itemID, domain.AvailabilityReserved); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var availability string
		if err := pool.QueryRow(ctx, "SELECT availability FROM items WHERE id = $1", itemID).Scan(&availability); err != nil {
			t.Fatalf("query availability: %v", err)
		}
		if availability != string(domain.AvailabilityReserved) {
			t.Fatalf("expected reserved, got %s", availability)
		}

		if err := repo.SetAvailability(ctx, uuid.NewString(), domain.AvailabilityListed); err != domain.ErrItemNotFound {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("ListCartItems returns the holder's reservations in order", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		ownerID := testutil.InsertUser(t, ctx, pool, "alice", 100)
		buyerID := testutil.InsertUser(t, ctx, pool, "bob", 100)
		otherID := testutil.InsertUser(t, ctx, pool, "carol", 100)

		swordID := testutil.InsertItem(t, ctx, pool, domain.Item{
			Type: domain.ItemTypeMarketplace, Name: "Sword", Price: 40, OwnerID: ownerID,
			Availability: domain.AvailabilityReserved,
		})
		shieldID := testutil.InsertItem(t, ctx, pool, domain.Item{
			Type: domain.ItemTypeMarketplace, Name: "Shield", Price: 25, OwnerID: ownerID,
			Availability: domain.AvailabilityReserved,
		})
		crownID := testutil.InsertItem(t, ctx, pool, domain.Item{
			Type: domain.ItemTypeAuction, Name: "Crown", Price: 120, OwnerID: ownerID,
			Availability: domain.AvailabilityReserved,
		})
		testutil.InsertReservation(t, ctx, pool, swordID, buyerID)
		testutil.InsertReservation(t, ctx, pool, shieldID, buyerID)
		testutil.InsertReservation(t, ctx, pool, crownID, otherID)

		items, err := repo.ListCartItems(ctx, buyerID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 cart items, got %+v", items)
		}
		if items[0].Name != "Sword" || items[1].Name != "Shield" {
			t.Fatalf("expected reservation order, got %+v", items)
		}
	})
}
