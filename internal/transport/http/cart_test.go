package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
)

type stubCart struct {
	items     []domain.Item
	item      domain.Item
	addErr    error
	removeErr error
	listErr   error

	gotUserID string
	gotType   domain.ItemType
	gotName   string
}

func (s *stubCart) AddToCart(_ context.Context, userID string, itemType domain.ItemType, itemName string) (domain.Item, error) {
	s.gotUserID = userID
	s.gotType = itemType
	s.gotName = itemName
	if s.addErr != nil {
		return domain.Item{}, s.addErr
	}
	return s.item, nil
}

func (s *stubCart) RemoveFromCart(_ context.Context, userID string, itemType domain.ItemType, itemName string) error {
	s.gotUserID = userID
	s.gotType = itemType
	s.gotName = itemName
	return s.removeErr
}

func (s *stubCart) ListCart(_ context.Context, userID string) ([]domain.Item, error) {
	s.gotUserID = userID
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.items, nil
}

func TestHandleCart(t *testing.T) {
	t.Parallel()

	reserved := domain.Item{
		ID:           "i1",
		Type:         domain.ItemTypeMarketplace,
		Name:         "Sword",
		Price:        40,
		OwnerID:      "user-a",
		Availability: domain.AvailabilityReserved,
	}

	t.Run("success", func(t *testing.T) {
		svc := &stubCart{items: []domain.Item{reserved}}

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set(userIDHeader, "user-b")
		rec := httptest.NewRecorder()

		HandleCart(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d (body %s)", rec.Code, rec.Body.String())
		}
		if svc.gotUserID != "user-b" {
			t.Fatalf("expected user from identity header, got %q", svc.gotUserID)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `"availability":"reserved"`) {
			t.Fatalf("expected reserved item in body, got %s", body)
		}
		if strings.Contains(body, "owner_id") {
			t.Fatalf("cart view must not expose owner, got %s", body)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set(userIDHeader, "user-b")
		rec := httptest.NewRecorder()

		HandleCart(&stubCart{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Fatalf("expected empty array, got %s", got)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		rec := httptest.NewRecorder()

		HandleCart(&stubCart{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})
}

func TestHandleCartAdd(t *testing.T) {
	t.Parallel()

	reserved := domain.Item{
		ID:           "i1",
		Type:         domain.ItemTypeMarketplace,
		Name:         "Sword",
		Price:        40,
		OwnerID:      "user-a",
		Availability: domain.AvailabilityReserved,
	}

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "success",
			body:           `{"item_type":"marketplace","item_name":"Sword"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid json",
			body:           `{"item_type":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   codeInvalidRequestBody,
		},
		{
			name:           "invalid type",
			body:           `{"item_type":"raffle","item_name":"Sword"}`,
			serviceErr:     domain.ErrInvalidItemType,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   codeInvalidItemType,
		},
		{
			name:           "item not found",
			body:           `{"item_type":"marketplace","item_name":"Ghost"}`,
			serviceErr:     domain.ErrItemNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   codeItemNotFound,
		},
		{
			name:           "own item",
			body:           `{"item_type":"marketplace","item_name":"Sword"}`,
			serviceErr:     domain.ErrSelfPurchase,
			expectedStatus: http.StatusForbidden,
			expectedCode:   codeSelfPurchase,
		},
		{
			name:           "reserved by someone else",
			body:           `{"item_type":"marketplace","item_name":"Sword"}`,
			serviceErr:     domain.ErrAlreadyReserved,
			expectedStatus: http.StatusConflict,
			expectedCode:   codeAlreadyReserved,
		},
		{
			name:           "already in own cart",
			body:           `{"item_type":"marketplace","item_name":"Sword"}`,
			serviceErr:     domain.ErrAlreadyInCart,
			expectedStatus: http.StatusConflict,
			expectedCode:   codeAlreadyInCart,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubCart{item: reserved, addErr: tc.serviceErr}

			req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(tc.body))
			req.Header.Set(userIDHeader, "user-b")
			rec := httptest.NewRecorder()

			HandleCartAdd(svc).ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tc.expectedStatus, rec.Code, rec.Body.String())
			}
			if tc.expectedCode != "" && !strings.Contains(rec.Body.String(), tc.expectedCode) {
				t.Fatalf("expected code %q in body, got %s", tc.expectedCode, rec.Body.String())
			}
			if tc.expectedStatus == http.StatusCreated && svc.gotName != "Sword" {
				t.Fatalf("expected item name from body, got %q", svc.gotName)
			}
		})
	}
}

func TestHandleCartRemove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		path           string
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "success",
			path:           "/cart/items/marketplace/Sword",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "not in cart",
			path:           "/cart/items/marketplace/Sword",
			serviceErr:     domain.ErrNotReserved,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "held by someone else",
			path:           "/cart/items/marketplace/Sword",
			serviceErr:     domain.ErrNotReserved,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed path",
			path:           "/cart/items/marketplace",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubCart{removeErr: tc.serviceErr}

			req := httptest.NewRequest(http.MethodDelete, tc.path, nil)
			req.Header.Set(userIDHeader, "user-b")
			rec := httptest.NewRecorder()

			HandleCartRemove(svc).ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tc.expectedStatus, rec.Code, rec.Body.String())
			}
			if tc.expectedStatus == http.StatusNoContent {
				if svc.gotType != domain.ItemTypeMarketplace || svc.gotName != "Sword" {
					t.Fatalf("expected item from path, got %q %q", svc.gotType, svc.gotName)
				}
			}
		})
	}
}
