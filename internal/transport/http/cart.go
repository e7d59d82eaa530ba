package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
)

// CartManager is the minimal interface needed by the cart endpoints.
type CartManager interface {
	AddToCart(ctx context.Context, userID string, itemType domain.ItemType, itemName string) (domain.Item, error)
	RemoveFromCart(ctx context.Context, userID string, itemType domain.ItemType, itemName string) error
	ListCart(ctx context.Context, userID string) ([]domain.Item, error)
}

// HandleCart returns an HTTP handler for viewing the caller's cart.
func HandleCart(svc CartManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		items, err := svc.ListCart(r.Context(), userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := make([]listingResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, projectListing(item))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleCartAdd returns an HTTP handler for reserving an item into the
// caller's cart.
func HandleCartAdd(svc CartManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req cartItemRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		item, err := svc.AddToCart(r.Context(), userID, domain.ItemType(req.ItemType), req.ItemName)
		if err != nil {
			writeCartError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(projectListing(item))
	}
}

// HandleCartRemove returns an HTTP handler for
// DELETE /cart/items/{type}/{name}.
func HandleCartRemove(svc CartManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		itemType, name, ok := parseCartItemPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if err := svc.RemoveFromCart(r.Context(), userID, domain.ItemType(itemType), name); err != nil {
			writeCartError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeCartError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrInvalidItemType:
		writeError(w, http.StatusBadRequest, codeInvalidItemType, err.Error())
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case domain.ErrItemNotFound:
		writeError(w, http.StatusNotFound, codeItemNotFound, err.Error())
	case domain.ErrSelfPurchase:
		writeError(w, http.StatusForbidden, codeSelfPurchase, err.Error())
	case domain.ErrAlreadyReserved:
		writeError(w, http.StatusConflict, codeAlreadyReserved, err.Error())
	case domain.ErrAlreadyInCart:
		writeError(w, http.StatusConflict, codeAlreadyInCart, err.Error())
	case domain.ErrNotReserved:
		writeError(w, http.StatusNotFound, codeNotReserved, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func parseCartItemPath(path string) (itemType, name string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 4 || parts[0] != "cart" || parts[1] != "items" {
		return "", "", false
	}
	if parts[2] == "" || parts[3] == "" {
		return "", "", false
	}
	return parts[2], parts[3], true
}

type cartItemRequest struct {
	ItemType string `json:"item_type"`
	ItemName string `json:"item_name"`
}
