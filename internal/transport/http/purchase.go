package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/app"
	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
)

// Purchaser is the minimal interface needed by the purchase endpoint.
type Purchaser interface {
	Purchase(ctx context.Context, in app.PurchaseInput) (domain.Item, error)
}

// HandlePurchase returns an HTTP handler for buying an item.
func HandlePurchase(svc Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		buyerID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req purchaseRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		item, err := svc.Purchase(r.Context(), app.PurchaseInput{
			BuyerID:  buyerID,
			ItemType: domain.ItemType(req.ItemType),
			ItemName: req.ItemName,
		})
		if err != nil {
			writePurchaseError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(projectOwnedItem(item))
	}
}

func writePurchaseError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrInvalidItemType:
		writeError(w, http.StatusBadRequest, codeInvalidItemType, err.Error())
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case domain.ErrItemNotFound:
		writeError(w, http.StatusNotFound, codeItemNotFound, err.Error())
	case domain.ErrUserNotFound:
		writeError(w, http.StatusNotFound, codeUserNotFound, err.Error())
	case domain.ErrSelfPurchase:
		writeError(w, http.StatusForbidden, codeSelfPurchase, err.Error())
	case domain.ErrInsufficientFunds:
		writeError(w, http.StatusPaymentRequired, codeInsufficientFunds, err.Error())
	case domain.ErrAlreadyReserved:
		writeError(w, http.StatusConflict, codeAlreadyReserved, err.Error())
	case domain.ErrAlreadyInCart:
		writeError(w, http.StatusConflict, codeAlreadyInCart, err.Error())
	case domain.ErrConcurrentConflict:
		writeError(w, http.StatusConflict, codeConcurrentConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

type purchaseRequest struct {
	ItemType string `json:"item_type"`
	ItemName string `json:"item_name"`
}
