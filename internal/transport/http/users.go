package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/app"
	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
)

// UserAccounts is the minimal interface needed by the user endpoints.
type UserAccounts interface {
	Register(ctx context.Context, in app.RegisterInput) (domain.User, error)
	Profile(ctx context.Context, userID string) (app.ProfileResult, error)
	Sales(ctx context.Context, userID string) ([]domain.Trade, error)
}

// HandleRegister returns an HTTP handler for creating a user account.
// Registration is the trust boundary with the authentication
// collaborator, which is why it takes no identity header.
func HandleRegister(svc UserAccounts) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req registerRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		user, err := svc.Register(r.Context(), app.RegisterInput{
			Name:            req.Name,
			StartingBalance: req.StartingBalance,
		})
		if err != nil {
			switch err {
			case domain.ErrUserNameRequired:
				writeError(w, http.StatusBadRequest, codeUserNameRequired, err.Error())
			case domain.ErrInvalidBalance:
				writeError(w, http.StatusBadRequest, codeInvalidBalance, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(userResponse{
			ID:      user.ID,
			Name:    user.Name,
			Balance: user.Balance,
		})
	}
}

// HandleProfile returns an HTTP handler for GET /users/me.
func HandleProfile(svc UserAccounts) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		profile, err := svc.Profile(r.Context(), userID)
		if err != nil {
			switch err {
			case domain.ErrUserNotFound, domain.ErrInvalidID:
				writeError(w, http.StatusNotFound, codeUserNotFound, domain.ErrUserNotFound.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		owned := make([]ownedItemResponse, 0, len(profile.OwnedItems))
		for _, item := range profile.OwnedItems {
			owned = append(owned, projectOwnedItem(item))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(profileResponse{
			User: userResponse{
				ID:      profile.User.ID,
				Name:    profile.User.Name,
				Balance: profile.User.Balance,
			},
			OwnedItems: owned,
		})
	}
}

// HandleSales returns an HTTP handler for GET /users/me/sales.
func HandleSales(svc UserAccounts) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		trades, err := svc.Sales(r.Context(), userID)
		if err != nil {
			switch err {
			case domain.ErrUserNotFound, domain.ErrInvalidID:
				writeError(w, http.StatusNotFound, codeUserNotFound, domain.ErrUserNotFound.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := make([]tradeResponse, 0, len(trades))
		for _, t := range trades {
			resp = append(resp, tradeResponse{
				ID:        t.ID,
				ItemID:    t.ItemID,
				BuyerID:   t.BuyerID,
				Price:     t.Price,
				CreatedAt: t.CreatedAt,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type registerRequest struct {
	Name            string `json:"name"`
	StartingBalance int64  `json:"starting_balance,omitempty"`
}

type userResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

type profileResponse struct {
	User       userResponse        `json:"user"`
	OwnedItems []ownedItemResponse `json:"owned_items"`
}

type tradeResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	BuyerID   string    `json:"buyer_id"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}
