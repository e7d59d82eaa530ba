package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Prakshal-Jain/The-NFT-Club/internal/app"
	"github.com/Prakshal-Jain/The-NFT-Club/internal/domain"
)

// ItemCatalog is the minimal interface needed by the item endpoints.
type ItemCatalog interface {
	ListItems(ctx context.Context, itemType domain.ItemType) ([]domain.Item, error)
	CreateItem(ctx context.Context, in app.CreateItemInput) (domain.Item, error)
	GetItem(ctx context.Context, itemType domain.ItemType, name string) (domain.Item, error)
}

// HandleItems returns an HTTP handler for listing and creating items.
func HandleItems(svc ItemCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if _, ok := requireUser(w, r); !ok {
				return
			}

			itemType := domain.ItemType(r.URL.Query().Get("type"))
			if itemType == "" {
				itemType = domain.ItemTypeMarketplace
			}

			items, err := svc.ListItems(r.Context(), itemType)
			if err != nil {
				if err == domain.ErrInvalidItemType {
					writeError(w, http.StatusBadRequest, codeInvalidItemType, err.Error())
					return
				}
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}

			resp := make([]listingResponse, 0, len(items))
			for _, item := range items {
				resp = append(resp, projectListing(item))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			userID, ok := requireUser(w, r)
			if !ok {
				return
			}

			var req createItemRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			item, err := svc.CreateItem(r.Context(), app.CreateItemInput{
				Name:        req.Name,
				Type:        domain.ItemType(req.Type),
				Description: req.Description,
				Price:       req.Price,
				ImageRef:    req.ImageRef,
				OwnerID:     userID,
			})
			if err != nil {
				switch err {
				case domain.ErrItemNameRequired:
					writeError(w, http.StatusBadRequest, codeItemNameRequired, err.Error())
				case domain.ErrInvalidItemType:
					writeError(w, http.StatusBadRequest, codeInvalidItemType, err.Error())
				case domain.ErrInvalidPrice:
					writeError(w, http.StatusBadRequest, codeInvalidPrice, err.Error())
				case domain.ErrDuplicateItemName:
					writeError(w, http.StatusConflict, codeDuplicateItemName, err.Error())
				case domain.ErrUserNotFound, domain.ErrInvalidID:
					writeError(w, http.StatusNotFound, codeUserNotFound, domain.ErrUserNotFound.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(projectOwnedItem(item))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

// HandleItemDetail returns an HTTP handler for GET /items/{type}/{name}.
func HandleItemDetail(svc ItemCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		if _, ok := requireUser(w, r); !ok {
			return
		}

		itemType, name, ok := parseItemPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		item, err := svc.GetItem(r.Context(), domain.ItemType(itemType), name)
		if err != nil {
			switch err {
			case domain.ErrInvalidItemType:
				writeError(w, http.StatusBadRequest, codeInvalidItemType, err.Error())
			case domain.ErrItemNotFound:
				writeError(w, http.StatusNotFound, codeItemNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(projectListing(item))
	}
}

func parseItemPath(path string) (itemType, name string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "items" {
		return "", "", false
	}
	if parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

type createItemRequest struct {
	Name        string `json:"name"`
	Type        string `json:"item_type"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	ImageRef    string `json:"image_ref,omitempty"`
}

// listingResponse is the browsing projection: owner identity and
// internal ids never cross the trust boundary.
type listingResponse struct {
	Type         string `json:"item_type"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	ImageRef     string `json:"image_ref"`
	Availability string `json:"availability"`
}

func projectListing(item domain.Item) listingResponse {
	return listingResponse{
		Type:         string(item.Type),
		Name:         item.Name,
		Description:  item.Description,
		Price:        item.Price,
		ImageRef:     item.ImageRef,
		Availability: string(item.Availability),
	}
}

// ownedItemResponse is the owner-facing projection, used when the
// caller is the item's owner (creation, profile, purchase result).
type ownedItemResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"item_type"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	ImageRef     string    `json:"image_ref"`
	OwnerID      string    `json:"owner_id"`
	Availability string    `json:"availability"`
	CreatedAt    time.Time `json:"created_at"`
}

func projectOwnedItem(item domain.Item) ownedItemResponse {
	return ownedItemResponse{
		ID:           item.ID,
		Type:         string(item.Type),
		Name:         item.Name,
		Description:  item.Description,
		Price:        item.Price,
		ImageRef:     item.ImageRef,
		OwnerID:      item.OwnerID,
		Availability: string(item.Availability),
		CreatedAt:    item.CreatedAt,
	}
}
