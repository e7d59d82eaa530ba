package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeUnauthenticated    = "unauthenticated"
	codeInvalidItemType    = "invalid_item_type"
	codeItemNameRequired   = "item_name_required"
	codeInvalidPrice       = "invalid_price"
	codeDuplicateItemName  = "duplicate_item_name"
	codeItemNotFound       = "item_not_found"
	codeUserNotFound       = "user_not_found"
	codeSelfPurchase       = "self_purchase"
	codeInsufficientFunds  = "insufficient_funds"
	codeAlreadyReserved    = "already_reserved"
	codeAlreadyInCart      = "already_in_cart"
	codeNotReserved        = "not_reserved"
	codeConcurrentConflict = "concurrent_conflict"
	codeUserNameRequired   = "user_name_required"
	codeInvalidBalance     = "invalid_balance"
	codeInvalidID          = "invalid_id"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}
