package domain

import "errors"

var (
	ErrItemNotFound       = errors.New("item not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidItemType    = errors.New("invalid item type")
	ErrDuplicateItemName  = errors.New("an item with this name already exists for this type")
	ErrItemNameRequired   = errors.New("item name required")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrSelfPurchase       = errors.New("buying your own item is not allowed")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAlreadyReserved    = errors.New("item is reserved by another cart")
	ErrAlreadyInCart      = errors.New("item already in your cart")
	ErrNotReserved        = errors.New("item is not in your cart")
	ErrOwnershipMismatch  = errors.New("item owner changed")
	ErrConcurrentConflict = errors.New("purchase conflicted with a concurrent transfer")
	ErrUserNameRequired   = errors.New("user name required")
	ErrInvalidBalance     = errors.New("invalid starting balance")
	ErrInvalidAmount      = errors.New("invalid transfer amount")
	ErrSameAccount        = errors.New("transfer to the same account")
	ErrInvalidID          = errors.New("invalid id")
)
