package item

import "errors"

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateName     = errors.New("an item with that name already exists")
	ErrInvalidName       = errors.New("item name cannot be empty")
	ErrInvalidPrice      = errors.New("price must be greater than zero")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrUnchangedValue    = errors.New("new value equals the current value")
)
