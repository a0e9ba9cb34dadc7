package item

import "github.com/shopspring/decimal"

type Reader interface {
	List() []Item
	GetItem(itemId int32) (Item, error)
}

// Stock is the slice of the catalog the ordering use cases need.
type Stock interface {
	Reader
	Reserve(itemId int32, quantity int32) error
	Release(itemId int32, quantity int32) error
}

type Repository interface {
	Stock
	Append(name string, price decimal.Decimal, quantity int32) (Item, error)
	Update(itemId int32, update Update) (Item, error)
	Remove(itemIds []int32) []Item
	Clone() Repository
	Replace(items []Item)
}
