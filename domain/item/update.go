package item

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Field int

const (
	FieldSkip Field = iota
	FieldName
	FieldPrice
	FieldStock
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldPrice:
		return "price"
	case FieldStock:
		return "stock"
	default:
		return "skip"
	}
}

// Update changes at most one field of an item. Only the value matching
// Field is read.
type Update struct {
	Field Field
	Name  string
	Price decimal.Decimal
	Stock int32
}

func Skip() Update {
	return Update{Field: FieldSkip}
}

func SetName(name string) Update {
	return Update{Field: FieldName, Name: name}
}

func SetPrice(price decimal.Decimal) Update {
	return Update{Field: FieldPrice, Price: price}
}

func SetStock(stock int32) Update {
	return Update{Field: FieldStock, Stock: stock}
}

func (u Update) IsSkip() bool {
	return u.Field == FieldSkip
}

// Apply returns a copy of target with the update applied. Uniqueness of
// names is a catalog concern and is not checked here.
func (u Update) Apply(target Item) (Item, error) {
	switch u.Field {
	case FieldSkip:
		return target, nil
	case FieldName:
		name := NormalizeName(u.Name)
		if name == "" {
			return target, ErrInvalidName
		}
		if name == target.Name {
			return target, ErrUnchangedValue
		}
		target.Name = name
	case FieldPrice:
		if !u.Price.IsPositive() {
			return target, ErrInvalidPrice
		}
		price := u.Price.Round(2)
		if price.Equal(target.Price) {
			return target, ErrUnchangedValue
		}
		target.Price = price
	case FieldStock:
		if u.Stock < 0 {
			return target, ErrInvalidQuantity
		}
		if u.Stock == target.Stock {
			return target, ErrUnchangedValue
		}
		target.Stock = u.Stock
	default:
		return target, fmt.Errorf("unknown update field %d", u.Field)
	}
	return target, nil
}
