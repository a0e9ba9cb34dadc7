package item

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Item struct {
	Id    int32
	Name  string
	Price decimal.Decimal
	Stock int32
}

func (i *Item) RemoveStock(quantity int32) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > i.Stock {
		return ErrInsufficientStock
	}
	i.Stock -= quantity
	return nil
}

func (i *Item) AddStock(quantity int32) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	i.Stock += quantity
	return nil
}

func (i Item) FormattedPrice() string {
	return FormatPrice(i.Price)
}

// FormatPrice renders an amount with exactly two decimal places, e.g. "12.50".
func FormatPrice(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

var titleCaser = cases.Title(language.English)

// NormalizeName trims a name, collapses inner whitespace and title-cases it.
func NormalizeName(name string) string {
	return titleCaser.String(strings.Join(strings.Fields(name), " "))
}

// SameName compares two names the way the catalog checks uniqueness.
func SameName(a, b string) bool {
	return strings.EqualFold(NormalizeName(a), NormalizeName(b))
}

// Renumber assigns Id = position+1 in current order.
func Renumber(items []Item) []Item {
	for index := range items {
		items[index].Id = int32(index + 1)
	}
	return items
}

func Seed() []Item {
	return []Item{
		{Id: 1, Name: "Waggy Woofin", Price: decimal.RequireFromString("2.50"), Stock: 10},
		{Id: 2, Name: "Paw Cake", Price: decimal.RequireFromString("3.20"), Stock: 10},
		{Id: 3, Name: "Cheeky Cheese Paw", Price: decimal.RequireFromString("1.80"), Stock: 10},
		{Id: 4, Name: "Barky Bacon Stick", Price: decimal.RequireFromString("2.00"), Stock: 10},
		{Id: 5, Name: "Sonny's Soup", Price: decimal.RequireFromString("1.40"), Stock: 10},
		{Id: 6, Name: "Alfie's Apple Tart", Price: decimal.RequireFromString("2.50"), Stock: 10},
		{Id: 7, Name: "Barkie", Price: decimal.RequireFromString("0.80"), Stock: 10},
		{Id: 8, Name: "Storm's Special Chicken Stew", Price: decimal.RequireFromString("4.20"), Stock: 10},
	}
}
