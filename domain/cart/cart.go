package cart

import (
	"sort"

	"github.com/giovaniif/cafeteria/domain/item"
	"github.com/shopspring/decimal"
)

type Entry struct {
	ItemId       int32
	Name         string
	UnitPrice    decimal.Decimal
	HeldQuantity int32
}

func (e Entry) Subtotal() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt32(e.HeldQuantity))
}

// Cart is a derived view of a session: entries sorted by item id with
// totals computed from them.
type Cart struct {
	Items         []Entry
	TotalQuantity int32
	TotalPrice    decimal.Decimal
}

func New(entries []Entry) Cart {
	items := make([]Entry, len(entries))
	copy(items, entries)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ItemId < items[j].ItemId
	})

	result := Cart{Items: items, TotalPrice: decimal.Zero}
	for _, entry := range items {
		result.TotalQuantity += entry.HeldQuantity
		result.TotalPrice = result.TotalPrice.Add(entry.Subtotal())
	}
	return result
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) FormattedTotal() string {
	return item.FormatPrice(c.TotalPrice)
}

func (c Cart) ItemIds() []int32 {
	ids := make([]int32, 0, len(c.Items))
	for _, entry := range c.Items {
		ids = append(ids, entry.ItemId)
	}
	return ids
}
