package repositories

import (
	"fmt"

	"github.com/giovaniif/cafeteria/domain/item"
	"github.com/shopspring/decimal"
)

// MenuRepository keeps the catalog in display order. Ids are always
// 1..n in that order.
type MenuRepository struct {
	items []item.Item
}

func NewMenuRepository(items []item.Item) *MenuRepository {
	r := &MenuRepository{}
	r.Replace(items)
	return r
}

func (r *MenuRepository) List() []item.Item {
	items := make([]item.Item, len(r.items))
	copy(items, r.items)
	return items
}

func (r *MenuRepository) GetItem(itemId int32) (item.Item, error) {
	index, err := r.indexOf(itemId)
	if err != nil {
		return item.Item{}, err
	}
	return r.items[index], nil
}

func (r *MenuRepository) Reserve(itemId int32, quantity int32) error {
	index, err := r.indexOf(itemId)
	if err != nil {
		return err
	}
	if err := r.items[index].RemoveStock(quantity); err != nil {
		return fmt.Errorf("reserve %d x %s: %w", quantity, r.items[index].Name, err)
	}
	return nil
}

func (r *MenuRepository) Release(itemId int32, quantity int32) error {
	index, err := r.indexOf(itemId)
	if err != nil {
		return err
	}
	if err := r.items[index].AddStock(quantity); err != nil {
		return fmt.Errorf("release %d x %s: %w", quantity, r.items[index].Name, err)
	}
	return nil
}

func (r *MenuRepository) Append(name string, price decimal.Decimal, quantity int32) (item.Item, error) {
	name = item.NormalizeName(name)
	if name == "" {
		return item.Item{}, item.ErrInvalidName
	}
	if !price.IsPositive() {
		return item.Item{}, item.ErrInvalidPrice
	}
	if quantity < 0 {
		return item.Item{}, item.ErrInvalidQuantity
	}
	if r.hasName(name, 0) {
		return item.Item{}, fmt.Errorf("%w: %s", item.ErrDuplicateName, name)
	}

	var maxId int32
	for _, existing := range r.items {
		maxId = max(maxId, existing.Id)
	}
	r.items = append(r.items, item.Item{
		Id:    maxId + 1,
		Name:  name,
		Price: price.Round(2),
		Stock: quantity,
	})
	item.Renumber(r.items)
	return r.items[len(r.items)-1], nil
}

func (r *MenuRepository) Update(itemId int32, update item.Update) (item.Item, error) {
	index, err := r.indexOf(itemId)
	if err != nil {
		return item.Item{}, err
	}
	updated, err := update.Apply(r.items[index])
	if err != nil {
		return r.items[index], err
	}
	if update.Field == item.FieldName && r.hasName(updated.Name, itemId) {
		return r.items[index], fmt.Errorf("%w: %s", item.ErrDuplicateName, updated.Name)
	}
	r.items[index] = updated
	return updated, nil
}

// Remove drops every listed id and renumbers the rest. Removed items are
// returned with the ids they had before removal.
func (r *MenuRepository) Remove(itemIds []int32) []item.Item {
	drop := make(map[int32]bool, len(itemIds))
	for _, id := range itemIds {
		drop[id] = true
	}

	var removed []item.Item
	kept := r.items[:0]
	for _, existing := range r.items {
		if drop[existing.Id] {
			removed = append(removed, existing)
			continue
		}
		kept = append(kept, existing)
	}
	r.items = item.Renumber(kept)
	return removed
}

func (r *MenuRepository) Clone() item.Repository {
	return NewMenuRepository(r.items)
}

func (r *MenuRepository) Replace(items []item.Item) {
	r.items = make([]item.Item, len(items))
	copy(r.items, items)
	item.Renumber(r.items)
}

func (r *MenuRepository) indexOf(itemId int32) (int, error) {
	index := int(itemId) - 1
	if index < 0 || index >= len(r.items) {
		return -1, fmt.Errorf("%w: %d", item.ErrItemNotFound, itemId)
	}
	return index, nil
}

func (r *MenuRepository) hasName(name string, exceptId int32) bool {
	for _, existing := range r.items {
		if existing.Id != exceptId && item.SameName(existing.Name, name) {
			return true
		}
	}
	return false
}
