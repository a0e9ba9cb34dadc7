package cart

import (
	"errors"
	"sort"

	"github.com/giovaniif/cafeteria/domain/item"
)

var (
	ErrNotReserved      = errors.New("item is not in the cart")
	ErrOverRelease      = errors.New("cannot release more than is held")
	ErrSessionCompleted = errors.New("order session already completed")
)

type Status string

const (
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
)

// Session is one customer's order. An item id is in the reserved set
// exactly when the session holds an entry for it.
type Session struct {
	Id     string
	Status Status

	reserved map[int32]struct{}
	entries  []Entry
	cart     Cart
}

func NewSession(id string) *Session {
	return &Session{
		Id:       id,
		Status:   StatusOpen,
		reserved: map[int32]struct{}{},
		cart:     New(nil),
	}
}

func (s *Session) IsReserved(itemId int32) bool {
	_, ok := s.reserved[itemId]
	return ok
}

func (s *Session) ReservedIds() []int32 {
	ids := make([]int32, 0, len(s.reserved))
	for id := range s.reserved {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Session) Entry(itemId int32) (Entry, bool) {
	index := s.indexOf(itemId)
	if index < 0 {
		return Entry{}, false
	}
	return s.entries[index], true
}

// Entries returns held entries in the order they were first reserved.
func (s *Session) Entries() []Entry {
	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

func (s *Session) Cart() Cart {
	return s.cart
}

// Hold adds quantity units of menuItem to the session, creating the entry
// on first reservation. Catalog stock is not touched.
func (s *Session) Hold(menuItem item.Item, quantity int32) (Entry, error) {
	if s.Status == StatusCompleted {
		return Entry{}, ErrSessionCompleted
	}
	if quantity <= 0 {
		return Entry{}, item.ErrInvalidQuantity
	}

	index := s.indexOf(menuItem.Id)
	if index < 0 {
		s.reserved[menuItem.Id] = struct{}{}
		s.entries = append(s.entries, Entry{
			ItemId:       menuItem.Id,
			Name:         menuItem.Name,
			UnitPrice:    menuItem.Price,
			HeldQuantity: quantity,
		})
		index = len(s.entries) - 1
	} else {
		s.entries[index].HeldQuantity += quantity
	}

	s.recompute()
	return s.entries[index], nil
}

// Drop gives back quantity held units. An entry reaching zero leaves the
// session, and an emptied session starts over with an empty reserved set.
func (s *Session) Drop(itemId int32, quantity int32) (Entry, error) {
	if s.Status == StatusCompleted {
		return Entry{}, ErrSessionCompleted
	}
	index := s.indexOf(itemId)
	if index < 0 {
		return Entry{}, ErrNotReserved
	}
	if quantity <= 0 {
		return Entry{}, item.ErrInvalidQuantity
	}
	if quantity > s.entries[index].HeldQuantity {
		return Entry{}, ErrOverRelease
	}

	s.entries[index].HeldQuantity -= quantity
	updated := s.entries[index]
	if updated.HeldQuantity == 0 {
		delete(s.reserved, itemId)
		s.entries = append(s.entries[:index], s.entries[index+1:]...)
	}
	if len(s.entries) == 0 {
		s.reserved = map[int32]struct{}{}
	}

	s.recompute()
	return updated, nil
}

// Complete marks the order as paid and returns the final cart. Held units
// stay sold.
func (s *Session) Complete() (Cart, error) {
	if s.Status == StatusCompleted {
		return Cart{}, ErrSessionCompleted
	}
	final := s.cart
	s.Status = StatusCompleted
	s.reserved = map[int32]struct{}{}
	s.entries = nil
	s.cart = New(nil)
	return final, nil
}

func (s *Session) Clone() *Session {
	clone := &Session{
		Id:       s.Id,
		Status:   s.Status,
		reserved: make(map[int32]struct{}, len(s.reserved)),
		entries:  s.Entries(),
	}
	for id := range s.reserved {
		clone.reserved[id] = struct{}{}
	}
	clone.recompute()
	return clone
}

func (s *Session) indexOf(itemId int32) int {
	for index, entry := range s.entries {
		if entry.ItemId == itemId {
			return index
		}
	}
	return -1
}

func (s *Session) recompute() {
	s.cart = New(s.entries)
}
