package repositories

import (
	"errors"
	"testing"

	"github.com/giovaniif/cafeteria/domain/item"
	"github.com/shopspring/decimal"
)

func newTestMenu() *MenuRepository {
	return NewMenuRepository([]item.Item{
		{Name: "Tea", Price: decimal.RequireFromString("1.50"), Stock: 4},
		{Name: "Barkie", Price: decimal.RequireFromString("0.80"), Stock: 0},
		{Name: "Paw Cake", Price: decimal.RequireFromString("3.20"), Stock: 10},
	})
}

func TestMenuRepository_AssignsDenseIds(t *testing.T) {
	repo := newTestMenu()
	for index, it := range repo.List() {
		if it.Id != int32(index+1) {
			t.Fatalf("expected id %d, got %d", index+1, it.Id)
		}
	}
}

func TestMenuRepository_GetItemNotFound(t *testing.T) {
	repo := newTestMenu()
	if _, err := repo.GetItem(9); !errors.Is(err, item.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if _, err := repo.GetItem(0); !errors.Is(err, item.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestMenuRepository_ReserveAndRelease(t *testing.T) {
	repo := newTestMenu()
	if err := repo.Reserve(1, 3); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := repo.Reserve(1, 2); !errors.Is(err, item.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if err := repo.Release(1, 2); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	tea, _ := repo.GetItem(1)
	if tea.Stock != 3 {
		t.Fatalf("expected stock 3, got %d", tea.Stock)
	}
}

func TestMenuRepository_Append(t *testing.T) {
	repo := newTestMenu()

	added, err := repo.Append("  green tea ", decimal.RequireFromString("2.5"), 6)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if added.Id != 4 || added.Name != "Green Tea" || added.FormattedPrice() != "2.50" {
		t.Fatalf("unexpected item: %+v", added)
	}

	if _, err := repo.Append("TEA", decimal.RequireFromString("1"), 1); !errors.Is(err, item.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := repo.Append("Soup", decimal.Zero, 1); !errors.Is(err, item.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	if _, err := repo.Append("Soup", decimal.RequireFromString("1"), -1); !errors.Is(err, item.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if len(repo.List()) != 4 {
		t.Fatalf("expected 4 items, got %d", len(repo.List()))
	}
}

func TestMenuRepository_UpdateRejectsDuplicateName(t *testing.T) {
	repo := newTestMenu()
	if _, err := repo.Update(2, item.SetName("paw cake")); !errors.Is(err, item.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	updated, err := repo.Update(2, item.SetStock(7))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Stock != 7 || updated.Name != "Barkie" {
		t.Fatalf("unexpected item: %+v", updated)
	}
}

func TestMenuRepository_RemoveRenumbers(t *testing.T) {
	repo := newTestMenu()
	removed := repo.Remove([]int32{1, 2, 2})
	if len(removed) != 2 || removed[0].Name != "Tea" || removed[1].Name != "Barkie" {
		t.Fatalf("unexpected removed items: %+v", removed)
	}
	items := repo.List()
	if len(items) != 1 || items[0].Id != 1 || items[0].Name != "Paw Cake" {
		t.Fatalf("unexpected remaining items: %+v", items)
	}
}

func TestMenuRepository_CloneIsDeep(t *testing.T) {
	repo := newTestMenu()
	clone := repo.Clone()
	if err := clone.Reserve(1, 4); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	clone.Remove([]int32{3})

	tea, _ := repo.GetItem(1)
	if tea.Stock != 4 || len(repo.List()) != 3 {
		t.Fatalf("clone mutated the original: %+v", repo.List())
	}

	repo.Replace(clone.List())
	tea, _ = repo.GetItem(1)
	if tea.Stock != 0 || len(repo.List()) != 2 {
		t.Fatalf("replace did not commit the clone: %+v", repo.List())
	}
}
