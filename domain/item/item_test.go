package item

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRemoveStock(t *testing.T) {
	it := Item{Id: 1, Name: "Barkie", Stock: 5}
	if err := it.RemoveStock(3); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if it.Stock != 2 {
		t.Errorf("Expected stock to be 2, got %d", it.Stock)
	}
	if err := it.RemoveStock(3); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
	if it.Stock != 2 {
		t.Errorf("Expected stock to stay 2 after a failed removal, got %d", it.Stock)
	}
	if err := it.RemoveStock(0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestAddStock(t *testing.T) {
	it := Item{Stock: 0}
	if err := it.AddStock(4); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if it.Stock != 4 {
		t.Errorf("Expected stock to be 4, got %d", it.Stock)
	}
	if err := it.AddStock(-1); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := map[string]string{
		"12.5":  "12.50",
		"0.8":   "0.80",
		"4":     "4.00",
		"1.005": "1.01",
	}
	for in, want := range cases {
		if got := FormatPrice(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatPrice(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  green   tea "); got != "Green Tea" {
		t.Errorf("expected Green Tea, got %q", got)
	}
	if !SameName("green tea", "GREEN TEA") {
		t.Errorf("expected names to match case-insensitively")
	}
}

func TestRenumber(t *testing.T) {
	items := Renumber([]Item{{Id: 4}, {Id: 9}, {Id: 2}})
	for index, it := range items {
		if it.Id != int32(index+1) {
			t.Fatalf("expected id %d at position %d, got %d", index+1, index, it.Id)
		}
	}
}

func TestSeed(t *testing.T) {
	items := Seed()
	if len(items) != 8 {
		t.Fatalf("expected 8 seed items, got %d", len(items))
	}
	for index, it := range items {
		if it.Id != int32(index+1) || it.Stock != 10 || !it.Price.IsPositive() {
			t.Errorf("unexpected seed item: %+v", it)
		}
	}
}

func TestUpdateApply(t *testing.T) {
	base := Item{Id: 1, Name: "Barkie", Price: decimal.RequireFromString("0.80"), Stock: 10}

	tests := []struct {
		name    string
		update  Update
		wantErr error
		check   func(Item) bool
	}{
		{"skip", Skip(), nil, func(it Item) bool { return it == base }},
		{"rename", SetName("tea"), nil, func(it Item) bool { return it.Name == "Tea" }},
		{"same name", SetName("barkie"), ErrUnchangedValue, nil},
		{"blank name", SetName("   "), ErrInvalidName, nil},
		{"new price", SetPrice(decimal.RequireFromString("1.2")), nil, func(it Item) bool { return it.Price.Equal(decimal.RequireFromString("1.20")) }},
		{"zero price", SetPrice(decimal.Zero), ErrInvalidPrice, nil},
		{"same price", SetPrice(decimal.RequireFromString("0.8")), ErrUnchangedValue, nil},
		{"new stock", SetStock(0), nil, func(it Item) bool { return it.Stock == 0 }},
		{"negative stock", SetStock(-2), ErrInvalidQuantity, nil},
		{"same stock", SetStock(10), ErrUnchangedValue, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.update.Apply(base)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if !tt.check(got) {
				t.Fatalf("unexpected result: %+v", got)
			}
		})
	}
}
