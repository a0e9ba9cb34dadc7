package protocols

import (
	"context"

	"github.com/giovaniif/cafeteria/domain/cart"
	"github.com/giovaniif/cafeteria/domain/item"
)

type Prompter interface {
	Ask(ctx context.Context, question string) (string, error)
	Say(message string)
}

// QuantityPrompter asks until it gets a quantity the caller can act on:
// 1..stock when ordering, 1..held when releasing.
type QuantityPrompter interface {
	OrderQuantity(ctx context.Context, menuItem item.Item) (int32, error)
	ReleaseQuantity(ctx context.Context, entry cart.Entry) (int32, error)
	Notify(message string)
}

type Presenter interface {
	ShowMenu(items []item.Item)
	ShowCart(current cart.Cart)
}
