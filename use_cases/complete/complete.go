package complete

import (
	"context"
	"log/slog"

	"github.com/giovaniif/cafeteria/domain/cart"
)

type Complete struct {
	logger *slog.Logger
}

func NewComplete(logger *slog.Logger) *Complete {
	return &Complete{logger: logger}
}

// Complete closes a paid session. Held units stay out of the catalog.
func (c *Complete) Complete(ctx context.Context, session *cart.Session) (cart.Cart, error) {
	final, err := session.Complete()
	if err != nil {
		return cart.Cart{}, err
	}
	c.logger.InfoContext(ctx, "order completed",
		"session_id", session.Id,
		"total_quantity", final.TotalQuantity,
		"total_price", final.FormattedTotal(),
	)
	return final, nil
}
