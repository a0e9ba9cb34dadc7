package reserve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/giovaniif/cafeteria/domain/cart"
	"github.com/giovaniif/cafeteria/domain/item"
	"github.com/giovaniif/cafeteria/protocols"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("cafeteria/reserve")

type Reserve struct {
	catalog    item.Repository
	quantities protocols.QuantityPrompter
	metrics    protocols.Metrics
	logger     *slog.Logger
}

func NewReserve(catalog item.Repository, quantities protocols.QuantityPrompter, metrics protocols.Metrics, logger *slog.Logger) *Reserve {
	return &Reserve{
		catalog:    catalog,
		quantities: quantities,
		metrics:    metrics,
		logger:     logger,
	}
}

// Reserve asks a quantity for every selected item and moves it from the
// catalog into the session. The batch runs against copies of both; the
// catalog is only written back once every item has been handled. On error
// the input session is returned untouched.
func (r *Reserve) Reserve(ctx context.Context, input Input) (Output, error) {
	ctx, span := tracer.Start(ctx, "reserve.batch")
	defer span.End()
	span.SetAttributes(attribute.Int("items.selected", len(input.ItemIds)))

	draft := r.catalog.Clone()
	session := input.Session.Clone()
	var skipped []Skip
	var units int32

	skip := func(itemId int32, reason error, message string) {
		skipped = append(skipped, Skip{ItemId: itemId, Reason: reason})
		r.metrics.ItemSkipped(skipReason(reason))
		r.logger.DebugContext(ctx, "item skipped", "item_id", itemId, "reason", reason)
		r.quantities.Notify(message)
	}

	for _, itemId := range input.ItemIds {
		menuItem, err := draft.GetItem(itemId)
		if err != nil {
			skip(itemId, err, fmt.Sprintf("Sorry, there is no item with id %d on the menu.", itemId))
			continue
		}
		if menuItem.Stock == 0 {
			skip(itemId, item.ErrInsufficientStock, fmt.Sprintf("Sorry, %s is out of stock.", menuItem.Name))
			continue
		}

		quantity, err := r.quantities.OrderQuantity(ctx, menuItem)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "quantity prompt failed")
			return Output{Session: input.Session}, fmt.Errorf("order quantity for %s: %w", menuItem.Name, err)
		}

		if err := draft.Reserve(itemId, quantity); err != nil {
			skip(itemId, err, "Sorry you have tried to order more than we have in stock.")
			continue
		}
		if _, err := session.Hold(menuItem, quantity); err != nil {
			_ = draft.Release(itemId, quantity)
			skip(itemId, err, fmt.Sprintf("Sorry, %s could not be added to your order.", menuItem.Name))
			continue
		}

		units += quantity
		r.logger.DebugContext(ctx, "item reserved", "item_id", itemId, "quantity", quantity)
	}

	r.catalog.Replace(draft.List())
	r.metrics.UnitsReserved(units)
	span.SetAttributes(attribute.Int("units.reserved", int(units)), attribute.Int("items.skipped", len(skipped)))

	return Output{
		Session: session,
		Cart:    session.Cart(),
		Skipped: skipped,
	}, nil
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, item.ErrItemNotFound):
		return "not_found"
	case errors.Is(err, item.ErrInsufficientStock):
		return "out_of_stock"
	default:
		return "invalid"
	}
}

type Input struct {
	Session *cart.Session
	ItemIds []int32
}

type Output struct {
	Session *cart.Session
	Cart    cart.Cart
	Skipped []Skip
}

type Skip struct {
	ItemId int32
	Reason error
}
