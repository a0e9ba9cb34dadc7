package release

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/giovaniif/cafeteria/domain/cart"
	"github.com/giovaniif/cafeteria/domain/item"
	"github.com/giovaniif/cafeteria/protocols"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("cafeteria/release")

type Release struct {
	catalog    item.Repository
	quantities protocols.QuantityPrompter
	metrics    protocols.Metrics
	logger     *slog.Logger
}

func NewRelease(catalog item.Repository, quantities protocols.QuantityPrompter, metrics protocols.Metrics, logger *slog.Logger) *Release {
	return &Release{
		catalog:    catalog,
		quantities: quantities,
		metrics:    metrics,
		logger:     logger,
	}
}

// Release gives held units back to the catalog. Like Reserve it works on
// copies and commits the catalog at the end of the batch.
func (r *Release) Release(ctx context.Context, input Input) (Output, error) {
	ctx, span := tracer.Start(ctx, "release.batch")
	defer span.End()
	span.SetAttributes(attribute.Int("items.selected", len(input.ItemIds)))

	draft := r.catalog.Clone()
	session := input.Session.Clone()
	var skipped []int32
	var units int32

	for _, itemId := range input.ItemIds {
		entry, ok := session.Entry(itemId)
		if !ok {
			skipped = append(skipped, itemId)
			r.quantities.Notify(fmt.Sprintf("Item %d is not in your order.", itemId))
			continue
		}

		quantity, err := r.quantities.ReleaseQuantity(ctx, entry)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "quantity prompt failed")
			return Output{Session: input.Session}, fmt.Errorf("release quantity for %s: %w", entry.Name, err)
		}
		if quantity <= 0 || quantity > entry.HeldQuantity {
			skipped = append(skipped, itemId)
			r.quantities.Notify(fmt.Sprintf("You only have %d x %s in your order.", entry.HeldQuantity, entry.Name))
			continue
		}

		if err := draft.Release(itemId, quantity); err != nil {
			skipped = append(skipped, itemId)
			r.logger.WarnContext(ctx, "release rejected by catalog", "item_id", itemId, "error", err)
			continue
		}
		updated, err := session.Drop(itemId, quantity)
		if err != nil {
			_ = draft.Reserve(itemId, quantity)
			skipped = append(skipped, itemId)
			r.logger.WarnContext(ctx, "release rejected by session", "item_id", itemId, "error", err)
			continue
		}

		units += quantity
		if updated.HeldQuantity == 0 {
			r.quantities.Notify(fmt.Sprintf("%s has been removed from your order.", entry.Name))
		} else {
			r.quantities.Notify(fmt.Sprintf("You now have %d x %s in your order.", updated.HeldQuantity, entry.Name))
		}
	}

	r.catalog.Replace(draft.List())
	r.metrics.UnitsReleased(units)
	span.SetAttributes(attribute.Int("units.released", int(units)))

	return Output{
		Session: session,
		Cart:    session.Cart(),
		Skipped: skipped,
	}, nil
}

type Input struct {
	Session *cart.Session
	ItemIds []int32
}

type Output struct {
	Session *cart.Session
	Cart    cart.Cart
	Skipped []int32
}
