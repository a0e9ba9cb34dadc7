package protocols

import (
	"context"
	"time"
)

type ReceiptLine struct {
	ItemId    int32  `json:"item_id" bson:"item_id"`
	Name      string `json:"name" bson:"name"`
	UnitPrice string `json:"unit_price" bson:"unit_price"`
	Quantity  int32  `json:"quantity" bson:"quantity"`
	Subtotal  string `json:"subtotal" bson:"subtotal"`
}

type Receipt struct {
	SessionId     string        `json:"session_id" bson:"_id"`
	Customer      string        `json:"customer" bson:"customer"`
	Lines         []ReceiptLine `json:"lines" bson:"lines"`
	TotalQuantity int32         `json:"total_quantity" bson:"total_quantity"`
	TotalPrice    string        `json:"total_price" bson:"total_price"`
	PaidAt        time.Time     `json:"paid_at" bson:"paid_at"`
}

type ReceiptPublisher interface {
	Publish(ctx context.Context, receipt Receipt) error
	Close() error
}

type IdempotencyKeyResult struct {
	Success bool
	Error   error
}

// ReceiptIdempotencyGateway guards against publishing the same session's
// receipt twice.
type ReceiptIdempotencyGateway interface {
	ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) (*IdempotencyKeyResult, error)
	MarkFailure(ctx context.Context, idempotencyKey string) error
	MarkSuccess(ctx context.Context, idempotencyKey string) error
}
