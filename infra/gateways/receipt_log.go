package gateways

import (
	"context"
	"log/slog"

	"github.com/giovaniif/cafeteria/protocols"
)

// ReceiptLogPublisher writes receipts to the structured log. It is the
// default sink when no broker or database is configured.
type ReceiptLogPublisher struct {
	logger *slog.Logger
}

func NewReceiptLogPublisher(logger *slog.Logger) *ReceiptLogPublisher {
	return &ReceiptLogPublisher{logger: logger}
}

func (p *ReceiptLogPublisher) Publish(ctx context.Context, receipt protocols.Receipt) error {
	p.logger.InfoContext(ctx, "receipt published",
		"session_id", receipt.SessionId,
		"customer", receipt.Customer,
		"total_quantity", receipt.TotalQuantity,
		"total_price", receipt.TotalPrice,
		"lines", len(receipt.Lines),
	)
	return nil
}

func (p *ReceiptLogPublisher) Close() error { return nil }
