package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/giovaniif/cafeteria/domain/cart"
	"github.com/giovaniif/cafeteria/domain/item"
	"github.com/giovaniif/cafeteria/infra"
	"github.com/giovaniif/cafeteria/infra/validators"
	"github.com/giovaniif/cafeteria/protocols"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var (
	MAX_RETRIES = 5
	BASE_DELAY  = 1 * time.Second
)

var tracer = otel.Tracer("cafeteria/checkout")

const (
	emptyCartMessage = "Your order is empty, so there is nothing to pay. Have a woofin day!"
	amountMessage    = "Please enter the amount on screen to complete your purchase."
	formatMessage    = "Please enter the price exactly as shown, with two decimal places."
	mismatchMessage  = "What you have entered does not match the amount due. Please try again."
	thankYouMessage  = "Thank you for your order, have a woofin day!"
)

type Checkout struct {
	prompter    protocols.Prompter
	idempotency protocols.ReceiptIdempotencyGateway
	publisher   protocols.ReceiptPublisher
	sleeper     protocols.Sleeper
	metrics     protocols.Metrics
	logger      *slog.Logger
	now         func() time.Time
}

func NewCheckout(prompter protocols.Prompter, idempotency protocols.ReceiptIdempotencyGateway, publisher protocols.ReceiptPublisher, sleeper protocols.Sleeper, metrics protocols.Metrics, logger *slog.Logger) *Checkout {
	return &Checkout{
		prompter:    prompter,
		idempotency: idempotency,
		publisher:   publisher,
		sleeper:     sleeper,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Checkout asks for the cart total until the customer types it exactly as
// displayed. An empty cart ends with a farewell and no payment prompt.
// Receipt delivery failures are logged and never undo a confirmed payment.
func (c *Checkout) Checkout(ctx context.Context, input Input) (Output, error) {
	ctx, span := tracer.Start(ctx, "checkout")
	defer span.End()

	current := input.Session.Cart()
	if current.IsEmpty() {
		c.prompter.Say(emptyCartMessage)
		return Output{}, nil
	}

	due := current.FormattedTotal()
	span.SetAttributes(attribute.String("amount.due", due))
	for {
		c.prompter.Say(fmt.Sprintf("That's great, %s. Your total is £%s", input.Customer, due))
		answer, err := c.prompter.Ask(ctx, amountMessage)
		if err != nil {
			return Output{}, fmt.Errorf("read payment: %w", err)
		}
		if !validators.IsAmount(answer) {
			c.metrics.CheckoutAttempt(false)
			c.prompter.Say(formatMessage)
			continue
		}
		if answer != due {
			c.metrics.CheckoutAttempt(false)
			c.prompter.Say(mismatchMessage)
			continue
		}
		break
	}

	c.metrics.CheckoutAttempt(true)
	c.prompter.Say(thankYouMessage)

	receipt := NewReceipt(input.Session.Id, input.Customer, current, c.now())
	if err := c.deliver(ctx, receipt); err != nil {
		span.RecordError(err)
		c.logger.ErrorContext(ctx, "receipt delivery failed", "session_id", receipt.SessionId, "error", err)
	}

	return Output{Paid: true, Receipt: &receipt}, nil
}

func (c *Checkout) deliver(ctx context.Context, receipt protocols.Receipt) error {
	result, err := c.idempotency.ReserveIdempotencyKey(ctx, receipt.SessionId)
	if err != nil {
		c.metrics.ReceiptPublished("error")
		return err
	}
	if result != nil {
		c.metrics.ReceiptPublished("duplicate")
		return nil
	}

	success := false
	defer func() {
		if success {
			_ = c.idempotency.MarkSuccess(ctx, receipt.SessionId)
		} else {
			_ = c.idempotency.MarkFailure(ctx, receipt.SessionId)
		}
	}()

	publish := func() error {
		return c.publisher.Publish(ctx, receipt)
	}
	if err := RetryWithBackoff(publish, c.sleeper, c.logger)(); err != nil {
		c.metrics.ReceiptPublished("error")
		return err
	}

	success = true
	c.metrics.ReceiptPublished("success")
	return nil
}

type RetryFunc func() error

// RetryWithBackoff retries retriable failures up to MAX_RETRIES times,
// doubling the delay each attempt. Other errors return immediately.
func RetryWithBackoff(operation RetryFunc, sleeper protocols.Sleeper, logger *slog.Logger) RetryFunc {
	return func() error {
		var lastError error

		for i := 0; i < MAX_RETRIES; i++ {
			err := operation()
			if err == nil {
				return nil
			}
			if !infra.IsRetriable(err) {
				return err
			}
			lastError = err
			if i == MAX_RETRIES-1 {
				break
			}

			delay := time.Duration(math.Pow(2, float64(i))) * BASE_DELAY
			logger.Warn("retrying operation", "attempt", i+1, "delay", delay, "error", err)
			sleeper.Sleep(delay)
		}

		return lastError
	}
}

func NewReceipt(sessionId, customer string, paid cart.Cart, paidAt time.Time) protocols.Receipt {
	lines := make([]protocols.ReceiptLine, 0, len(paid.Items))
	for _, entry := range paid.Items {
		lines = append(lines, protocols.ReceiptLine{
			ItemId:    entry.ItemId,
			Name:      entry.Name,
			UnitPrice: item.FormatPrice(entry.UnitPrice),
			Quantity:  entry.HeldQuantity,
			Subtotal:  item.FormatPrice(entry.Subtotal()),
		})
	}
	return protocols.Receipt{
		SessionId:     sessionId,
		Customer:      customer,
		Lines:         lines,
		TotalQuantity: paid.TotalQuantity,
		TotalPrice:    paid.FormattedTotal(),
		PaidAt:        paidAt.UTC(),
	}
}

type Input struct {
	Session  *cart.Session
	Customer string
}

type Output struct {
	Paid    bool
	Receipt *protocols.Receipt
}
