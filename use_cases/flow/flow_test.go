package flow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/giovaniif/cafeteria/domain/cart"
	"github.com/giovaniif/cafeteria/domain/item"
	"github.com/giovaniif/cafeteria/infra/console"
	"github.com/giovaniif/cafeteria/infra/gateways"
	"github.com/giovaniif/cafeteria/infra/repositories"
	"github.com/giovaniif/cafeteria/protocols"
	"github.com/giovaniif/cafeteria/use_cases/admin"
	"github.com/giovaniif/cafeteria/use_cases/checkout"
	"github.com/giovaniif/cafeteria/use_cases/complete"
	"github.com/giovaniif/cafeteria/use_cases/release"
	"github.com/giovaniif/cafeteria/use_cases/reserve"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedPrompter struct {
	answers []string
	said    []string
	carts   []cart.Cart
}

func (s *scriptedPrompter) Ask(context.Context, string) (string, error) {
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

func (s *scriptedPrompter) Say(message string)         { s.said = append(s.said, message) }
func (s *scriptedPrompter) ShowMenu([]item.Item)       {}
func (s *scriptedPrompter) ShowCart(current cart.Cart) { s.carts = append(s.carts, current) }

type nopMetrics struct{}

func (nopMetrics) UnitsReserved(int32)        {}
func (nopMetrics) UnitsReleased(int32)        {}
func (nopMetrics) ItemSkipped(string)         {}
func (nopMetrics) CheckoutAttempt(bool)       {}
func (nopMetrics) AdminAuthentication(string) {}
func (nopMetrics) ReceiptPublished(string)    {}

type staticCredentials struct{}

func (staticCredentials) Load(context.Context) (protocols.Credentials, error) {
	return protocols.Credentials{Username: "Storm", Password: "woof"}, nil
}

type memoryPublisher struct {
	receipts []protocols.Receipt
}

func (m *memoryPublisher) Publish(_ context.Context, receipt protocols.Receipt) error {
	m.receipts = append(m.receipts, receipt)
	return nil
}

func (m *memoryPublisher) Close() error { return nil }

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newFlow(menu item.Repository, prompter *scriptedPrompter, publisher *memoryPublisher) *Flow {
	quantities := console.NewQuantities(prompter)
	editor := admin.NewEditor(prompter, prompter, discard)
	return NewFlow(
		prompter,
		prompter,
		menu,
		admin.NewAuthenticate(menu, staticCredentials{}, prompter, editor, nopMetrics{}, discard, admin.DefaultMaxAttempts),
		reserve.NewReserve(menu, quantities, nopMetrics{}, discard),
		release.NewRelease(menu, quantities, nopMetrics{}, discard),
		complete.NewComplete(discard),
		checkout.NewCheckout(prompter, gateways.NewReceiptIdempotencyMemory(), publisher, gateways.NewSleeper(), nopMetrics{}, discard),
		discard,
	)
}

func teaMenu() *repositories.MenuRepository {
	return repositories.NewMenuRepository([]item.Item{
		{Name: "Tea", Price: decimal.RequireFromString("1.50"), Stock: 4},
		{Name: "Barkie", Price: decimal.RequireFromString("0.80"), Stock: 10},
	})
}

func TestFlow_OrderAndPay(t *testing.T) {
	menu := teaMenu()
	prompter := &scriptedPrompter{answers: []string{
		"Alice1", "Alice",
		"1,2", "3", "2",
		"n", "remove", "2", "1",
		"y",
		"5.3", "6.10", "5.30",
	}}
	publisher := &memoryPublisher{}

	result, err := newFlow(menu, prompter, publisher).Run(context.Background(), cart.NewSession("s-1"))
	require.NoError(t, err)
	assert.True(t, result.Paid)
	assert.Equal(t, "Alice", result.Customer)
	require.NotNil(t, result.Receipt)
	assert.Equal(t, "5.30", result.Receipt.TotalPrice)
	assert.Equal(t, int32(4), result.Receipt.TotalQuantity)
	assert.Equal(t, cart.StatusCompleted, result.Session.Status)
	require.Len(t, publisher.receipts, 1)

	tea, _ := menu.GetItem(1)
	barkie, _ := menu.GetItem(2)
	assert.Equal(t, int32(1), tea.Stock)
	assert.Equal(t, int32(9), barkie.Stock)
}

func TestFlow_ReleaseEverythingEndsWithFarewell(t *testing.T) {
	menu := teaMenu()
	prompter := &scriptedPrompter{answers: []string{
		"Alice",
		"1", "3",
		"n", "Remove", "1", "3",
		"Y",
	}}

	result, err := newFlow(menu, prompter, &memoryPublisher{}).Run(context.Background(), cart.NewSession("s-1"))
	require.NoError(t, err)
	assert.False(t, result.Paid)
	assert.True(t, result.Session.Cart().IsEmpty())
	assert.Equal(t, "Your order is empty, so there is nothing to pay. Have a woofin day!", prompter.said[len(prompter.said)-1])

	tea, _ := menu.GetItem(1)
	assert.Equal(t, int32(4), tea.Stock)
}

func TestFlow_AdminEditsMenuBeforeOrdering(t *testing.T) {
	menu := teaMenu()
	prompter := &scriptedPrompter{answers: []string{
		"Storm", "woof",
		"remove", "1", "n",
		"1", "2",
		"y",
		"1.60",
	}}

	result, err := newFlow(menu, prompter, &memoryPublisher{}).Run(context.Background(), cart.NewSession("s-1"))
	require.NoError(t, err)
	assert.True(t, result.Paid)
	require.Len(t, menu.List(), 1)
	barkie, _ := menu.GetItem(1)
	assert.Equal(t, "Barkie", barkie.Name)
	assert.Equal(t, int32(8), barkie.Stock)
}

func TestFlow_DeniedAdminKeepsOrdering(t *testing.T) {
	menu := teaMenu()
	prompter := &scriptedPrompter{answers: []string{
		"Storm", "a", "b", "c",
		"2", "1",
		"y",
		"0.80",
	}}

	result, err := newFlow(menu, prompter, &memoryPublisher{}).Run(context.Background(), cart.NewSession("s-1"))
	require.NoError(t, err)
	assert.True(t, result.Paid)
	assert.Len(t, menu.List(), 2)
}

func TestFlow_ClosedInputStops(t *testing.T) {
	menu := teaMenu()
	prompter := &scriptedPrompter{answers: []string{"Alice", "1", "2"}}

	result, err := newFlow(menu, prompter, &memoryPublisher{}).Run(context.Background(), cart.NewSession("s-1"))
	assert.True(t, errors.Is(err, io.EOF))
	assert.False(t, result.Paid)
	assert.Equal(t, int32(2), result.Session.Cart().TotalQuantity)
}
