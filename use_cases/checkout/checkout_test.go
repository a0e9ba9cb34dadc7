package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/giovaniif/cafeteria/domain/cart"
	"github.com/giovaniif/cafeteria/domain/item"
	"github.com/giovaniif/cafeteria/infra"
	"github.com/giovaniif/cafeteria/infra/gateways"
	"github.com/giovaniif/cafeteria/protocols"
	"github.com/shopspring/decimal"
)

type mockPrompter struct {
	answers []string
	asked   []string
	said    []string
}

func (m *mockPrompter) Ask(_ context.Context, question string) (string, error) {
	m.asked = append(m.asked, question)
	if len(m.answers) == 0 {
		return "", io.EOF
	}
	answer := m.answers[0]
	m.answers = m.answers[1:]
	return answer, nil
}

func (m *mockPrompter) Say(message string) {
	m.said = append(m.said, message)
}

type mockPublisher struct {
	errs      []error
	published []protocols.Receipt
	calls     int
}

func (m *mockPublisher) Publish(_ context.Context, receipt protocols.Receipt) error {
	m.calls++
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		if err != nil {
			return err
		}
	}
	m.published = append(m.published, receipt)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

type mockSleeper struct {
	slept []time.Duration
}

func (m *mockSleeper) Sleep(duration time.Duration) {
	m.slept = append(m.slept, duration)
}

type mockMetrics struct {
	attempts []bool
	receipts []string
}

func (m *mockMetrics) UnitsReserved(int32)        {}
func (m *mockMetrics) UnitsReleased(int32)        {}
func (m *mockMetrics) ItemSkipped(string)         {}
func (m *mockMetrics) CheckoutAttempt(ok bool)    { m.attempts = append(m.attempts, ok) }
func (m *mockMetrics) AdminAuthentication(string) {}
func (m *mockMetrics) ReceiptPublished(outcome string) {
	m.receipts = append(m.receipts, outcome)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// sessionTotalling builds a session whose total is 12.50.
func sessionTotalling() *cart.Session {
	session := cart.NewSession("session-1")
	_, _ = session.Hold(item.Item{Id: 1, Name: "Paw Cake", Price: decimal.RequireFromString("6.25"), Stock: 10}, 2)
	return session
}

func newCheckout(prompter *mockPrompter, publisher *mockPublisher, sleeper *mockSleeper, metrics *mockMetrics) *Checkout {
	uc := NewCheckout(prompter, gateways.NewReceiptIdempotencyMemory(), publisher, sleeper, metrics, discard)
	uc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return uc
}

func TestCheckout_RequiresTwoDecimalPlaces(t *testing.T) {
	prompter := &mockPrompter{answers: []string{"12.5", "12.00", "12.50"}}
	publisher := &mockPublisher{}
	metrics := &mockMetrics{}
	uc := newCheckout(prompter, publisher, &mockSleeper{}, metrics)

	out, err := uc.Checkout(context.Background(), Input{Session: sessionTotalling(), Customer: "Alice"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !out.Paid {
		t.Fatalf("expected payment to be accepted")
	}
	if len(prompter.asked) != 3 {
		t.Fatalf("expected 3 payment prompts, got %d", len(prompter.asked))
	}
	if len(metrics.attempts) != 3 || metrics.attempts[0] || metrics.attempts[1] || !metrics.attempts[2] {
		t.Fatalf("unexpected attempts: %v", metrics.attempts)
	}
	if out.Receipt.TotalPrice != "12.50" || out.Receipt.Lines[0].Subtotal != "12.50" {
		t.Fatalf("unexpected receipt: %+v", out.Receipt)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected receipt to be published once, got %d", len(publisher.published))
	}
}

func TestCheckout_EmptyCartSkipsPayment(t *testing.T) {
	prompter := &mockPrompter{}
	publisher := &mockPublisher{}
	uc := newCheckout(prompter, publisher, &mockSleeper{}, &mockMetrics{})

	out, err := uc.Checkout(context.Background(), Input{Session: cart.NewSession("s")})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if out.Paid || len(prompter.asked) != 0 {
		t.Fatalf("expected no payment prompt, got %v", prompter.asked)
	}
	if len(prompter.said) != 1 || prompter.said[0] != emptyCartMessage {
		t.Fatalf("expected farewell, got %v", prompter.said)
	}
	if publisher.calls != 0 {
		t.Fatalf("expected no receipt for an empty cart")
	}
}

func TestCheckout_InputErrorIsReturned(t *testing.T) {
	prompter := &mockPrompter{answers: []string{"1.00"}}
	uc := newCheckout(prompter, &mockPublisher{}, &mockSleeper{}, &mockMetrics{})

	_, err := uc.Checkout(context.Background(), Input{Session: sessionTotalling()})
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestCheckout_RetriesReceiptDelivery(t *testing.T) {
	prompter := &mockPrompter{answers: []string{"12.50"}}
	publisher := &mockPublisher{errs: []error{infra.NewNetworkError("broker down"), infra.NewTimeoutError("slow")}}
	sleeper := &mockSleeper{}
	metrics := &mockMetrics{}
	uc := newCheckout(prompter, publisher, sleeper, metrics)

	out, err := uc.Checkout(context.Background(), Input{Session: sessionTotalling()})
	if err != nil || !out.Paid {
		t.Fatalf("expected paid checkout, got %v / %v", out, err)
	}
	if publisher.calls != 3 {
		t.Fatalf("expected 3 publish calls, got %d", publisher.calls)
	}
	if len(sleeper.slept) != 2 || sleeper.slept[0] != BASE_DELAY || sleeper.slept[1] != 2*BASE_DELAY {
		t.Fatalf("unexpected backoff: %v", sleeper.slept)
	}
	if len(metrics.receipts) != 1 || metrics.receipts[0] != "success" {
		t.Fatalf("unexpected receipt metrics: %v", metrics.receipts)
	}
}

func TestCheckout_PublishFailureKeepsPayment(t *testing.T) {
	prompter := &mockPrompter{answers: []string{"12.50"}}
	publisher := &mockPublisher{errs: []error{errors.New("schema mismatch")}}
	sleeper := &mockSleeper{}
	uc := newCheckout(prompter, publisher, sleeper, &mockMetrics{})

	out, err := uc.Checkout(context.Background(), Input{Session: sessionTotalling()})
	if err != nil || !out.Paid {
		t.Fatalf("expected paid checkout, got %v / %v", out, err)
	}
	if publisher.calls != 1 || len(sleeper.slept) != 0 {
		t.Fatalf("expected no retry for a permanent error, got %d calls", publisher.calls)
	}
}

func TestRetryWithBackoff_GivesUp(t *testing.T) {
	calls := 0
	sleeper := &mockSleeper{}
	operation := func() error {
		calls++
		return infra.NewNetworkError("down")
	}

	err := RetryWithBackoff(operation, sleeper, discard)()
	if !errors.Is(err, infra.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if calls != MAX_RETRIES {
		t.Fatalf("expected %d calls, got %d", MAX_RETRIES, calls)
	}
	if len(sleeper.slept) != MAX_RETRIES-1 {
		t.Fatalf("expected %d sleeps, got %d", MAX_RETRIES-1, len(sleeper.slept))
	}
}
