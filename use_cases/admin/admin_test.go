package admin

import (
	"context"
	"io"
	"log/slog"

	"github.com/giovaniif/cafeteria/domain/cart"
	"github.com/giovaniif/cafeteria/domain/item"
	"github.com/giovaniif/cafeteria/protocols"
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

type nopPresenter struct{ menus int }

func (p *nopPresenter) ShowMenu([]item.Item) { p.menus++ }
func (p *nopPresenter) ShowCart(cart.Cart)   {}

type mockCredentials struct {
	credentials protocols.Credentials
	err         error
}

func (m *mockCredentials) Load(context.Context) (protocols.Credentials, error) {
	return m.credentials, m.err
}

type mockMetrics struct {
	outcomes []string
}

func (m *mockMetrics) UnitsReserved(int32)     {}
func (m *mockMetrics) UnitsReleased(int32)     {}
func (m *mockMetrics) ItemSkipped(string)      {}
func (m *mockMetrics) CheckoutAttempt(bool)    {}
func (m *mockMetrics) ReceiptPublished(string) {}
func (m *mockMetrics) AdminAuthentication(outcome string) {
	m.outcomes = append(m.outcomes, outcome)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))
