package console

import (
	"context"
	"fmt"

	"github.com/giovaniif/cafeteria/domain/cart"
	"github.com/giovaniif/cafeteria/domain/item"
	"github.com/giovaniif/cafeteria/infra/validators"
	"github.com/giovaniif/cafeteria/protocols"
)

const notNumber = "You didn't enter a number. Please try again."

// Quantities re-prompts until the answer is a usable quantity.
type Quantities struct {
	prompter protocols.Prompter
}

func NewQuantities(prompter protocols.Prompter) *Quantities {
	return &Quantities{prompter: prompter}
}

func (q *Quantities) OrderQuantity(ctx context.Context, menuItem item.Item) (int32, error) {
	return q.ask(ctx, fmt.Sprintf("How many %s would you like to order?", menuItem.Name), func(quantity int32) string {
		if quantity > menuItem.Stock {
			return fmt.Sprintf("Sorry you have tried to order more than we have in stock. There are %d %s left.", menuItem.Stock, menuItem.Name)
		}
		return ""
	})
}

func (q *Quantities) ReleaseQuantity(ctx context.Context, entry cart.Entry) (int32, error) {
	return q.ask(ctx, fmt.Sprintf("How many %s would you like to remove?", entry.Name), func(quantity int32) string {
		if quantity > entry.HeldQuantity {
			return fmt.Sprintf("You only have %d x %s in your order.", entry.HeldQuantity, entry.Name)
		}
		return ""
	})
}

func (q *Quantities) Notify(message string) {
	q.prompter.Say(message)
}

func (q *Quantities) ask(ctx context.Context, question string, tooMany func(int32) string) (int32, error) {
	for {
		answer, err := q.prompter.Ask(ctx, question)
		if err != nil {
			return 0, err
		}
		quantity, ok := validators.ParseCount(answer)
		if !ok {
			q.prompter.Say(notNumber)
			continue
		}
		if quantity == 0 {
			q.prompter.Say("Please enter a quantity of at least 1.")
			continue
		}
		if message := tooMany(quantity); message != "" {
			q.prompter.Say(message)
			continue
		}
		return quantity, nil
	}
}
