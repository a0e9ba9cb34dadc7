package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/giovaniif/cafeteria/domain/cart"
	"github.com/giovaniif/cafeteria/domain/item"
	"github.com/giovaniif/cafeteria/infra/validators"
	"github.com/giovaniif/cafeteria/protocols"
	"github.com/giovaniif/cafeteria/use_cases/admin"
	"github.com/giovaniif/cafeteria/use_cases/checkout"
	"github.com/giovaniif/cafeteria/use_cases/release"
	"github.com/giovaniif/cafeteria/use_cases/reserve"
)

const (
	welcomeMessage   = "🐶 Welcome to Storm's Woofeteria! 🐶"
	nameQuestion     = "What is your name?"
	invalidName      = "Hmm, that didn't quite hit the bark. Please use letters only."
	orderQuestion    = "Please enter the id(s) of the item(s) you would like to order, separated by commas:"
	removeQuestion   = "Please enter the id(s) of the item(s) you would like to remove, separated by commas:"
	invalidIds       = "Please enter valid item ids separated by commas, e.g. 1,3"
	finishedQuestion = "Are you finished with your order? (Y/N)"
	changeQuestion   = "Would you like to Add or Remove items?"
	emptyCart        = "Your order is empty, there is nothing to remove."
)

type Authenticator interface {
	Authenticate(ctx context.Context, input admin.Input) (admin.Output, error)
}

type Reserver interface {
	Reserve(ctx context.Context, input reserve.Input) (reserve.Output, error)
}

type Releaser interface {
	Release(ctx context.Context, input release.Input) (release.Output, error)
}

type Completer interface {
	Complete(ctx context.Context, session *cart.Session) (cart.Cart, error)
}

type CheckoutGate interface {
	Checkout(ctx context.Context, input checkout.Input) (checkout.Output, error)
}

type Flow struct {
	prompter  protocols.Prompter
	presenter protocols.Presenter
	catalog   item.Repository
	admin     Authenticator
	reserve   Reserver
	release   Releaser
	complete  Completer
	checkout  CheckoutGate
	logger    *slog.Logger
}

func NewFlow(prompter protocols.Prompter, presenter protocols.Presenter, catalog item.Repository, admin Authenticator, reserve Reserver, release Releaser, complete Completer, checkout CheckoutGate, logger *slog.Logger) *Flow {
	return &Flow{
		prompter:  prompter,
		presenter: presenter,
		catalog:   catalog,
		admin:     admin,
		reserve:   reserve,
		release:   release,
		complete:  complete,
		checkout:  checkout,
		logger:    logger,
	}
}

// Run drives one customer from greeting to checkout. Input errors, such as
// a closed stdin, end the run and are returned.
func (f *Flow) Run(ctx context.Context, session *cart.Session) (Result, error) {
	f.prompter.Say(welcomeMessage)
	customer, err := f.askName(ctx)
	if err != nil {
		return Result{Session: session}, err
	}
	f.logger.DebugContext(ctx, "customer arrived", "customer", customer)

	out, err := f.admin.Authenticate(ctx, admin.Input{Username: customer})
	switch {
	case errors.Is(err, admin.ErrAuthorizationDenied):
		// carries on as a regular customer
	case err != nil && out.Authorized:
		return Result{Session: session, Customer: customer}, err
	case err != nil:
		f.logger.WarnContext(ctx, "admin check failed, continuing as customer", "error", err)
	case out.Authorized && out.Catalog != nil:
		f.catalog.Replace(out.Catalog.List())
	}

	f.prompter.Say(fmt.Sprintf("Hi %s! Here is what Chef Storm has to offer today:", customer))
	if session, err = f.order(ctx, session); err != nil {
		return Result{Session: session, Customer: customer}, err
	}

	for {
		finished, err := f.askYesNo(ctx, finishedQuestion)
		if err != nil {
			return Result{Session: session, Customer: customer}, err
		}
		if finished {
			break
		}

		f.prompter.Say("Here is your current order:")
		f.presenter.ShowCart(session.Cart())
		answer, err := f.askChoice(ctx, changeQuestion, "Add", "Remove")
		if err != nil {
			return Result{Session: session, Customer: customer}, err
		}
		if answer == "Add" {
			session, err = f.order(ctx, session)
		} else {
			session, err = f.remove(ctx, session)
		}
		if err != nil {
			return Result{Session: session, Customer: customer}, err
		}
	}

	f.presenter.ShowCart(session.Cart())
	paid, err := f.checkout.Checkout(ctx, checkout.Input{Session: session, Customer: customer})
	if err != nil {
		return Result{Session: session, Customer: customer}, err
	}
	if paid.Paid {
		if _, err := f.complete.Complete(ctx, session); err != nil {
			return Result{Session: session, Customer: customer}, err
		}
	}
	return Result{Session: session, Customer: customer, Paid: paid.Paid, Receipt: paid.Receipt}, nil
}

func (f *Flow) order(ctx context.Context, session *cart.Session) (*cart.Session, error) {
	items := f.catalog.List()
	f.presenter.ShowMenu(items)
	allowed := make([]int32, 0, len(items))
	for _, it := range items {
		allowed = append(allowed, it.Id)
	}
	if len(allowed) == 0 {
		f.prompter.Say("Sorry, the menu is empty today.")
		return session, nil
	}

	ids, err := f.askIds(ctx, orderQuestion, allowed)
	if err != nil {
		return session, err
	}
	out, err := f.reserve.Reserve(ctx, reserve.Input{Session: session, ItemIds: ids})
	if err != nil {
		return session, err
	}
	f.presenter.ShowCart(out.Cart)
	return out.Session, nil
}

func (f *Flow) remove(ctx context.Context, session *cart.Session) (*cart.Session, error) {
	current := session.Cart()
	if current.IsEmpty() {
		f.prompter.Say(emptyCart)
		return session, nil
	}

	ids, err := f.askIds(ctx, removeQuestion, current.ItemIds())
	if err != nil {
		return session, err
	}
	out, err := f.release.Release(ctx, release.Input{Session: session, ItemIds: ids})
	if err != nil {
		return session, err
	}
	f.presenter.ShowCart(out.Cart)
	return out.Session, nil
}

func (f *Flow) askName(ctx context.Context) (string, error) {
	for {
		answer, err := f.prompter.Ask(ctx, nameQuestion)
		if err != nil {
			return "", err
		}
		if validators.IsPersonName(answer) {
			return answer, nil
		}
		f.prompter.Say(invalidName)
	}
}

func (f *Flow) askIds(ctx context.Context, question string, allowed []int32) ([]int32, error) {
	for {
		answer, err := f.prompter.Ask(ctx, question)
		if err != nil {
			return nil, err
		}
		if ids, ok := validators.ParseIdList(answer, allowed); ok {
			return ids, nil
		}
		f.prompter.Say(invalidIds)
	}
}

func (f *Flow) askYesNo(ctx context.Context, question string) (bool, error) {
	for {
		answer, err := f.prompter.Ask(ctx, question)
		if err != nil {
			return false, err
		}
		if yes, ok := validators.ParseYesNo(answer); ok {
			return yes, nil
		}
		f.prompter.Say("Please answer Y or N.")
	}
}

func (f *Flow) askChoice(ctx context.Context, question string, options ...string) (string, error) {
	for {
		answer, err := f.prompter.Ask(ctx, question)
		if err != nil {
			return "", err
		}
		if choice, ok := validators.ParseChoice(answer, options...); ok {
			return choice, nil
		}
		f.prompter.Say(fmt.Sprintf("Please type %s or %s.", options[0], options[1]))
	}
}

type Result struct {
	Session  *cart.Session
	Customer string
	Paid     bool
	Receipt  *protocols.Receipt
}
