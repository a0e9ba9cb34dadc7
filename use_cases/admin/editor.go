package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/giovaniif/cafeteria/domain/item"
	"github.com/giovaniif/cafeteria/infra/validators"
	"github.com/giovaniif/cafeteria/protocols"
	"github.com/shopspring/decimal"
)

const (
	actionAdd    = "Add"
	actionUpdate = "Update"
	actionRemove = "Remove"
	actionExit   = "Exit"
)

const (
	exitMessage         = "Exiting secret Woofin mode."
	notNumberMessage    = "You didn't enter a number. Please try again."
	invalidIdsMessage   = "Please enter valid item ids separated by commas, e.g. 1,3"
	invalidPriceMessage = "Please enter a valid price greater than zero, e.g. 2.50"
	invalidNameMessage  = "Item names may only contain letters, spaces, apostrophes and hyphens."
)

// Editor runs the interactive menu editing loop. It only touches the
// catalog it is given.
type Editor struct {
	prompter  protocols.Prompter
	presenter protocols.Presenter
	logger    *slog.Logger
}

func NewEditor(prompter protocols.Prompter, presenter protocols.Presenter, logger *slog.Logger) *Editor {
	return &Editor{prompter: prompter, presenter: presenter, logger: logger}
}

func (e *Editor) Edit(ctx context.Context, catalog item.Repository) (item.Repository, error) {
	for {
		e.presenter.ShowMenu(catalog.List())
		answer, err := e.prompter.Ask(ctx, "How would you like to edit the menu? (Add/Update/Remove/Exit)")
		if err != nil {
			return catalog, err
		}
		action, ok := validators.ParseChoice(answer, actionAdd, actionUpdate, actionRemove, actionExit)
		if !ok {
			e.prompter.Say("Please choose one of Add, Update, Remove or Exit.")
			continue
		}

		switch action {
		case actionAdd:
			err = e.add(ctx, catalog)
		case actionUpdate:
			err = e.update(ctx, catalog)
		case actionRemove:
			err = e.remove(ctx, catalog)
		case actionExit:
			e.prompter.Say(exitMessage)
			return catalog, nil
		}
		if err != nil {
			return catalog, err
		}

		more, err := e.askYesNo(ctx, "Do you want to continue editing the menu? (Y/N)")
		if err != nil {
			return catalog, err
		}
		if !more {
			e.prompter.Say(exitMessage)
			return catalog, nil
		}
	}
}

func (e *Editor) add(ctx context.Context, catalog item.Repository) error {
	var count int32
	for {
		answer, err := e.prompter.Ask(ctx, "How many items would you like to add?")
		if err != nil {
			return err
		}
		value, ok := validators.ParseCount(answer)
		if !ok {
			e.prompter.Say(notNumberMessage)
			continue
		}
		if value == 0 {
			e.prompter.Say("You cannot add 0 items.")
			continue
		}
		count = value
		break
	}

	for n := int32(0); n < count; n++ {
		name, err := e.askNewName(ctx, catalog)
		if err != nil {
			return err
		}
		quantity, err := e.askCount(ctx, fmt.Sprintf("How many %s are in stock?", name))
		if err != nil {
			return err
		}
		price, err := e.askPrice(ctx, fmt.Sprintf("What is the price of %s?", name))
		if err != nil {
			return err
		}

		added, err := catalog.Append(name, price, quantity)
		if err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
		e.logger.InfoContext(ctx, "menu item added", "item_id", added.Id, "name", added.Name)
		e.prompter.Say(fmt.Sprintf("%d x %s has been added to the menu at £%s.", added.Stock, added.Name, added.FormattedPrice()))
	}
	return nil
}

func (e *Editor) update(ctx context.Context, catalog item.Repository) error {
	ids, err := e.askIds(ctx, catalog, "Please enter the id(s) of the item(s) you would like to update, separated by commas:")
	if err != nil || ids == nil {
		return err
	}

	for _, id := range ids {
		current, err := catalog.GetItem(id)
		if err != nil {
			return err
		}

		err = e.updateField(ctx, catalog, id,
			fmt.Sprintf("Please enter a new name for %s or type 'Skip' to keep it.", current.Name),
			invalidNameMessage,
			func(answer string) (item.Update, bool) {
				if !validators.IsItemName(answer) {
					return item.Update{}, false
				}
				return item.SetName(answer), true
			})
		if err != nil {
			return err
		}

		current, _ = catalog.GetItem(id)
		err = e.updateField(ctx, catalog, id,
			fmt.Sprintf("Please enter the new stock for %s or type 'Skip' to keep %d.", current.Name, current.Stock),
			notNumberMessage,
			func(answer string) (item.Update, bool) {
				stock, ok := validators.ParseCount(answer)
				return item.SetStock(stock), ok
			})
		if err != nil {
			return err
		}

		err = e.updateField(ctx, catalog, id,
			fmt.Sprintf("Please enter the new price for %s or type 'Skip' to keep £%s.", current.Name, current.FormattedPrice()),
			invalidPriceMessage,
			func(answer string) (item.Update, bool) {
				price, ok := validators.ParsePrice(answer)
				return item.SetPrice(price), ok
			})
		if err != nil {
			return err
		}
	}
	return nil
}

// updateField prompts until the answer is "Skip" or an update the catalog
// accepts.
func (e *Editor) updateField(ctx context.Context, catalog item.Repository, id int32, question, invalid string, parse func(string) (item.Update, bool)) error {
	for {
		answer, err := e.prompter.Ask(ctx, question)
		if err != nil {
			return err
		}
		if validators.IsSkip(answer) {
			return nil
		}
		update, ok := parse(answer)
		if !ok {
			e.prompter.Say(invalid)
			continue
		}

		before, _ := catalog.GetItem(id)
		after, err := catalog.Update(id, update)
		switch {
		case errors.Is(err, item.ErrUnchangedValue):
			e.prompter.Say(fmt.Sprintf("The %s of %s is already %s. Please try again.", update.Field, before.Name, fieldValue(update.Field, before)))
			continue
		case errors.Is(err, item.ErrDuplicateName):
			e.prompter.Say(fmt.Sprintf("An item called %s already exists. Please try again.", item.NormalizeName(update.Name)))
			continue
		case errors.Is(err, item.ErrInvalidName), errors.Is(err, item.ErrInvalidPrice), errors.Is(err, item.ErrInvalidQuantity):
			e.prompter.Say(invalid)
			continue
		case err != nil:
			return fmt.Errorf("update item %d: %w", id, err)
		}

		e.logger.InfoContext(ctx, "menu item updated", "item_id", id, "field", update.Field.String())
		e.prompter.Say(fmt.Sprintf("The %s of %s has been changed to %s.", update.Field, before.Name, fieldValue(update.Field, after)))
		return nil
	}
}

func (e *Editor) remove(ctx context.Context, catalog item.Repository) error {
	ids, err := e.askIds(ctx, catalog, "Please enter the id(s) of the item(s) you would like to remove, separated by commas:")
	if err != nil || ids == nil {
		return err
	}

	removed := catalog.Remove(ids)
	names := make([]string, 0, len(removed))
	for _, it := range removed {
		names = append(names, it.Name)
	}
	e.logger.InfoContext(ctx, "menu items removed", "count", len(removed))
	e.prompter.Say("The following items have been removed from the menu: " + strings.Join(names, ", "))
	return nil
}

func (e *Editor) askIds(ctx context.Context, catalog item.Repository, question string) ([]int32, error) {
	items := catalog.List()
	if len(items) == 0 {
		e.prompter.Say("The menu is empty.")
		return nil, nil
	}
	allowed := make([]int32, 0, len(items))
	for _, it := range items {
		allowed = append(allowed, it.Id)
	}

	for {
		answer, err := e.prompter.Ask(ctx, question)
		if err != nil {
			return nil, err
		}
		if ids, ok := validators.ParseIdList(answer, allowed); ok {
			return ids, nil
		}
		e.prompter.Say(invalidIdsMessage)
	}
}

func (e *Editor) askNewName(ctx context.Context, catalog item.Repository) (string, error) {
	for {
		answer, err := e.prompter.Ask(ctx, "Please enter the name of the new item:")
		if err != nil {
			return "", err
		}
		if !validators.IsItemName(answer) {
			e.prompter.Say(invalidNameMessage)
			continue
		}
		name := item.NormalizeName(answer)
		if taken(catalog, name) {
			e.prompter.Say(fmt.Sprintf("An item called %s already exists. Please choose another name.", name))
			continue
		}
		return name, nil
	}
}

func (e *Editor) askCount(ctx context.Context, question string) (int32, error) {
	for {
		answer, err := e.prompter.Ask(ctx, question)
		if err != nil {
			return 0, err
		}
		if value, ok := validators.ParseCount(answer); ok {
			return value, nil
		}
		e.prompter.Say(notNumberMessage)
	}
}

func (e *Editor) askPrice(ctx context.Context, question string) (decimal.Decimal, error) {
	for {
		answer, err := e.prompter.Ask(ctx, question)
		if err != nil {
			return decimal.Zero, err
		}
		if value, ok := validators.ParsePrice(answer); ok {
			return value, nil
		}
		e.prompter.Say(invalidPriceMessage)
	}
}

func (e *Editor) askYesNo(ctx context.Context, question string) (bool, error) {
	for {
		answer, err := e.prompter.Ask(ctx, question)
		if err != nil {
			return false, err
		}
		if yes, ok := validators.ParseYesNo(answer); ok {
			return yes, nil
		}
		e.prompter.Say("Please answer Y or N.")
	}
}

func taken(catalog item.Reader, name string) bool {
	for _, it := range catalog.List() {
		if item.SameName(it.Name, name) {
			return true
		}
	}
	return false
}

func fieldValue(field item.Field, it item.Item) string {
	switch field {
	case item.FieldName:
		return it.Name
	case item.FieldPrice:
		return "£" + it.FormattedPrice()
	case item.FieldStock:
		return fmt.Sprintf("%d", it.Stock)
	}
	return ""
}
