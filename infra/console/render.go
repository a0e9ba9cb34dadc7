package console

import (
	"fmt"
	"text/tabwriter"

	"github.com/giovaniif/cafeteria/domain/cart"
	"github.com/giovaniif/cafeteria/domain/item"
)

func (c *Console) ShowMenu(items []item.Item) {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, c.paint(bold, "ID\tItem\tPrice\tIn stock"))
	for _, it := range items {
		stock := fmt.Sprintf("%d", it.Stock)
		if it.Stock == 0 {
			stock = "sold out"
		}
		fmt.Fprintf(w, "%d\t%s\t£%s\t%s\n", it.Id, it.Name, it.FormattedPrice(), stock)
	}
	w.Flush()
}

func (c *Console) ShowCart(current cart.Cart) {
	if current.IsEmpty() {
		fmt.Fprintln(c.out, "Your order is empty.")
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, c.paint(bold, "ID\tItem\tQty\tPrice\tSubtotal"))
	for _, entry := range current.Items {
		fmt.Fprintf(w, "%d\t%s\t%d\t£%s\t£%s\n",
			entry.ItemId, entry.Name, entry.HeldQuantity,
			item.FormatPrice(entry.UnitPrice), item.FormatPrice(entry.Subtotal()))
	}
	fmt.Fprintf(w, "\tTotal\t%d\t\t£%s\n", current.TotalQuantity, current.FormattedTotal())
	w.Flush()
}
