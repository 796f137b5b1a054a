// Terminal presentation: toasts and table rendering. Pure output; all
// decisions happen in the core components.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync/atomic"
	"text/tabwriter"

	"github.com/krishna-stha/MOMO/pkg/types"
)

// terminalNotifier prints toasts to stdout with a category marker.
type terminalNotifier struct{}

var _ types.Notifier = (*terminalNotifier)(nil)

func (n *terminalNotifier) Notify(toast types.Toast) {
	marker := map[string]string{
		types.ToastSuccess: "ok",
		types.ToastInfo:    "info",
		types.ToastError:   "error",
	}[toast.Category]
	fmt.Printf("[%s] %s\n", marker, toast.Message)
}

// historyView is the CLI's order-history surface. It is "visible" while a
// command that displays order history is running, which makes the live
// listener refresh it after each status update.
type historyView struct {
	visible atomic.Bool
}

func (h *historyView) SetVisible(v bool) { h.visible.Store(v) }
func (h *historyView) Visible() bool     { return h.visible.Load() }

func (h *historyView) ShowOrders(orders []types.Order) {
	fmt.Println("\nOrder history:")
	printOrders(orders)
}

// printJSON renders any value as indented JSON for --json mode.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func printMenu(items []types.MenuItem) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICES\tFEATURED")
	for _, item := range items {
		featured := ""
		if item.IsFeatured {
			featured = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			item.ID, item.Name, item.Category, formatPrices(item.Prices), featured)
	}
	w.Flush()
}

func formatPrices(prices map[string]float64) string {
	out := ""
	for _, filling := range sortedKeys(prices) {
		if out != "" {
			out += ", "
		}
		out += fmt.Sprintf("%s %.2f", filling, prices[filling])
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func printCart(lines []types.CartLine) {
	if len(lines) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tITEM\tFILLING\tQTY\tPRICE\tSUBTOTAL")
	for _, l := range lines {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\t%.2f\n",
			l.ID, l.Name, l.Filling, l.Quantity, l.PricePerPlate, l.Subtotal())
	}
	fmt.Fprintf(w, "\t\t\t\tTOTAL\t%.2f\n", types.CartTotal(lines))
	w.Flush()
}

func printOrders(orders []types.Order) {
	if len(orders) == 0 {
		fmt.Println("No orders yet.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tSTATUS\tTOTAL\tPLACED")
	for _, o := range orders {
		placed := ""
		if !o.CreatedAt.IsZero() {
			placed = o.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "#%d\t%s\t%.2f\t%s\n", o.OrderID, o.Status, o.TotalPrice, placed)
	}
	w.Flush()
}
