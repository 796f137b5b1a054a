// Cart commands: list, add, adjust, remove, clear. All cart state is
// local; nothing here touches the backend except resolving menu items.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	cartFilling  string
	cartQuantity int
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and edit the shopping cart",
	RunE:  runCartList,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <menu-item-id>",
	Short: "Add a menu item to the cart",
	Long: `Add puts a menu item into the local cart. The item's name and the
price for the chosen filling are copied from the menu at add time.

Example:
  momo cart add 3 --filling chicken --quantity 2`,
	Args: cobra.ExactArgs(1),
	RunE: runCartAdd,
}

var cartIncCmd = &cobra.Command{
	Use:   "inc <line-id>",
	Short: "Increase a cart line's quantity by one",
	Args:  cobra.ExactArgs(1),
	RunE:  makeQuantityCmd(+1),
}

var cartDecCmd = &cobra.Command{
	Use:   "dec <line-id>",
	Short: "Decrease a cart line's quantity by one (removes the line at zero)",
	Args:  cobra.ExactArgs(1),
	RunE:  makeQuantityCmd(-1),
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <line-id>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE:  runCartClear,
}

func init() {
	cartAddCmd.Flags().StringVar(&cartFilling, "filling", "", "filling variant (required)")
	cartAddCmd.Flags().IntVar(&cartQuantity, "quantity", 1, "number of plates")
	_ = cartAddCmd.MarkFlagRequired("filling")

	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartIncCmd)
	cartCmd.AddCommand(cartDecCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)
}

func runCartList(cmd *cobra.Command, args []string) error {
	lines, err := app.reconciler.Items(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(lines)
	}
	printCart(lines)
	return nil
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	if cartQuantity < 1 {
		return fmt.Errorf("quantity must be a positive integer, got %d", cartQuantity)
	}

	if err := loadMenuSnapshot(cmd.Context()); err != nil {
		return err
	}
	line, err := app.reconciler.AddItem(cmd.Context(), itemID, cartFilling, cartQuantity)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(line)
	}
	fmt.Printf("%s added to cart!\n", line.Name)
	return nil
}

func makeQuantityCmd(delta int) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := app.reconciler.ChangeQuantity(cmd.Context(), id, delta); err != nil {
			return err
		}
		return runCartList(cmd, nil)
	}
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := app.reconciler.RemoveItem(cmd.Context(), id); err != nil {
		return err
	}
	return runCartList(cmd, nil)
}

func runCartClear(cmd *cobra.Command, args []string) error {
	if err := app.store.ClearCart(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Cart cleared.")
	return nil
}

// parseID parses a numeric id argument. Ids are canonically int64
// everywhere; strings from the command line are converted here, at the
// boundary, and nowhere else.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}
