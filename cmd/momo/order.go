// Order commands: place the cart as an order, list order history.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krishna-stha/MOMO/pkg/types"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place the cart as an order",
	Long: `Order submits the current cart to the kitchen. You must be signed
in with a complete profile (phone and delivery address), and the cart
must not be empty. On success the local cart is cleared.`,
	RunE: runOrderPlace,
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show your order history, newest first",
	RunE:  runOrders,
}

func runOrderPlace(cmd *cobra.Command, args []string) error {
	order, err := app.reconciler.PlaceOrder(cmd.Context())
	switch {
	case errors.Is(err, types.ErrAuthRequired):
		return errors.New("please sign in to place an order (momo login)")
	case errors.Is(err, types.ErrProfileIncomplete):
		return errors.New("please complete your profile first (momo profile save --phone ... --address ...)")
	case errors.Is(err, types.ErrEmptyCart):
		return errors.New("your cart is empty")
	case err != nil:
		return fmt.Errorf("failed to place order, please try again: %w", err)
	}

	if jsonOutput {
		return printJSON(order)
	}
	fmt.Printf("Order placed successfully! Total: %.2f\n", order.TotalPrice)
	return nil
}

func runOrders(cmd *cobra.Command, args []string) error {
	session, err := requireSession()
	if err != nil {
		return errors.New("please sign in to see your orders (momo login)")
	}
	orders, err := app.gateway.FetchOrders(cmd.Context(), session, session.UserID)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(orders)
	}
	printOrders(orders)
	return nil
}
