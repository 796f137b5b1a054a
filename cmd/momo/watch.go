// Watch command: run the session dispatch loop and print live order
// status updates until interrupted.
package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchShowHistory bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch your orders for live status updates",
	Long: `Watch keeps a live subscription to your orders open and prints a
notification whenever the kitchen updates a status. With --history the
order list is shown and refreshed after every update. Interrupt to stop.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchShowHistory, "history", false, "show and refresh the order history")
}

func runWatch(cmd *cobra.Command, args []string) error {
	session, err := requireSession()
	if err != nil {
		return errors.New("please sign in to watch your orders (momo login)")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if watchShowHistory {
		app.history.SetVisible(true)
		orders, err := app.gateway.FetchOrders(ctx, session, session.UserID)
		if err != nil {
			return err
		}
		printOrders(orders)
	}

	fmt.Println("Watching for order updates. Press Ctrl-C to stop.")
	app.controller.Run(ctx)
	return nil
}
