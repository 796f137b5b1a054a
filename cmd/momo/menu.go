// Menu command lists available dishes.
package main

import (
	"github.com/spf13/cobra"

	"github.com/krishna-stha/MOMO/pkg/types"
)

var menuFilter string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the menu",
	Long: `Menu lists the available dishes, featured items first.

Example:
  momo menu
  momo menu --filter all
  momo menu --filter steamed`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&menuFilter, "filter", types.FilterFeatured, "featured, all, or a category name")
}

func runMenu(cmd *cobra.Command, args []string) error {
	if err := app.controller.LoadMenu(cmd.Context()); err != nil {
		return err
	}
	items := types.FilterMenu(app.controller.Menu(), menuFilter)

	if jsonOutput {
		return printJSON(items)
	}
	printMenu(items)
	return nil
}
