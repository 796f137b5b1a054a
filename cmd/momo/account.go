// Account command: permanent account deletion via the backend's
// privileged delete function.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var accountDeleteYes bool

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your account",
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Permanently delete your account",
	Long: `Delete removes your account server-side, signs you out, and wipes
all local data. This cannot be undone.`,
	RunE: runAccountDelete,
}

func init() {
	accountDeleteCmd.Flags().BoolVar(&accountDeleteYes, "yes", false, "skip the confirmation prompt")
	accountCmd.AddCommand(accountDeleteCmd)
}

func runAccountDelete(cmd *cobra.Command, args []string) error {
	if !accountDeleteYes {
		fmt.Print("Are you sure you want to permanently delete your account? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			return errors.New("aborted")
		}
	}

	if err := app.reconciler.DeleteAccount(cmd.Context()); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	clearCachedSession(app.configDir)
	fmt.Println("Account deleted.")
	return nil
}
