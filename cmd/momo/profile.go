// Profile commands: show the merged profile, save edits, pick a local
// profile picture.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/krishna-stha/MOMO/pkg/types"
)

var (
	profileName    string
	profilePhone   string
	profileAddress string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	Long: `Profile shows the signed-in user's profile: the authoritative
fields from the backend layered over the locally cached snapshot. The
profile picture is local-only and never uploaded.`,
	RunE: runProfileShow,
}

var profileSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Update your profile on the backend",
	Long: `Save pushes name, phone, and delivery address to the backend.

Example:
  momo profile save --name "Krishna" --phone 98000000 --address "Lakeside, Pokhara"`,
	RunE: runProfileSave,
}

var profilePictureCmd = &cobra.Command{
	Use:   "picture <path>",
	Short: "Select a local profile picture",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilePicture,
}

func init() {
	profileSaveCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileSaveCmd.Flags().StringVar(&profilePhone, "phone", "", "contact phone")
	profileSaveCmd.Flags().StringVar(&profileAddress, "address", "", "delivery address")

	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profilePictureCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	if _, ok := app.controller.CurrentUser(); !ok {
		return errors.New("please sign in first (momo login)")
	}
	merged, err := app.reconciler.MergedProfile(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(merged)
	}
	fmt.Printf("Name:    %s\nPhone:   %s\nAddress: %s\n", merged.Name, merged.Phone, merged.DeliveryAddress)
	if merged.PicturePath != "" {
		fmt.Printf("Picture: %s (local only)\n", merged.PicturePath)
	}
	return nil
}

func runProfileSave(cmd *cobra.Command, args []string) error {
	user, ok := app.controller.CurrentUser()
	if !ok {
		return errors.New("please sign in first (momo login)")
	}

	// Unset flags keep the current values; save is a full-field update.
	fields := types.ProfileUpdate{
		Name:            user.Name,
		Phone:           user.Phone,
		DeliveryAddress: user.DeliveryAddress,
	}
	if profileName != "" {
		fields.Name = profileName
	}
	if profilePhone != "" {
		fields.Phone = profilePhone
	}
	if profileAddress != "" {
		fields.DeliveryAddress = profileAddress
	}

	updated, err := app.reconciler.SaveProfile(cmd.Context(), fields)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if jsonOutput {
		return printJSON(updated)
	}
	fmt.Println("Profile updated successfully!")
	return nil
}

func runProfilePicture(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("picture %q: %w", path, err)
	}
	if err := app.reconciler.SetPicture(cmd.Context(), path); err != nil {
		return err
	}
	fmt.Println("Profile picture saved locally.")
	return nil
}
