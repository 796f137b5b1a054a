// Auth commands: signup, login, logout. A successful sign-in is cached in
// the config directory and applied as the initial auth event on later
// invocations.
package main

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/krishna-stha/MOMO/internal/supabase"
	"github.com/krishna-stha/MOMO/pkg/types"
)

var (
	authEmail    string
	authPassword string
	authName     string
	authPhone    string
	authAddress  string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Long: `Signup registers a new account. Name, phone, and address become the
initial profile, created server-side on registration.

Example:
  momo signup --email k@example.com --name Krishna --phone 98000000 --address "Lakeside, Pokhara"`,
	RunE: runSignup,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the cached session",
	RunE:  runLogout,
}

func init() {
	signupCmd.Flags().StringVar(&authEmail, "email", "", "email address (required)")
	signupCmd.Flags().StringVar(&authPassword, "password", "", "password (prompted when omitted)")
	signupCmd.Flags().StringVar(&authName, "name", "", "display name")
	signupCmd.Flags().StringVar(&authPhone, "phone", "", "contact phone")
	signupCmd.Flags().StringVar(&authAddress, "address", "", "delivery address")
	_ = signupCmd.MarkFlagRequired("email")

	loginCmd.Flags().StringVar(&authEmail, "email", "", "email address (required)")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "password (prompted when omitted)")
	_ = loginCmd.MarkFlagRequired("email")
}

// promptPassword reads the password from the terminal when the flag was
// not given.
func promptPassword() (string, error) {
	if authPassword != "" {
		return authPassword, nil
	}
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func runSignup(cmd *cobra.Command, args []string) error {
	password, err := promptPassword()
	if err != nil {
		return err
	}

	session, err := app.gateway.SignUp(cmd.Context(), supabase.SignUpParams{
		Email:           authEmail,
		Password:        password,
		Name:            authName,
		Phone:           authPhone,
		DeliveryAddress: authAddress,
	})
	if err != nil {
		return err
	}
	return finishSignIn(cmd, session, "Signed up successfully! Welcome!")
}

func runLogin(cmd *cobra.Command, args []string) error {
	password, err := promptPassword()
	if err != nil {
		return err
	}

	session, err := app.gateway.SignIn(cmd.Context(), authEmail, password)
	if err != nil {
		return err
	}
	return finishSignIn(cmd, session, "Welcome back!")
}

// finishSignIn caches the session and routes the transition through the
// session controller.
func finishSignIn(cmd *cobra.Command, session types.Session, greeting string) error {
	if err := saveCachedSession(app.configDir, session); err != nil {
		return err
	}
	app.controller.Apply(cmd.Context(), types.AuthEvent{Session: &session})
	app.notifier.Notify(types.Toast{Message: greeting, Category: types.ToastSuccess})
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if session, ok := app.controller.Session(); ok {
		if err := app.gateway.SignOut(cmd.Context(), session); err != nil {
			// Token revocation failed; the local session is dropped anyway.
			app.log.Debug().Err(err).Msg("remote sign-out failed")
		}
	}
	clearCachedSession(app.configDir)
	app.controller.Apply(cmd.Context(), types.AuthEvent{Session: nil})
	fmt.Println("Signed out.")
	return nil
}
