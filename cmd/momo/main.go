// Package main provides the momo CLI: a local-first storefront client for
// the Momoholics food-ordering backend. The cart and a profile snapshot
// live in a local SQLite store; menu, auth, orders, and live status
// updates come from the hosted backend.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags.
	flagConfigDir string
	flagDataDir   string
	flagVerbose   bool
	jsonOutput    bool

	// app is the wired application, initialized by PersistentPreRunE.
	app *appState
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "momo",
	Short: "Order momos from your terminal",
	Long: `Momo is a storefront client for the Momoholics delivery service.
The shopping cart and profile snapshot are kept in a local store that
works offline; orders, accounts, and live status updates go through the
hosted backend.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initApp,
	PersistentPostRunE: closeApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(watchCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("momo v0.1.0")
	},
}

// newLogger builds the CLI logger. Quiet unless --verbose.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
