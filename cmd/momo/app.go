// Application wiring: config, local store, gateway, session controller,
// and reconciler, assembled before any subcommand runs.
package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/krishna-stha/MOMO/internal/cart"
	"github.com/krishna-stha/MOMO/internal/paths"
	"github.com/krishna-stha/MOMO/internal/session"
	"github.com/krishna-stha/MOMO/internal/sqlite"
	"github.com/krishna-stha/MOMO/internal/supabase"
	"github.com/krishna-stha/MOMO/pkg/types"
)

// appState holds the wired components for one CLI invocation.
type appState struct {
	configDir  string
	log        zerolog.Logger
	store      *sqlite.Store
	gateway    *supabase.Client
	controller *session.Controller
	reconciler *cart.Reconciler
	notifier   *terminalNotifier
	history    *historyView
}

// initApp wires the application and applies any cached session as the
// initial auth event. Commands that need no wiring (version) skip it.
func initApp(cmd *cobra.Command, args []string) error {
	switch cmd.Name() {
	case "version", "help", "completion":
		return nil
	}

	log := newLogger()

	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	dataDir, err := paths.ResolveDataDir(flagDataDir, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	store := sqlite.New(dataDir)
	if err := store.Open(cmd.Context()); err != nil {
		return err
	}

	gateway := supabase.New(cfg, log)
	notifier := &terminalNotifier{}
	history := &historyView{}
	controller := session.New(gateway, notifier, history, log)
	reconciler := cart.New(store, gateway, controller, log)

	app = &appState{
		configDir:  configDir,
		log:        log,
		store:      store,
		gateway:    gateway,
		controller: controller,
		reconciler: reconciler,
		notifier:   notifier,
		history:    history,
	}

	// A cached session arrives synchronously, before any dispatch loop.
	if cached, ok := loadCachedSession(configDir, log); ok {
		controller.Apply(cmd.Context(), types.AuthEvent{Session: &cached})
	}

	return nil
}

// closeApp tears the wiring down after the subcommand returns.
func closeApp(cmd *cobra.Command, args []string) error {
	if app == nil {
		return nil
	}
	app.controller.Shutdown()
	return app.store.Close()
}

// requireSession returns the active session or ErrAuthRequired.
func requireSession() (types.Session, error) {
	s, ok := app.controller.Session()
	if !ok {
		return types.Session{}, types.ErrAuthRequired
	}
	return s, nil
}

// loadMenuSnapshot fetches the menu into the controller, once per
// invocation, for commands that resolve menu items.
func loadMenuSnapshot(ctx context.Context) error {
	if len(app.controller.Menu()) > 0 {
		return nil
	}
	return app.controller.LoadMenu(ctx)
}
