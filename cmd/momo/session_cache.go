// Session cache: the signed-in session persisted between invocations so
// the CLI behaves like a browser with a remembered login.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/krishna-stha/MOMO/pkg/types"
)

// sessionFileName is the cache file inside the config directory.
const sessionFileName = "session.json"

// loadCachedSession reads the cached session. An absent, unreadable, or
// expired cache means signed out; the expired file is removed.
func loadCachedSession(configDir string, log zerolog.Logger) (types.Session, bool) {
	path := filepath.Join(configDir, sessionFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Session{}, false
	}

	var session types.Session
	if err := json.Unmarshal(data, &session); err != nil {
		log.Debug().Err(err).Msg("discarding unreadable session cache")
		os.Remove(path)
		return types.Session{}, false
	}
	if session.Expired() {
		log.Debug().Msg("cached session expired")
		os.Remove(path)
		return types.Session{}, false
	}
	return session, true
}

// saveCachedSession writes the session cache, user-readable only.
func saveCachedSession(configDir string, session types.Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	path := filepath.Join(configDir, sessionFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session cache: %w", err)
	}
	return nil
}

// clearCachedSession removes the session cache. Missing file is fine.
func clearCachedSession(configDir string) {
	os.Remove(filepath.Join(configDir, sessionFileName))
}
