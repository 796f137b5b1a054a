package types

import "errors"

// Config holds the backend endpoint and local data location for a client.
type Config struct {
	SupabaseURL     string `json:"supabase_url" yaml:"supabase_url"`
	SupabaseAnonKey string `json:"supabase_anon_key" yaml:"supabase_anon_key"`
	DataDir         string `json:"data_dir" yaml:"data_dir"`
}

// Config validation errors.
var (
	ErrSupabaseURLEmpty = errors.New("supabase_url must not be empty")
	ErrAnonKeyEmpty     = errors.New("supabase_anon_key must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.SupabaseURL == "" {
		return ErrSupabaseURLEmpty
	}
	if c.SupabaseAnonKey == "" {
		return ErrAnonKeyEmpty
	}
	return nil
}
