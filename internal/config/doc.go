// Package config resolves the process-wide configuration for the token
// server: defaults, then an optional YAML file, then environment variables
// (the environment always wins). Secrets (signing secret, broadcast API key)
// are env-only and never read from the file.
//
// Load is called exactly once at startup; the resulting *Config is treated
// as immutable and handed to each component that needs it. In production
// mode (PRODUCTION=true) the development signing credentials are disabled
// and a missing LIVEKIT_API_SECRET aborts startup.
package config
