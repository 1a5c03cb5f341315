package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/roomgate/roomgate/internal/token"
)

// Default values for the server configuration.
const (
	DefaultHost      = "0.0.0.0"
	DefaultPort      = 8080
	DefaultTTLHours  = 24
	DefaultEventTTL  = 5 * time.Minute
	DefaultEventCap  = 256
	DefaultDevKeyID  = "devkey"
	DefaultDevSecret = "secret"
)

// Config holds all process-wide settings. It is built once at startup by
// Load and passed by reference to every component that needs it — never
// mutated afterwards.
type Config struct {
	// Host is the interface the HTTP server binds to (default 0.0.0.0).
	Host string `yaml:"host" env:"HOST"`

	// Port is the HTTP listen port (default 8080).
	Port int `yaml:"port" env:"PORT"`

	// Debug lowers the log level to debug.
	Debug bool `yaml:"debug" env:"DEBUG"`

	// Production forbids falling back to the built-in development signing
	// credentials. With Production set, a missing signing secret is a
	// startup error rather than a silent downgrade.
	Production bool `yaml:"production" env:"PRODUCTION"`

	// Signing holds the token signing key material.
	Signing SigningConfig `yaml:"signing"`

	// Token controls token issuance defaults.
	Token TokenConfig `yaml:"token"`

	// Events controls retention of broadcast events.
	Events EventsConfig `yaml:"events"`

	// BroadcastAuth configures producer authentication on POST /broadcast.
	BroadcastAuth AuthConfig `yaml:"broadcast_auth"`
}

// SigningConfig is the HMAC key pair used to sign access tokens. The secret
// is deliberately env-only: it never appears in a config file.
type SigningConfig struct {
	// KeyID is the public key identifier embedded in tokens as the issuer.
	KeyID string `yaml:"key_id" env:"LIVEKIT_API_KEY"`

	// Secret is the HMAC-SHA256 signing secret.
	Secret string `env:"LIVEKIT_API_SECRET"`
}

// TokenConfig controls token issuance.
type TokenConfig struct {
	// TTLHours is the default token lifetime in hours (default 24).
	TTLHours int `yaml:"ttl_hours" env:"TOKEN_TTL_HOURS"`
}

// EventsConfig controls the in-memory broadcast event store.
type EventsConfig struct {
	// TTL is how long a broadcast event remains queryable (default 5m).
	TTL time.Duration `yaml:"ttl" env:"EVENT_TTL"`

	// Cap is the maximum number of retained events (default 256).
	Cap int `yaml:"cap" env:"EVENT_CAP"`
}

// AuthConfig controls producer authentication for POST /broadcast.
type AuthConfig struct {
	// Mode is one of: apikey | none. Empty means none.
	Mode string `yaml:"mode" env:"BROADCAST_AUTH_MODE"`

	// Header is the HTTP header the key is read from.
	// Defaults to "x-api-key" if empty.
	Header string `yaml:"header" env:"BROADCAST_AUTH_HEADER"`

	// Key is the expected API key. Env-only, like the signing secret.
	Key string `env:"BROADCAST_API_KEY"`
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// Load builds the configuration: defaults, then the optional YAML file at
// path (skipped when path is empty), then environment variable overrides.
// Dev signing credentials are substituted only outside production mode.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: read environment: %w", err)
	}

	if err := resolveSigning(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Host: DefaultHost,
		Port: DefaultPort,
		Token: TokenConfig{
			TTLHours: DefaultTTLHours,
		},
		Events: EventsConfig{
			TTL: DefaultEventTTL,
			Cap: DefaultEventCap,
		},
	}
}

// resolveSigning fills in development signing credentials when allowed.
// In production mode, missing key material is fatal: signing must never be
// silently downgraded to the well-known dev secret.
func resolveSigning(cfg *Config) error {
	if cfg.Production {
		if cfg.Signing.Secret == "" {
			return errors.New("LIVEKIT_API_SECRET is required in production mode")
		}
		if cfg.Signing.KeyID == "" {
			return errors.New("LIVEKIT_API_KEY is required in production mode")
		}
		return nil
	}
	if cfg.Signing.KeyID == "" {
		cfg.Signing.KeyID = DefaultDevKeyID
	}
	if cfg.Signing.Secret == "" {
		cfg.Signing.Secret = DefaultDevSecret
	}
	return nil
}

// validate checks structural constraints on the resolved configuration.
func validate(cfg *Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d is out of range [1, 65535]", cfg.Port)
	}
	if cfg.Token.TTLHours < token.MinTTLHours || cfg.Token.TTLHours > token.MaxTTLHours {
		return fmt.Errorf("token.ttl_hours %d is out of range [%d, %d]",
			cfg.Token.TTLHours, token.MinTTLHours, token.MaxTTLHours)
	}
	if cfg.Events.TTL < 0 {
		return errors.New("events.ttl must not be negative")
	}
	if cfg.Events.Cap <= 0 {
		return errors.New("events.cap must be positive")
	}
	switch cfg.BroadcastAuth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("broadcast_auth.mode %q unknown: want apikey|none", cfg.BroadcastAuth.Mode)
	}
	return nil
}
