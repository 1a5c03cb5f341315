package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultTTLHours, cfg.Token.TTLHours)
	assert.Equal(t, DefaultEventTTL, cfg.Events.TTL)
	assert.Equal(t, DefaultEventCap, cfg.Events.Cap)
	assert.False(t, cfg.Production)

	// Dev signing credentials apply outside production mode.
	assert.Equal(t, DefaultDevKeyID, cfg.Signing.KeyID)
	assert.Equal(t, DefaultDevSecret, cfg.Signing.Secret)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL_HOURS", "48")
	t.Setenv("LIVEKIT_API_KEY", "prodkey")
	t.Setenv("LIVEKIT_API_SECRET", "prodsecret")
	t.Setenv("DEBUG", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 48, cfg.Token.TTLHours)
	assert.Equal(t, "prodkey", cfg.Signing.KeyID)
	assert.Equal(t, "prodsecret", cfg.Signing.Secret)
	assert.True(t, cfg.Debug)
}

func TestLoad_FileThenEnvWins(t *testing.T) {
	p := writeConfig(t, `
host: "127.0.0.1"
port: 9090
token:
  ttl_hours: 12
events:
  ttl: 10m
broadcast_auth:
  mode: apikey
  header: x-producer-key
`)
	t.Setenv("PORT", "9999")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9999, cfg.Port, "environment overrides the file")
	assert.Equal(t, 12, cfg.Token.TTLHours)
	assert.Equal(t, 10*time.Minute, cfg.Events.TTL)
	assert.Equal(t, "apikey", cfg.BroadcastAuth.Mode)
	assert.Equal(t, "x-producer-key", cfg.BroadcastAuth.EffectiveHeader())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("PRODUCTION", "true")
	t.Setenv("LIVEKIT_API_KEY", "prodkey")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LIVEKIT_API_SECRET")
}

func TestLoad_ProductionWithSecret(t *testing.T) {
	t.Setenv("PRODUCTION", "true")
	t.Setenv("LIVEKIT_API_KEY", "prodkey")
	t.Setenv("LIVEKIT_API_SECRET", "prodsecret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "prodsecret", cfg.Signing.Secret)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "port out of range", yaml: "port: 70000"},
		{name: "ttl too low", yaml: "token:\n  ttl_hours: 0"},
		{name: "ttl too high", yaml: "token:\n  ttl_hours: 200"},
		{name: "negative event ttl", yaml: "events:\n  ttl: -1s"},
		{name: "non-positive event cap", yaml: "events:\n  cap: -1"},
		{name: "unknown auth mode", yaml: "broadcast_auth:\n  mode: mtls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestAuthConfig_EffectiveHeader(t *testing.T) {
	assert.Equal(t, "x-api-key", AuthConfig{}.EffectiveHeader())
	assert.Equal(t, "x-custom", AuthConfig{Header: "x-custom"}.EffectiveHeader())
}
