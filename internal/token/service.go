package token

import (
	"log/slog"
)

// Service identity reported by the health and configuration endpoints.
const (
	ServiceName = "livekit-token-server"
	Version     = "1.0.0"
)

// ConfigurationInfo is the non-secret server capability description
// returned by Service.DescribeConfiguration.
type ConfigurationInfo struct {
	Server                string   `json:"server"`
	Version               string   `json:"version"`
	DefaultTTLHours       int      `json:"default_ttl_hours"`
	MaxTTLHours           int      `json:"max_ttl_hours"`
	SupportedCapabilities []string `json:"supported_capabilities"`
}

// Service orchestrates validation and issuance for token requests and emits
// a structured log entry for every request outcome. It is stateless beyond
// its read-only fields and safe for concurrent use.
type Service struct {
	issuer   *Issuer
	ttlHours int
	log      *slog.Logger
}

// NewService creates a Service issuing tokens with the given default TTL.
func NewService(issuer *Issuer, ttlHours int, log *slog.Logger) *Service {
	return &Service{
		issuer:   issuer,
		ttlHours: ttlHours,
		log:      log,
	}
}

// RequestToken validates the raw request and issues a signed token.
// Validation errors propagate unchanged so the caller can tell which field
// failed; they are logged with the raw inputs for traceability. Neither the
// token nor the signing key ever appears in logs.
func (s *Service) RequestToken(room, identity, name string) (string, error) {
	req, err := Validate(room, identity, name)
	if err != nil {
		s.log.Warn("token request rejected",
			"room", room,
			"identity", identity,
			"success", false,
			"error", err.Error(),
		)
		return "", err
	}

	signed, err := s.issuer.Issue(req, s.ttlHours)
	if err != nil {
		s.log.Error("token issuance failed",
			"room", req.Room,
			"identity", req.Identity,
			"success", false,
			"error", err.Error(),
		)
		return "", err
	}

	s.log.Info("token issued",
		"room", req.Room,
		"identity", req.Identity,
		"ttl_hours", s.ttlHours,
		"success", true,
	)
	return signed, nil
}

// DescribeConfiguration returns the non-secret server capabilities for
// client introspection.
func (s *Service) DescribeConfiguration() ConfigurationInfo {
	return ConfigurationInfo{
		Server:          ServiceName,
		Version:         Version,
		DefaultTTLHours: s.ttlHours,
		MaxTTLHours:     MaxTTLHours,
		SupportedCapabilities: []string{
			"room_join",
			"audio_publish",
			"audio_subscribe",
			"data_publish",
		},
	}
}
