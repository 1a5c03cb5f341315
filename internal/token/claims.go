package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VideoGrant is the room capability set embedded in an access token. The
// field names follow the LiveKit wire format so issued tokens are accepted
// by a LiveKit server as-is.
type VideoGrant struct {
	RoomJoin       bool   `json:"roomJoin"`
	Room           string `json:"room"`
	CanPublish     bool   `json:"canPublish"`
	CanSubscribe   bool   `json:"canSubscribe"`
	CanPublishData bool   `json:"canPublishData"`
}

// Claims is the fact set a token attests to: who (subject/name), where
// (video grant room), what (capabilities), and the validity window.
//
// Claims values are built only by the issuer from a ValidatedRequest, so
// room and identity are non-empty and sanitized by construction, and
// ExpiresAt is strictly after IssuedAt.
type Claims struct {
	jwt.RegisteredClaims

	// Name is the optional participant display name.
	Name string `json:"name,omitempty"`

	// Video carries the room grant and capabilities.
	Video VideoGrant `json:"video"`
}

// newClaims assembles the claims for req issued at now with the given TTL.
// Every issued token grants publish, subscribe, and publish-data; room join
// is implicit in holding any grant for the room.
func newClaims(req ValidatedRequest, keyID string, now time.Time, ttl time.Duration) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    keyID,
			Subject:   req.Identity,
			ID:        req.Identity,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name: req.Name,
		Video: VideoGrant{
			RoomJoin:       true,
			Room:           req.Room,
			CanPublish:     true,
			CanSubscribe:   true,
			CanPublishData: true,
		},
	}
}
