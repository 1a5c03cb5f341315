package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetime bounds in hours. The maximum is one week.
const (
	MinTTLHours = 1
	MaxTTLHours = 168
)

// Issuer signs room access tokens with a fixed HMAC-SHA256 key pair.
// Issue has no shared mutable state and is safe for concurrent use.
type Issuer struct {
	keyID  string
	secret []byte
	now    func() time.Time // injectable for deterministic tests
}

// NewIssuer creates an Issuer for the given signing key pair.
func NewIssuer(keyID, secret string) *Issuer {
	return &Issuer{
		keyID:  keyID,
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue signs a token for the validated request, valid for ttlHours from
// now. It fails with KindInvalidTTL when ttlHours is outside
// [MinTTLHours, MaxTTLHours] and KindSigningFailure when signing fails.
func (i *Issuer) Issue(req ValidatedRequest, ttlHours int) (string, error) {
	if ttlHours < MinTTLHours || ttlHours > MaxTTLHours {
		return "", errf(KindInvalidTTL,
			"ttl must be between %d and %d hours, got %d", MinTTLHours, MaxTTLHours, ttlHours)
	}

	claims := newClaims(req, i.keyID, i.now(), time.Duration(ttlHours)*time.Hour)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		// Never include key material in the error chain.
		return "", &Error{Kind: KindSigningFailure, Message: "token signing failed", Err: err}
	}
	return signed, nil
}

// Verify parses and validates a token previously produced by Issue,
// returning its claims. Used by tests and diagnostic tooling; the server
// itself only issues.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
