package token

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Input length bounds. Room and identity lengths are counted after
// trimming; the display name limit applies after control stripping.
const (
	minRoomLen     = 3
	maxRoomLen     = 50
	minIdentityLen = 2
	maxIdentityLen = 40
	maxNameLen     = 100
)

var (
	// Room names are lower-cased before matching, so the class is lowercase-only.
	roomPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

	// Identities keep their case and additionally allow dots.
	identityPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// ValidatedRequest is a token request whose fields have passed validation.
// It is produced only by Validate; downstream code never accepts a raw
// room/identity pair in its place. Name is empty when no display name was
// given.
type ValidatedRequest struct {
	Room     string
	Identity string
	Name     string
}

// Validate sanitizes and checks a raw token request. Checks run in a fixed
// order — room, then identity, then display name — and stop at the first
// violation, so the error kind identifies the offending field.
func Validate(room, identity, name string) (ValidatedRequest, error) {
	r, err := validateRoom(room)
	if err != nil {
		return ValidatedRequest{}, err
	}
	id, err := validateIdentity(identity)
	if err != nil {
		return ValidatedRequest{}, err
	}
	n, err := validateDisplayName(name)
	if err != nil {
		return ValidatedRequest{}, err
	}
	return ValidatedRequest{Room: r, Identity: id, Name: n}, nil
}

// validateRoom trims and lower-cases the room name, then checks the
// character class and length bounds.
func validateRoom(room string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(room))
	if s == "" {
		return "", errf(KindInvalidRoom, "room name cannot be empty")
	}
	if !roomPattern.MatchString(s) {
		return "", errf(KindInvalidRoom,
			"room name can only contain lowercase letters, numbers, hyphens, and underscores")
	}
	if n := utf8.RuneCountInString(s); n < minRoomLen {
		return "", errf(KindInvalidRoom, "room name must be at least %d characters long", minRoomLen)
	} else if n > maxRoomLen {
		return "", errf(KindInvalidRoom, "room name cannot exceed %d characters", maxRoomLen)
	}
	return s, nil
}

// validateIdentity trims the identity (case is preserved), then checks the
// character class and length bounds.
func validateIdentity(identity string) (string, error) {
	s := strings.TrimSpace(identity)
	if s == "" {
		return "", errf(KindInvalidIdentity, "identity cannot be empty")
	}
	if !identityPattern.MatchString(s) {
		return "", errf(KindInvalidIdentity,
			"identity can only contain letters, numbers, dots, hyphens, and underscores")
	}
	if n := utf8.RuneCountInString(s); n < minIdentityLen {
		return "", errf(KindInvalidIdentity, "identity must be at least %d characters long", minIdentityLen)
	} else if n > maxIdentityLen {
		return "", errf(KindInvalidIdentity, "identity cannot exceed %d characters", maxIdentityLen)
	}
	return s, nil
}

// validateDisplayName trims the optional display name and strips control
// characters. An absent or whitespace-only name yields "" without error.
func validateDisplayName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return "", nil
	}
	s = strings.TrimSpace(stripControl(s))
	if s == "" {
		return "", nil
	}
	if utf8.RuneCountInString(s) > maxNameLen {
		return "", errf(KindInvalidDisplayName, "display name cannot exceed %d characters", maxNameLen)
	}
	return s, nil
}

// stripControl removes C0 control characters and DEL (0x00–0x1F, 0x7F).
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
