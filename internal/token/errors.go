package token

import (
	"errors"
	"fmt"
)

// Kind categorizes token engine failures so callers can tell which input
// rule was violated without parsing the message.
type Kind string

const (
	KindInvalidRoom        Kind = "invalid_room"
	KindInvalidIdentity    Kind = "invalid_identity"
	KindInvalidDisplayName Kind = "invalid_display_name"
	KindInvalidTTL         Kind = "invalid_ttl"
	KindSigningFailure     Kind = "signing_failure"
)

// Error is a token engine failure with a stable kind and a human-readable
// message naming the violated rule.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or "" when err is not a token engine error.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}

// IsClientError reports whether err is caused by invalid client input
// (as opposed to an internal failure such as signing).
func IsClientError(err error) bool {
	switch KindOf(err) {
	case KindInvalidRoom, KindInvalidIdentity, KindInvalidDisplayName, KindInvalidTTL:
		return true
	}
	return false
}

func errf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
