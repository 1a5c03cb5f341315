// Package token implements the room access token engine: input validation
// (Validate), HMAC-SHA256 JWT issuance (Issuer), and the request
// orchestration with structured logging (Service).
//
// Validation runs in a fixed order — room, identity, display name — and
// stops at the first violated rule; the returned *Error carries a Kind
// identifying the offending field. Issued tokens embed a LiveKit-compatible
// video grant (roomJoin + canPublish + canSubscribe + canPublishData) and a
// validity window bounded by [MinTTLHours, MaxTTLHours].
//
// Issuance is pure given the claims and the key: no I/O, no shared mutable
// state, safe to call from any number of goroutines.
package token
