// Package auth implements optional API key authentication for event
// producers. The middleware guards POST /broadcast when broadcast_auth.mode
// is "apikey"; with mode "none" (or no key configured) it is a
// pass-through.
package auth
