// Package api implements the HTTP surface of the token server.
//
// New(tokens, hub, recorder, authCfg) returns an http.Handler that serves:
//
//	GET  /               — health: {"status":"healthy","service":...}
//	GET  /token          — signed room token for ?room=&identity=&name=
//	GET  /config         — non-secret server capabilities
//	POST /broadcast      — fan the JSON body out to all live listeners
//	GET  /events/recent  — broadcast payloads within the retention window
//
// Validation failures on /token return 400 with a detail message naming the
// violated rule; internal failures return 500 with a generic detail.
// POST /broadcast always returns 200 once the body is accepted — delivery
// is best-effort and per-connection outcomes are not reported.
//
// The WebSocket endpoint (/ws) and Prometheus exposition (/metrics) are
// mounted alongside this handler by the server entrypoint.
package api
