package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/roomgate/roomgate/internal/auth"
	"github.com/roomgate/roomgate/internal/config"
	"github.com/roomgate/roomgate/internal/metrics"
	"github.com/roomgate/roomgate/internal/token"
)

// maxBroadcastBytes caps the POST /broadcast request body.
const maxBroadcastBytes = 1 << 20 // 1 MiB

// Handler is the HTTP handler for the token and broadcast endpoints.
type Handler struct {
	tokens TokenService
	hub    Broadcaster
	events EventRecorder
}

// New creates a Handler wired to the given collaborators and returns the
// configured router. POST /broadcast is guarded by API key auth when
// authCfg enables it.
func New(tokens TokenService, hub Broadcaster, recorder EventRecorder, authCfg config.AuthConfig) http.Handler {
	h := &Handler{tokens: tokens, hub: hub, events: recorder}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", h.health)
	r.Get("/token", h.token)
	r.Get("/config", h.describeConfiguration)
	r.Get("/events/recent", h.recentEvents)
	r.With(auth.APIKey(authCfg.Mode, authCfg.EffectiveHeader(), authCfg.Key)).
		Post("/broadcast", h.broadcast)

	return r
}

// --- route handlers ---------------------------------------------------------

// health returns GET / — liveness and service identity.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Service: token.ServiceName,
	})
}

// token returns GET /token — a signed room access token for the
// room/identity/name query parameters.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	signed, err := h.tokens.RequestToken(q.Get("room"), q.Get("identity"), q.Get("name"))
	if err != nil {
		if token.IsClientError(err) {
			metrics.RecordTokenRequest("invalid")
			jsonErr(w, http.StatusBadRequest, err.Error())
			return
		}
		// Internal failures are reported generically so details (and key
		// material) never reach the caller.
		metrics.RecordTokenRequest("error")
		jsonErr(w, http.StatusInternalServerError, "token generation failed")
		return
	}

	metrics.RecordTokenRequest("success")
	jsonResp(w, http.StatusOK, tokenResponse{Token: signed})
}

// describeConfiguration returns GET /config — non-secret server capabilities.
func (h *Handler) describeConfiguration(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, h.tokens.DescribeConfiguration())
}

// broadcast handles POST /broadcast — forwards the JSON body verbatim to
// every live listener. Delivery is fire-and-forget: the response does not
// report per-connection outcomes.
func (h *Handler) broadcast(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBroadcastBytes))
	if err != nil {
		jsonErr(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if !json.Valid(body) {
		jsonErr(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	h.events.Add(body)
	h.hub.Broadcast(body)
	metrics.RecordBroadcast()

	jsonResp(w, http.StatusOK, statusResponse{Status: "ok"})
}

// recentEvents returns GET /events/recent — broadcast payloads still within
// the retention window, oldest first.
func (h *Handler) recentEvents(w http.ResponseWriter, r *http.Request) {
	recent := h.events.Recent()
	jsonResp(w, http.StatusOK, eventsResponse{Events: recent, Count: len(recent)})
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, detail string) {
	jsonResp(w, code, detailResponse{Detail: detail})
}
