package api

import "github.com/roomgate/roomgate/internal/events"

// healthResponse is the payload for GET /.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// tokenResponse is the payload for GET /token.
type tokenResponse struct {
	Token string `json:"token"`
}

// statusResponse is the payload for POST /broadcast.
type statusResponse struct {
	Status string `json:"status"`
}

// eventsResponse is the payload for GET /events/recent.
type eventsResponse struct {
	Events []*events.Event `json:"events"`
	Count  int             `json:"count"`
}

// detailResponse is the error body for every non-2xx response.
type detailResponse struct {
	Detail string `json:"detail"`
}
