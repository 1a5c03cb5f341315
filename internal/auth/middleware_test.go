package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roomgate/roomgate/internal/auth"
)

func serve(t *testing.T, mode, header, key string, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	auth.APIKey(mode, header, key)(next).ServeHTTP(rec, req)
	return rec
}

func TestAPIKey_PassThroughWhenDisabled(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/broadcast", nil)

	assert.Equal(t, http.StatusOK, serve(t, "none", "x-api-key", "k", req).Code)
	assert.Equal(t, http.StatusOK, serve(t, "", "x-api-key", "k", req).Code)
	assert.Equal(t, http.StatusOK, serve(t, "apikey", "x-api-key", "", req).Code)
}

func TestAPIKey_MissingOrWrongKeyRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/broadcast", nil)
	rec := serve(t, "apikey", "x-api-key", "expected", req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"invalid api key"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/broadcast", nil)
	req.Header.Set("x-api-key", "wrong")
	assert.Equal(t, http.StatusUnauthorized, serve(t, "apikey", "x-api-key", "expected", req).Code)
}

func TestAPIKey_CorrectKeyAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/broadcast", nil)
	req.Header.Set("x-api-key", "expected")
	assert.Equal(t, http.StatusOK, serve(t, "apikey", "x-api-key", "expected", req).Code)
}

func TestAPIKey_CustomHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/broadcast", nil)
	req.Header.Set("x-producer-key", "expected")
	assert.Equal(t, http.StatusOK, serve(t, "apikey", "x-producer-key", "expected", req).Code)
}
