// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/bookcatalog/internal/platform/metrics"
	"github.com/taibuivan/bookcatalog/internal/platform/middleware"
	"github.com/taibuivan/bookcatalog/internal/platform/sec"
)

type stubVerifier struct {
	claims *sec.AuthClaims
}

func (verifier stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return verifier.claims, nil
}

type stubConfig struct {
	development bool
	origins     []string
}

func (c stubConfig) IsDevelopment() bool       { return c.development }
func (c stubConfig) AllowedOrigins() []string { return c.origins }

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func decodeStatus(t *testing.T, recorder *httptest.ResponseRecorder) int {
	t.Helper()
	var envelope struct {
		StatusCode int `json:"statusCode"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	return envelope.StatusCode
}

/*
TestRequireRole exercises the admin guard for anonymous, user and admin callers.
*/
func TestRequireRole(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		header string
		status int
	}{
		{"anonymous", "", "", http.StatusUnauthorized},
		{"malformed_header", "admin", "Token good", http.StatusUnauthorized},
		{"invalid_token", "admin", "Bearer bad", http.StatusUnauthorized},
		{"plain_user", "user", "Bearer good", http.StatusForbidden},
		{"admin", "admin", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := stubVerifier{claims: &sec.AuthClaims{UserID: "u-1", Role: tt.role}}
			handler := middleware.Authenticate(verifier)(middleware.RequireRole(sec.RoleAdmin)(okHandler))

			request := httptest.NewRequest(http.MethodPost, "/api/books", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.status != http.StatusOK {
				assert.Equal(t, tt.status, decodeStatus(t, recorder))
			}
		})
	}
}

/*
TestAuthenticate_InjectsClaims makes the verified identity available downstream.
*/
func TestAuthenticate_InjectsClaims(t *testing.T) {
	verifier := stubVerifier{claims: &sec.AuthClaims{UserID: "u-42", Role: "user"}}

	var seen string
	handler := middleware.Authenticate(verifier)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetAuthUser(request.Context()).UserID
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Equal(t, "u-42", seen)
}

/*
TestCORS allows listed origins and answers pre-flight requests.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(stubConfig{origins: []string{"https://shop.example.com"}})(okHandler)

	request := httptest.NewRequest(http.MethodOptions, "/api/books", nil)
	request.Header.Set("Origin", "https://shop.example.com")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://shop.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/api/books", nil)
	request.Header.Set("Origin", "https://evil.example.com")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))

	devHandler := middleware.CORS(stubConfig{development: true})(okHandler)
	recorder = httptest.NewRecorder()
	devHandler.ServeHTTP(recorder, request)
	assert.Equal(t, "https://evil.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestRequestID propagates a client-supplied id and generates one otherwise.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "trace-1")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "trace-1", seen)
	assert.Equal(t, "trace-1", recorder.Header().Get("X-Request-ID"))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
}

/*
TestRateLimit rejects requests beyond the burst with a 429 envelope.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 1, 2)(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "203.0.113.9:5555"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

/*
TestPanicRecovery converts a panic into a 500 envelope.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, http.StatusInternalServerError, decodeStatus(t, recorder))
}

/*
TestInstrument labels requests with the matched route pattern.
*/
func TestInstrument(t *testing.T) {
	router := chi.NewRouter()
	router.Use(middleware.Instrument)
	router.Get("/api/books/{id}", okHandler)

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/books/{id}", "200")
	before := testutil.ToFloat64(counter)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/books/abc", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

/*
TestRealIP prefers proxy headers over the socket address.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	assert.Equal(t, "198.51.100.7", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "192.0.2.3")
	assert.Equal(t, "192.0.2.3", middleware.RealIP(request))
}
