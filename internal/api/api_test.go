// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookcatalog/internal/api"
	"github.com/taibuivan/bookcatalog/internal/core/book"
	"github.com/taibuivan/bookcatalog/internal/core/reference"
	"github.com/taibuivan/bookcatalog/internal/platform/config"
	"github.com/taibuivan/bookcatalog/internal/platform/sec"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type rejectAll struct{}

func (rejectAll) VerifyToken(token string) (*sec.AuthClaims, error) {
	return nil, errors.New("invalid")
}

func readiness(t *testing.T, deps api.HealthDependencies) (int, map[string]any) {
	t.Helper()
	_, ready := api.NewHealthHandlers(deps, discard)

	recorder := httptest.NewRecorder()
	ready(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	return recorder.Code, body.Data
}

/*
TestReadiness reports ready only when every dependency answers.
*/
func TestReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	failing := func(context.Context) error { return errors.New("dial tcp: connection refused") }

	tests := []struct {
		name   string
		deps   api.HealthDependencies
		status int
		state  string
	}{
		{"all_healthy", api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK, "ready"},
		{"database_down", api.HealthDependencies{CheckDatabase: failing, CheckCache: healthy}, http.StatusServiceUnavailable, "degraded"},
		{"cache_down", api.HealthDependencies{CheckDatabase: healthy, CheckCache: failing}, http.StatusServiceUnavailable, "degraded"},
		{"no_checks", api.HealthDependencies{}, http.StatusOK, "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := readiness(t, tt.deps)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.state, data["status"])
		})
	}
}

/*
TestRouter serves probes, metrics and locally stored uploads.
*/
func TestRouter(t *testing.T) {
	context, cancel := context.WithCancel(context.Background())
	defer cancel()

	publicDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(publicDir, "uploads", "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "uploads", "images", "cover.png"), []byte("png"), 0o644))

	cfg := &config.Config{Environment: "development", UploadPrefix: "uploads/images", PublicDir: publicDir}
	liveness, ready := api.NewHealthHandlers(api.HealthDependencies{}, discard)

	router := api.NewRouter(context, cfg, discard, rejectAll{}, api.Handlers{
		Liveness:  liveness,
		Readiness: ready,
		Book:      book.NewHandler(book.NewService(nil, nil, nil, nil, nil), 1<<20),
		Reference: reference.NewHandler(reference.NewService(nil)),
		Uploads:   api.UploadsHandler(publicDir),
	})

	tests := []struct {
		path   string
		status int
	}{
		{"/health", http.StatusOK},
		{"/ready", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/uploads/images/cover.png", http.StatusOK},
		{"/uploads/images/missing.png", http.StatusNotFound},
		{"/api/books/not-an-id", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
