// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package reviews talks to the review service that owns ratings and reviews.
//
// # Endpoints
//
//   - GET {base}/api/reviews/book/{bookId}/average-rating -> {data:{averageRating,totalReviews}}
//   - GET {base}/api/reviews/{reviewId}                  -> {data:{rating}}
//
// Both answer in the same {statusCode, message, data} envelope the catalog uses.
package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/bookcatalog/internal/platform/constants"
	"github.com/taibuivan/bookcatalog/internal/platform/ctxutil"
)

// ErrNotFound is returned when the review service answers 404.
var ErrNotFound = errors.New("reviews: not found")

// Summary is the live rating summary of one book.
type Summary struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// Client is a thin HTTP client for the review service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client rooted at baseURL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// AverageRating fetches the current summary of bookID.
func (client *Client) AverageRating(ctx context.Context, bookID string) (Summary, error) {
	var summary Summary
	err := client.get(ctx, "/api/reviews/book/"+url.PathEscape(bookID)+"/average-rating", &summary)
	return summary, err
}

// PreviousRating returns the rating currently recorded for reviewID.
// The boolean is false when the review does not exist.
func (client *Client) PreviousRating(ctx context.Context, reviewID string) (int, bool, error) {
	var review struct {
		Rating int `json:"rating"`
	}

	err := client.get(ctx, "/api/reviews/"+url.PathEscape(reviewID), &review)
	if errors.Is(err, ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return review.Rating, true, nil
}

// Forget is a no-op; the plain client caches nothing.
func (client *Client) Forget(ctx context.Context, bookID string) {}

// get issues a GET and decodes the "data" member of the envelope into target.
func (client *Client) get(ctx context.Context, path string, target any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("reviews: build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		request.Header.Set(constants.HeaderXRequestID, requestID)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("reviews: GET %s: %w", path, err)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, response.Body)
		return ErrNotFound
	case response.StatusCode >= http.StatusBadRequest:
		_, _ = io.Copy(io.Discard, response.Body)
		return fmt.Errorf("reviews: GET %s: unexpected status %d", path, response.StatusCode)
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("reviews: decode %s: %w", path, err)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}

	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return fmt.Errorf("reviews: decode %s data: %w", path, err)
	}
	return nil
}
