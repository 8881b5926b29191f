// Package probe fetches backend endpoints and decodes their responses without
// assuming any wire schema. Fetch captures network failures as data; Decode is
// total and never fails.
package probe

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RawResponse is everything Decode needs from one HTTP exchange. A request
// that never completed has Status 0 and Err set.
type RawResponse struct {
	Status      int
	ContentType string
	Body        string
	Err         error
}

type Fetcher struct {
	client *http.Client
	token  string
}

// NewFetcher returns a Fetcher. token, when non-empty, is sent as a bearer
// Authorization header on every request.
func NewFetcher(token string) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		token:  token,
	}
}

// Fetch performs a GET and returns the raw exchange. It never returns an
// error: transport failures come back inside the RawResponse so one dead
// endpoint cannot abort a batch.
func (f *Fetcher) Fetch(ctx context.Context, url string) RawResponse {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return RawResponse{Status: 0, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return RawResponse{Status: 0, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RawResponse{Status: resp.StatusCode, ContentType: resp.Header.Get("Content-Type"), Err: err}
	}

	return RawResponse{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	}
}
