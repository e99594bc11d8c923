// Package tmdb provides a client for The Movie Database REST API.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	userAgent      = "sofaymanta-backend/1.0"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when a requested media, season, episode or
	// person id does not exist upstream.
	ErrNotFound = errors.New("not found")

	// ErrMissingAccessToken is returned by NewClient when no token is given.
	ErrMissingAccessToken = errors.New("missing TMDB access token")
)

// Client is a TMDB API client. All requests carry the configured read access
// token as a bearer header.
type Client struct {
	accessToken string
	httpClient  *http.Client
	baseURL     string
}

// NewClient creates a new TMDB API client.
func NewClient(accessToken string) (*Client, error) {
	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}
	return &Client{
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: defaultBaseURL,
	}, nil
}

// get performs a GET request against path and decodes the JSON response into v.
// A 404 status maps to ErrNotFound; other non-2xx statuses surface the
// upstream status message.
func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.StatusMessage != "" {
			return fmt.Errorf("TMDB status %d: %s", resp.StatusCode, apiErr.StatusMessage)
		}
		return fmt.Errorf("TMDB status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
