// Package supabase provides the admin-privileged client for the external
// auth backend. Regular data access goes straight to Postgres; only the
// user-deletion operation needs the GoTrue admin API.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// ErrMissingCredentials is returned by NewAdminClient when the project URL or
// service key is absent.
var ErrMissingCredentials = errors.New("missing Supabase URL or service key")

// AdminClient performs admin-privileged operations against the auth backend
// using the service-role key.
type AdminClient struct {
	projectURL string
	serviceKey string
	httpClient *http.Client
}

// NewAdminClient creates a new admin auth client.
func NewAdminClient(projectURL, serviceKey string) (*AdminClient, error) {
	if projectURL == "" || serviceKey == "" {
		return nil, ErrMissingCredentials
	}
	return &AdminClient{
		projectURL: projectURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// DeleteUser removes a user from the auth backend. The user's profile data
// is expected to be anonymized separately before this call.
func (c *AdminClient) DeleteUser(ctx context.Context, userID string) error {
	reqURL := c.projectURL + "/auth/v1/admin/users/" + userID

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Message string `json:"msg"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
			return fmt.Errorf("deleting auth user: status %d: %s", resp.StatusCode, body.Message)
		}
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("deleting auth user: status %d", resp.StatusCode)
	}
	return nil
}
