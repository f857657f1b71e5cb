// Package client is the one authoritative Go client for the ShipTrack
// API, replacing the duplicated browser-side request glue of the two
// original frontends.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client performs authenticated JSON requests. Requests carry the current
// session token as a bearer credential when one is held, otherwise the
// anonymous key.
type Client struct {
	BaseURL string
	AnonKey string

	httpClient *http.Client
	token      string
}

func New(baseURL, anonKey string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		AnonKey:    anonKey,
		httpClient: http.DefaultClient,
	}
}

// SetToken installs the session token used for subsequent requests.
// An empty token falls back to the anonymous key.
func (c *Client) SetToken(token string) {
	c.token = token
}

// BuildQuery encodes filter parameters as a query string, sorted by key.
func BuildQuery(params map[string]string) string {
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	return values.Encode()
}

// Do performs a JSON request against path. A 204 response yields a nil
// result without touching the body; any non-2xx status becomes an error
// carrying the response body text.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.BaseURL == "" {
		return errors.New("client base URL is not set")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	credential := c.token
	if credential == "" {
		credential = c.AnonKey
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message, _ := io.ReadAll(resp.Body)
		if len(message) == 0 {
			return fmt.Errorf("request failed with status %d", resp.StatusCode)
		}
		return errors.New(string(message))
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Get is a convenience wrapper for filtered reads.
func (c *Client) Get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	if qs := BuildQuery(params); qs != "" {
		path = path + "?" + qs
	}
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post sends a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Patch sends a partial update.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}
