// Package fitness holds a thin client for the upstream fitness account
// API. It carries no logic of its own; every method is request/response
// glue invoked by tool handlers once the authorization gate has admitted
// the request.
package fitness

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// API is the narrow surface the tool layer depends on.
type API interface {
	DailySummary(ctx context.Context, date string) (map[string]interface{}, error)
	Activities(ctx context.Context, limit int) ([]map[string]interface{}, error)
	Sleep(ctx context.Context, date string) (map[string]interface{}, error)
}

// Client calls the fitness account REST API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(c *Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTokenSource authenticates outbound calls with the supplied OAuth2
// token source.
func WithTokenSource(source oauth2.TokenSource) Option {
	return func(c *Client) {
		c.httpClient = oauth2.NewClient(context.Background(), source)
	}
}

// New creates a client rooted at baseURL.
func New(baseURL string, options ...Option) *Client {
	ret := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// DailySummary returns the account's wellness summary for a calendar date.
func (c *Client) DailySummary(ctx context.Context, date string) (map[string]interface{}, error) {
	var ret map[string]interface{}
	err := c.get(ctx, "/usersummary/daily", url.Values{"calendarDate": []string{date}}, &ret)
	return ret, err
}

// Activities returns the most recent activities, newest first.
func (c *Client) Activities(ctx context.Context, limit int) ([]map[string]interface{}, error) {
	var ret []map[string]interface{}
	err := c.get(ctx, "/activitylist/activities", url.Values{"limit": []string{strconv.Itoa(limit)}}, &ret)
	return ret, err
}

// Sleep returns the sleep data recorded for a calendar date.
func (c *Client) Sleep(ctx context.Context, date string) (map[string]interface{}, error) {
	var ret map[string]interface{}
	err := c.get(ctx, "/wellness/dailySleep", url.Values{"date": []string{date}}, &ret)
	return ret, err
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	URL := c.baseURL + path
	if len(query) > 0 {
		URL += "?" + query.Encode()
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %v: %w", path, err)
	}
	request.Header.Set("Accept", "application/json")
	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to call %v: %w", path, err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %v from %v", response.StatusCode, path)
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %v response: %w", path, err)
	}
	return nil
}

var _ API = (*Client)(nil)
