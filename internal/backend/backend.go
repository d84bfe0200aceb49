// Package backend is the HTTP client for the catalog/vibe service. Responses
// are decoded into explicit shapes and rejected when required fields are
// missing, so nothing partially formed reaches the store.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNotAuthenticated is returned when the service rejects the session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrBadPayload is returned when a response does not have the expected shape.
	ErrBadPayload = errors.New("unexpected response payload")
)

// RequestError is a failed remote call. Message is safe to show to the user.
type RequestError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Err }

// Client talks to the catalog/vibe service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryWait  time.Duration
}

// New creates a client for the service at baseURL. The client keeps a cookie
// jar so the service's session cookie is sent back on every call.
func New(baseURL string, timeout time.Duration) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		retryWait:  time.Second,
	}
}

// SetSessionCookie seeds the jar with an existing session, e.g. one obtained
// by logging in through a browser.
func (c *Client) SetSessionCookie(name, value string) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid backend url: %w", err)
	}
	c.httpClient.Jar.SetCookies(u, []*http.Cookie{{Name: name, Value: value, Path: "/"}})
	return nil
}

// CatalogDuration looks up an artist's catalog: the roster of main artists,
// the song grid and the total running time.
func (c *Client) CatalogDuration(ctx context.Context, artist string) (CatalogDuration, error) {
	const op = "catalog duration"

	var payload catalogPayload
	if err := c.postJSON(ctx, op, "/api/catalog_duration", map[string]string{"artist": artist}, "Failed to fetch catalog", &payload); err != nil {
		return CatalogDuration{}, err
	}

	result, err := payload.decode()
	if err != nil {
		return CatalogDuration{}, badPayload(op, err)
	}
	return result, nil
}

// VibeSearch runs a lyric vibe search scoped to one artist and returns the
// requested page of matches.
func (c *Client) VibeSearch(ctx context.Context, req VibeSearchRequest) (VibeSearchResult, error) {
	const op = "vibe search"

	body := vibeRequestPayload{Query: req.Query, Artist: req.Artist, Page: req.Page}
	var payload vibePayload
	if err := c.postJSON(ctx, op, "/api/vibe_search", body, "Failed to search for vibes", &payload); err != nil {
		return VibeSearchResult{}, err
	}

	result, err := payload.decode(req.Page)
	if err != nil {
		return VibeSearchResult{}, badPayload(op, err)
	}
	return result, nil
}

// AuthStatus reports whether the current session is authenticated.
func (c *Client) AuthStatus(ctx context.Context) (bool, error) {
	const op = "auth status"

	var payload struct {
		Authenticated *bool `json:"authenticated"`
	}
	if err := c.getJSON(ctx, op, "/api/auth_status", "Failed to check authentication", &payload); err != nil {
		return false, err
	}
	if payload.Authenticated == nil {
		return false, badPayload(op, errors.New("missing authenticated"))
	}
	return *payload.Authenticated, nil
}

// LoginURL returns the URL the user must visit to authenticate.
func (c *Client) LoginURL(ctx context.Context) (string, error) {
	const op = "login"

	var payload struct {
		AuthURL string `json:"auth_url"`
	}
	if err := c.getJSON(ctx, op, "/api/login", "Failed to start login", &payload); err != nil {
		return "", err
	}
	if payload.AuthURL == "" {
		return "", badPayload(op, errors.New("missing auth_url"))
	}
	return payload.AuthURL, nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, in interface{}, fallback string, out interface{}) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, op, fallback, out)
}

func (c *Client) getJSON(ctx context.Context, op, path, fallback string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	return c.do(req, op, fallback, out)
}

func (c *Client) do(req *http.Request, op, fallback string, out interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.doWithRetry(req)
	if err != nil {
		return &RequestError{Op: op, Message: fmt.Sprintf("%s: %v", fallback, err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Op: op, StatusCode: resp.StatusCode, Message: fallback, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp.StatusCode, body, fallback)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return badPayload(op, err)
	}
	return nil
}

// doWithRetry executes the request, retrying once on 429.
// The body is rewound through GetBody before the retry.
func (c *Client) doWithRetry(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusTooManyRequests {
		return resp, nil
	}
	resp.Body.Close()

	wait := c.retryWait
	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil {
			wait = time.Duration(secs) * time.Second
		}
	}

	select {
	case <-req.Context().Done():
		return nil, req.Context().Err()
	case <-time.After(wait):
	}

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}
	return c.httpClient.Do(retry)
}

func statusError(op string, status int, body []byte, fallback string) error {
	msg := fmt.Sprintf("%s (status %d)", fallback, status)

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}

	var cause error
	if status == http.StatusUnauthorized {
		cause = ErrNotAuthenticated
	}
	return &RequestError{Op: op, StatusCode: status, Message: msg, Err: cause}
}

func badPayload(op string, err error) error {
	return &RequestError{
		Op:      op,
		Message: fmt.Sprintf("Unexpected %s response from server", op),
		Err:     fmt.Errorf("%w: %v", ErrBadPayload, err),
	}
}
