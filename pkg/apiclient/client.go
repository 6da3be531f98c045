package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	console "github.com/goliatone/go-admin-console/components/console"
)

// Config configures the HTTP admin API client.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenStore
	// OnLogout runs after a failed refresh. The token store is already
	// cleared when it fires.
	OnLogout func()
	Now      func() time.Time
}

// Client talks to the reseller admin REST API: Bearer auth from the token
// store, one transparent refresh+retry on 401, forced logout when the
// refresh itself fails.
type Client struct {
	baseURL  string
	client   *http.Client
	tokens   TokenStore
	onLogout func()
	now      func() time.Time
}

// NewClient builds a client for a live admin API.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("apiclient: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	tokens := cfg.Tokens
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		client:   httpClient,
		tokens:   tokens,
		onLogout: cfg.OnLogout,
		now:      now,
	}, nil
}

// Tokens exposes the token store so embedding processes can persist it.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// tokenResponse mirrors the upstream token endpoint payload; user_id is a
// JSON number there.
type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	UserID  int64  `json:"user_id"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// Login exchanges credentials for a session and stores it.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	payload := map[string]string{"username": username, "password": password}
	var resp tokenResponse
	if err := c.roundTrip(ctx, http.MethodPost, "/token/", nil, payload, &resp, false); err != nil {
		return Session{}, err
	}
	now := c.now()
	session := Session{
		Access:        resp.Access,
		Refresh:       resp.Refresh,
		UserID:        strconv.FormatInt(resp.UserID, 10),
		AccessExpiry:  tokenExpiry(resp.Access, AccessTokenTTL, now),
		RefreshExpiry: tokenExpiry(resp.Refresh, RefreshTokenTTL, now),
	}
	c.tokens.Save(session)
	return session, nil
}

// Logout clears the session and fires the logout callback.
func (c *Client) Logout() {
	c.tokens.Clear()
	if c.onLogout != nil {
		c.onLogout()
	}
}

// refreshAccess trades the refresh token for a new access token. Any
// failure forces a logout.
func (c *Client) refreshAccess(ctx context.Context) error {
	session, ok := c.tokens.Session()
	if !ok || session.Refresh == "" {
		c.Logout()
		return ErrNotAuthenticated
	}
	var resp refreshResponse
	err := c.roundTrip(ctx, http.MethodPost, "/token/refresh/", nil, map[string]string{"refresh": session.Refresh}, &resp, false)
	if err != nil {
		c.Logout()
		return fmt.Errorf("apiclient: refresh token: %w", err)
	}
	session.Access = resp.Access
	session.AccessExpiry = tokenExpiry(resp.Access, AccessTokenTTL, c.now())
	c.tokens.Save(session)
	return nil
}

// do issues an authenticated request. On a 401 it refreshes once and
// retries; a second 401 or a failed refresh surfaces as an error after the
// forced logout.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, target any) error {
	err := c.roundTrip(ctx, method, path, query, payload, target, true)
	var apiErr *APIError
	if err == nil || !errors.As(err, &apiErr) || !apiErr.Unauthorized() {
		return err
	}
	if refreshErr := c.refreshAccess(ctx); refreshErr != nil {
		return refreshErr
	}
	return c.roundTrip(ctx, method, path, query, payload, target, true)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload, target any, authed bool) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("apiclient: encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		if session, ok := c.tokens.Session(); ok && session.Access != "" {
			req.Header.Set("Authorization", "Bearer "+session.Access)
		}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var parsed errorBody
		raw, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(raw, &parsed)
		return &APIError{Status: resp.StatusCode, Message: parsed.text()}
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}

// listEnvelope is the upstream pagination wrapper.
type listEnvelope[E any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []E     `json:"results"`
}

func listQuery(limit, offset int, extra url.Values) url.Values {
	query := url.Values{}
	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	return query
}

func list[E any](ctx context.Context, c *Client, path string, limit, offset int, extra url.Values) (console.Page[E], error) {
	var envelope listEnvelope[E]
	if err := c.do(ctx, http.MethodGet, path, listQuery(limit, offset, extra), nil, &envelope); err != nil {
		return console.Page[E]{}, err
	}
	return console.Page[E]{Count: envelope.Count, Results: envelope.Results}, nil
}

// Statistics fetches the dashboard stats for an uppercased range tag
// ("30D"); an empty tag means all time.
func (c *Client) Statistics(ctx context.Context, rangeTag string) (console.Statistics, error) {
	query := url.Values{}
	if rangeTag != "" {
		query.Set("range", rangeTag)
	}
	var stats console.Statistics
	if err := c.do(ctx, http.MethodGet, "/dashboard/statistics/", query, nil, &stats); err != nil {
		return console.Statistics{}, err
	}
	return stats, nil
}

// StatsFetcher adapts Statistics to the console's fetcher contract.
func (c *Client) StatsFetcher() console.StatsFetcher {
	return func(ctx context.Context, rangeTag string) (console.Statistics, error) {
		return c.Statistics(ctx, rangeTag)
	}
}
