// Package session is the client half of the authentication contract: it holds
// the current token pair, mirrors it to durable storage, attaches bearer
// headers to outbound calls, and on a 401 performs one transparent
// refresh-and-retry before surfacing failure. Both admin front-ends and any
// Go tooling talking to the API share this behavior.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/victorexecutive/ops-service/internal/domain"
)

var (
	// ErrNotAuthenticated is returned when a call needs a session and none is
	// held.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionExpired is returned when the single refresh attempt after a
	// 401 also fails. The stored session has been cleared by then.
	ErrSessionExpired = errors.New("session expired")
)

// User is the cached identity returned by login.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// State is the client-held session: the token pair plus the cached user.
type State struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	TokenType    string    `json:"tokenType"`
	ExpiresIn    int64     `json:"expiresIn"`
	IssuedAt     time.Time `json:"issuedAt"`
	User         User      `json:"user"`
}

// APIError is a non-2xx response after any retry, carrying the server's
// message when the body had one.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      Store

	mu    sync.Mutex
	state *State
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client; the default carries a
// 15 second timeout so a hung server reads as a request failure, not a hang.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithStore sets the durable mirror for the session blob.
func WithStore(store Store) Option {
	return func(c *Client) { c.store = store }
}

// NewClient builds a client against baseURL (".../api") and restores any
// stored session so a process restart does not force a re-login.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		store:      NewMemoryStore(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if stored, err := c.store.Load(); err == nil && stored != nil {
		c.state = stored
	}

	return c
}

// Session returns a copy of the current session, or nil when logged out.
func (c *Client) Session() *State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return nil
	}
	copied := *c.state
	return &copied
}

// Login authenticates and persists the resulting session.
func (c *Client) Login(ctx context.Context, email, password string) (*State, error) {
	body := map[string]string{"email": email, "password": password}

	var resp struct {
		domain.TokenPair
		User User `json:"user"`
	}
	if err := c.call(ctx, http.MethodPost, "/auth/login", body, "", &resp); err != nil {
		return nil, err
	}

	state := &State{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		ExpiresIn:    resp.ExpiresIn,
		IssuedAt:     time.Now(),
		User:         resp.User,
	}

	c.setState(state)
	return state, nil
}

// Refresh exchanges the stored refresh token for a new pair. On any failure
// the session is cleared; the caller must re-authenticate.
func (c *Client) Refresh(ctx context.Context) (*State, error) {
	current := c.Session()
	if current == nil {
		return nil, ErrNotAuthenticated
	}

	var pair domain.TokenPair
	err := c.call(ctx, http.MethodPost, "/auth/refresh",
		map[string]string{"refreshToken": current.RefreshToken}, "", &pair)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			// The server rejected the token; the session is dead.
			c.setState(nil)
			return nil, ErrSessionExpired
		}
		// Network failure: keep the session, the token may still be good.
		return nil, err
	}

	next := &State{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
		IssuedAt:     time.Now(),
		User:         current.User,
	}

	c.setState(next)
	return next, nil
}

// Logout revokes the stored refresh token server-side (best effort) and
// clears the session either way.
func (c *Client) Logout(ctx context.Context) error {
	current := c.Session()
	if current != nil {
		_ = c.call(ctx, http.MethodPost, "/auth/logout",
			map[string]string{"refreshToken": current.RefreshToken}, "", nil)
	}

	c.setState(nil)
	return nil
}

// Do performs an authenticated request. On a 401 it refreshes once and
// retries once; a second rejection is a hard failure.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	current := c.Session()
	if current == nil {
		return ErrNotAuthenticated
	}

	err := c.call(ctx, method, path, body, current.bearer(), out)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		refreshed, refreshErr := c.Refresh(ctx)
		if refreshErr != nil {
			return ErrSessionExpired
		}
		return c.call(ctx, method, path, body, refreshed.bearer(), out)
	}

	return err
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

func (s *State) bearer() string {
	tokenType := s.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return tokenType + " " + s.AccessToken
}

func (c *Client) setState(state *State) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()

	if state == nil {
		_ = c.store.Clear()
		return
	}
	_ = c.store.Save(state)
}

// call executes one HTTP round trip. It never retries; retry policy lives in
// Do.
func (c *Client) call(ctx context.Context, method, path string, body any, authorization string, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	if method != http.MethodGet && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func decodeAPIError(status int, raw []byte) *APIError {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}

	return apiErr
}
