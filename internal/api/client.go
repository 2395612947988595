package api

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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wolfeidau/transferctl/internal/logger"
	"github.com/wolfeidau/transferctl/internal/models"
)

// Config holds common client configuration.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	Debug    bool
}

// DefaultConfig returns a default client configuration.
func DefaultConfig() Config {
	return Config{
		Endpoint: "http://127.0.0.1:8000/api/",
		Timeout:  30 * time.Second,
	}
}

// Client is the single chokepoint for all calls to the transfer service.
// It attaches the bearer token to every request while one is set. It does
// not retry and does not cache.
type Client struct {
	base       *url.URL
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the given endpoint.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}

	// Relative reference resolution needs the trailing slash.
	if !strings.HasSuffix(cfg.Endpoint, "/") {
		cfg.Endpoint += "/"
	}

	base, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		base: base,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: logger.NewHTTPRequests(log, nil),
		},
	}, nil
}

// SetToken attaches the token to all subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the token from all subsequent requests.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// Token returns the currently attached token, or empty if none is set.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. The token is returned,
// not attached; attaching is the session store's decision.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "api-token-auth/", creds, &resp)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && (apiErr.StatusCode == 400 || apiErr.StatusCode == 401) {
			return "", fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.Error())
		}
		return "", err
	}

	if resp.Token == "" {
		return "", fmt.Errorf("%w: token missing from auth response", ErrMalformedResponse)
	}

	return resp.Token, nil
}

// CurrentUser fetches the profile the attached token resolves to.
func (c *Client) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, http.MethodGet, "current-user/", nil, &profile); err != nil {
		return nil, err
	}

	if profile.Username == "" {
		return nil, fmt.Errorf("%w: username missing from profile", ErrMalformedResponse)
	}

	return &profile, nil
}

// ListVehicles returns the fleet.
func (c *Client) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := c.do(ctx, http.MethodGet, "vehicles/", nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// CreateVehicle registers a new vehicle.
func (c *Client) CreateVehicle(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error) {
	var created models.Vehicle
	if err := c.do(ctx, http.MethodPost, "vehicles/", vehicle, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListServiceRequests returns the caller's service requests.
func (c *Client) ListServiceRequests(ctx context.Context) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	if err := c.do(ctx, http.MethodGet, "requests/", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// SubmitServiceRequest submits a new service request.
func (c *Client) SubmitServiceRequest(ctx context.Context, request models.ServiceRequest) (*models.ServiceRequest, error) {
	var created models.ServiceRequest
	if err := c.do(ctx, http.MethodPost, "requests/", request, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListTransfers returns the transfers visible to the caller. Operators see
// their assigned transfers; the server scopes the result by role.
func (c *Client) ListTransfers(ctx context.Context) ([]models.Transfer, error) {
	var transfers []models.Transfer
	if err := c.do(ctx, http.MethodGet, "transfers/", nil, &transfers); err != nil {
		return nil, err
	}
	return transfers, nil
}

// Ping reports whether the server is reachable. Any HTTP response counts
// as reachable, including auth rejections.
func (c *Client) Ping(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, "", nil, nil)
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return nil
	}
	return err
}

// do performs a single request against the base endpoint. It never retries.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.ResolveReference(ref).String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &Error{StatusCode: resp.StatusCode, RequestID: requestID}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}
