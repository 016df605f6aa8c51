package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/outfitly/outfitly-cli/session"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultRateLimit = rate.Limit(10)
	defaultRateBurst = 20
)

// SessionStore is the slice of the session store the client depends on:
// a token read before every attempt and wholesale login/logout on
// refresh outcomes.
type SessionStore interface {
	State() session.Session
	Login(accessToken, refreshToken string) error
	Logout() error
}

// Client is the transport boundary to the backend. Every outbound
// request carries the current bearer token; a 401 answer is recovered
// at most once per logical request through the refresh pipeline.
type Client struct {
	baseURL        string
	http           *http.Client
	sessions       SessionStore
	refresher      *refresher
	refreshTimeout time.Duration
	limiter        *rate.Limiter
	log            zerolog.Logger
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithLogger sets the request logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithRateLimit overrides the client-side request rate limit.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithRefreshTimeout bounds the token refresh call.
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.refreshTimeout = timeout
	}
}

// New creates a Client bound to baseURL and the given session store.
func New(baseURL string, sessions SessionStore, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[api.New] baseURL is required")
	}
	if sessions == nil {
		return nil, errors.New("[api.New] session store is required")
	}

	client := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &http.Client{Timeout: defaultTimeout},
		sessions:       sessions,
		refreshTimeout: DefaultRefreshTimeout,
		limiter:        rate.NewLimiter(defaultRateLimit, defaultRateBurst),
		log:            zerolog.Nop(),
	}
	for _, opt := range options {
		opt(client)
	}
	client.refresher = newRefresher(client.baseURL+refreshPath, client.refreshTimeout)

	return client, nil
}

// Get issues a GET with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	req, err := jsonRequest(http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	req, err := jsonRequest(http.MethodPut, path, body)
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path}, out)
}

// PostMultipart issues a POST with a multipart form body.
func (c *Client) PostMultipart(ctx context.Context, path string, form *MultipartForm, out any) error {
	body, contentType, err := form.encode()
	if err != nil {
		return err
	}
	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        body,
		contentType: contentType,
	}, out)
}

// request is one logical request. The body is held as bytes so a retry
// replays the exact same payload.
type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

func jsonRequest(method, path string, body any) (request, error) {
	req := request{method: method, path: path}
	if body == nil {
		return req, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return request{}, errors.Wrapf(err, "api marshal %s %s", method, path)
	}
	req.body = payload
	req.contentType = "application/json"
	return req, nil
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "api rate limiter")
	}
	return c.attempt(ctx, req, out, 0)
}

// attempt sends the request and recovers from a 401 at most once.
// attempts counts prior tries of this logical request; recovery only
// happens from attempt zero, which bounds the pipeline to exactly one
// refresh and one retry.
func (c *Client) attempt(ctx context.Context, req request, out any, attempts int) error {
	statusCode, body, err := c.send(ctx, req, c.sessions.State().AccessToken)
	if err != nil {
		return err
	}

	if statusCode == http.StatusUnauthorized && attempts == 0 {
		if err := c.renewSession(ctx, &StatusError{StatusCode: statusCode, Body: body}); err != nil {
			return err
		}
		c.log.Debug().Str("path", req.path).Msg("retrying with refreshed token")
		return c.attempt(ctx, req, out, attempts+1)
	}

	if statusCode < 200 || statusCode >= 300 {
		return &StatusError{StatusCode: statusCode, Body: body}
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "api decode %s %s", req.method, req.path)
	}
	return nil
}

// renewSession runs the recovery pipeline for a 401. No refresh token
// means the session cannot be recovered: log out and report the
// original failure. A failed refresh also logs out (fail closed, stale
// role state must not linger) and reports the refresh failure.
func (c *Client) renewSession(ctx context.Context, original *StatusError) error {
	refreshToken := c.sessions.State().RefreshToken
	if refreshToken == "" {
		_ = c.sessions.Logout()
		return original
	}

	accessToken, rotatedRefresh, err := c.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		_ = c.sessions.Logout()
		return errors.Wrap(err, "api token refresh")
	}
	if rotatedRefresh == "" {
		rotatedRefresh = refreshToken
	}
	return c.sessions.Login(accessToken, rotatedRefresh)
}

func (c *Client) send(ctx context.Context, req request, accessToken string) (int, []byte, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var reader io.Reader
	if req.body != nil {
		reader = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, reader)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "api build %s %s", req.method, req.path)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if accessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	}
	requestID := uuid.New().String()
	httpReq.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "api %s %s", req.method, req.path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "api read %s %s response", req.method, req.path)
	}

	c.log.Debug().
		Str("method", req.method).
		Str("path", req.path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Msg("request completed")

	return resp.StatusCode, body, nil
}
