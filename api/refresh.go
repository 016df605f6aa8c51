package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const refreshPath = "/auth/refresh"

// DefaultRefreshTimeout bounds the refresh call. A hanging refresh
// would otherwise hang every request waiting on it; timing out counts
// as a refresh failure and forces logout.
const DefaultRefreshTimeout = 10 * time.Second

// refresher exchanges refresh tokens for fresh token pairs on a
// dedicated HTTP client that never goes through the authenticated
// pipeline. Concurrent callers coalesce behind a single in-flight
// exchange: one request hits the backend and every waiter observes its
// result.
type refresher struct {
	endpoint string
	http     *http.Client

	lock     sync.Mutex
	inflight *refreshCall
}

type refreshCall struct {
	done         chan struct{}
	accessToken  string
	refreshToken string
	err          error
}

func newRefresher(endpoint string, timeout time.Duration) *refresher {
	return &refresher{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Refresh returns a fresh token pair for refreshToken. The returned
// refresh token is empty when the backend does not rotate it.
func (r *refresher) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	r.lock.Lock()
	if call := r.inflight; call != nil {
		r.lock.Unlock()
		select {
		case <-call.done:
			return call.accessToken, call.refreshToken, call.err
		case <-ctx.Done():
			return "", "", ctx.Err()
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	r.inflight = call
	r.lock.Unlock()

	call.accessToken, call.refreshToken, call.err = r.exchange(ctx, refreshToken)
	close(call.done)

	r.lock.Lock()
	r.inflight = nil
	r.lock.Unlock()

	return call.accessToken, call.refreshToken, call.err
}

func (r *refresher) exchange(ctx context.Context, refreshToken string) (string, string, error) {
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", "", errors.Wrap(err, "refresh marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", "", errors.Wrap(err, "refresh build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return "", "", errors.Wrap(err, "refresh request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", errors.Wrap(err, "refresh read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	tokens, err := ParseTokenResponse(body)
	if err != nil {
		return "", "", err
	}
	return tokens.AccessToken, tokens.RefreshToken, nil
}
