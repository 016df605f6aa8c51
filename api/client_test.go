package api_test

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/outfitly/outfitly-cli/api"
	"github.com/outfitly/outfitly-cli/session"
	"github.com/outfitly/outfitly-cli/session/keyringfake"
)

const (
	oldRefreshToken = "refresh-old"
	newRefreshToken = "refresh-new"
)

func makeToken(t *testing.T, role string) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	// A unique jti keeps successive tokens distinct; the tests rely on
	// old and new tokens being distinguishable strings.
	payload, err := json.Marshal(map[string]any{"role": role, "jti": uuid.NewString()})
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func newStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.NewStore(keyringfake.NewFakeKeyring())
	require.NoError(t, err)
	return store
}

func newClient(t *testing.T, serverURL string, store *session.Store, options ...api.Option) *api.Client {
	t.Helper()
	client, err := api.New(serverURL, store, options...)
	require.NoError(t, err)
	return client
}

func writeTokens(w http.ResponseWriter, accessToken, refreshToken string) {
	_ = json.NewEncoder(w).Encode(map[string]string{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

func TestClientAttachesCredentials(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	store := newStore(t)
	token := makeToken(t, "user")
	require.NoError(t, store.Login(token, oldRefreshToken))

	client := newClient(t, server.URL, store)
	require.NoError(t, client.Get(t.Context(), "/things", nil, nil))

	require.Equal(t, "Bearer "+token, gotAuth)
	require.NotEmpty(t, gotRequestID)
}

func TestClientRefreshRetry(t *testing.T) {
	oldToken := makeToken(t, "user")
	newToken := makeToken(t, "user")

	t.Run("one refresh, one retry, retry carries the new token", func(t *testing.T) {
		var refreshCalls, apiCalls int32
		var retryAuth, sentRefreshToken string

		mux := http.NewServeMux()
		mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&refreshCalls, 1)
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			sentRefreshToken = body["refreshToken"]
			writeTokens(w, newToken, newRefreshToken)
		})
		mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&apiCalls, 1)
			if r.Header.Get("Authorization") != "Bearer "+newToken {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			retryAuth = r.Header.Get("Authorization")
			fmt.Fprint(w, `{}`)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		store := newStore(t)
		require.NoError(t, store.Login(oldToken, oldRefreshToken))

		client := newClient(t, server.URL, store)
		require.NoError(t, client.Get(t.Context(), "/things", nil, nil))

		require.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
		require.Equal(t, int32(2), atomic.LoadInt32(&apiCalls))
		require.Equal(t, oldRefreshToken, sentRefreshToken)
		require.Equal(t, "Bearer "+newToken, retryAuth)
		require.Equal(t, newToken, store.State().AccessToken)
		require.Equal(t, newRefreshToken, store.State().RefreshToken)
	})

	t.Run("backend keeps old refresh token when not rotated", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			writeTokens(w, newToken, "")
		})
		mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+newToken {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprint(w, `{}`)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		store := newStore(t)
		require.NoError(t, store.Login(oldToken, oldRefreshToken))

		client := newClient(t, server.URL, store)
		require.NoError(t, client.Get(t.Context(), "/things", nil, nil))
		require.Equal(t, oldRefreshToken, store.State().RefreshToken)
	})

	t.Run("second 401 propagates without a second refresh", func(t *testing.T) {
		var refreshCalls, apiCalls int32

		mux := http.NewServeMux()
		mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&refreshCalls, 1)
			writeTokens(w, newToken, newRefreshToken)
		})
		mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&apiCalls, 1)
			w.WriteHeader(http.StatusUnauthorized)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		store := newStore(t)
		require.NoError(t, store.Login(oldToken, oldRefreshToken))

		client := newClient(t, server.URL, store)
		err := client.Get(t.Context(), "/things", nil, nil)

		require.True(t, api.IsUnauthorized(err))
		require.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
		require.Equal(t, int32(2), atomic.LoadInt32(&apiCalls))
	})

	t.Run("missing refresh token logs out without a refresh call", func(t *testing.T) {
		var refreshCalls int32

		mux := http.NewServeMux()
		mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&refreshCalls, 1)
		})
		mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		store := newStore(t)
		require.NoError(t, store.Login(oldToken, ""))

		client := newClient(t, server.URL, store)
		err := client.Get(t.Context(), "/things", nil, nil)

		require.True(t, api.IsUnauthorized(err))
		require.Zero(t, atomic.LoadInt32(&refreshCalls))
		require.False(t, store.State().IsAuthenticated)
	})

	t.Run("refresh failure logs out and propagates the refresh error", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		store := newStore(t)
		require.NoError(t, store.Login(oldToken, oldRefreshToken))

		client := newClient(t, server.URL, store)
		err := client.Get(t.Context(), "/things", nil, nil)

		require.Error(t, err)
		require.True(t, api.IsStatus(err, http.StatusInternalServerError))
		require.False(t, store.State().IsAuthenticated)
	})

	t.Run("hanging refresh times out and logs out", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
			writeTokens(w, newToken, newRefreshToken)
		})
		mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		store := newStore(t)
		require.NoError(t, store.Login(oldToken, oldRefreshToken))

		client := newClient(t, server.URL, store, api.WithRefreshTimeout(50*time.Millisecond))
		err := client.Get(t.Context(), "/things", nil, nil)

		require.Error(t, err)
		require.False(t, store.State().IsAuthenticated)
	})
}

func TestClientPassesOtherStatusesThrough(t *testing.T) {
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	})
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"nope"}`, http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := newStore(t)
	require.NoError(t, store.Login(makeToken(t, "user"), oldRefreshToken))

	client := newClient(t, server.URL, store)
	err := client.Get(t.Context(), "/things", nil, nil)

	require.True(t, api.IsStatus(err, http.StatusNotFound))
	require.Zero(t, atomic.LoadInt32(&refreshCalls))
	require.True(t, store.State().IsAuthenticated)
}

// Concurrent 401s must coalesce behind one refresh call: every waiter
// retries against the single exchanged token pair.
func TestClientCoalescesConcurrentRefreshes(t *testing.T) {
	const workers = 5

	oldToken := makeToken(t, "user")
	newToken := makeToken(t, "user")

	var refreshCalls, arrived int32
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		// Hold the exchange open long enough for every worker to reach
		// the refresh path.
		time.Sleep(200 * time.Millisecond)
		writeTokens(w, newToken, newRefreshToken)
	})
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer "+newToken {
			fmt.Fprint(w, `{}`)
			return
		}
		// Stall the first wave so all workers fail together.
		if atomic.AddInt32(&arrived, 1) == workers {
			close(release)
		}
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := newStore(t)
	require.NoError(t, store.Login(oldToken, oldRefreshToken))

	client := newClient(t, server.URL, store)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = client.Get(t.Context(), "/things", nil, nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
	require.Equal(t, newToken, store.State().AccessToken)
}

func TestClientDecodesInto(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"summer fit"}`)
	}))
	defer server.Close()

	client := newClient(t, server.URL, newStore(t))

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, client.Get(t.Context(), "/things/1", nil, &out))
	require.Equal(t, "summer fit", out.Name)
}
