package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dalil-app/dalil"
	dalilhttp "github.com/dalil-app/dalil/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>Visa service</body></html>"))
	}))
	defer srv.Close()

	f := dalilhttp.NewFetcher(dalilhttp.WithMinDelay(time.Millisecond))
	defer f.Close()

	html, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "Visa service")
}

func TestFetcher_RotatesIdentity(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var agents []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		agents = append(agents, r.Header.Get("User-Agent"))
		mu.Unlock()
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := dalilhttp.NewFetcher(
		dalilhttp.WithMinDelay(time.Millisecond),
		dalilhttp.WithUserAgents([]string{"agent-a", "agent-b"}),
	)
	defer f.Close()

	for i := 0; i < 3; i++ {
		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
	}

	require.Len(t, agents, 3)
	assert.NotEqual(t, agents[0], agents[1])
	assert.NotEqual(t, agents[1], agents[2])
}

func TestFetcher_RateLimitDoublesDelay(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	start := 10 * time.Millisecond
	f := dalilhttp.NewFetcher(dalilhttp.WithMinDelay(start))
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Equal(t, dalil.ERATELIMIT, dalil.ErrorCode(err))
	assert.Equal(t, 2*start, f.MinDelay())

	_, err = f.Fetch(context.Background(), srv.URL)
	assert.Equal(t, dalil.ERATELIMIT, dalil.ErrorCode(err))
	assert.Equal(t, 4*start, f.MinDelay())

	// No automatic decrease; only an explicit reset restores the delay.
	f.ResetDelay(start)
	assert.Equal(t, start, f.MinDelay())
}

func TestFetcher_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := dalilhttp.NewFetcher(dalilhttp.WithMinDelay(time.Millisecond))
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)

	assert.Error(t, err)
	assert.NotEqual(t, dalil.ERATELIMIT, dalil.ErrorCode(err))
}

func TestFetcher_ContextCancellation(t *testing.T) {
	t.Parallel()

	f := dalilhttp.NewFetcher(dalilhttp.WithMinDelay(time.Second))
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, "https://portal.example")
	assert.Error(t, err)
}
