package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spacesedan/sentiscore/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (m *mockPinger) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.err
}

func (m *mockPinger) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *mockPinger) getCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestCheckStoreHealth(t *testing.T) {
	pinger := &mockPinger{}
	healthy := &atomic.Bool{}

	CheckStoreHealth(context.Background(), pinger, healthy)
	assert.True(t, healthy.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StoreHealthy))

	pinger.setErr(errors.New("dial tcp: connection refused"))
	CheckStoreHealth(context.Background(), pinger, healthy)
	assert.False(t, healthy.Load())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.StoreHealthy))
}

func TestMonitorStoreHealth_StopsOnCancel(t *testing.T) {
	pinger := &mockPinger{}
	healthy := &atomic.Bool{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		MonitorStoreHealth(ctx, pinger, healthy, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return pinger.getCalls() >= 2 }, time.Second, 5*time.Millisecond)
	assert.True(t, healthy.Load())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}

func TestServer_Probes(t *testing.T) {
	healthy := &atomic.Bool{}
	srv := NewServer(":0", healthy)

	tests := []struct {
		name    string
		path    string
		healthy bool
		code    int
		status  string
	}{
		{name: "live", path: "/health/live", healthy: false, code: http.StatusOK, status: "ok"},
		{name: "ready unhealthy", path: "/health/ready", healthy: false, code: http.StatusServiceUnavailable, status: "unhealthy"},
		{name: "ready healthy", path: "/health/ready", healthy: true, code: http.StatusOK, status: "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			healthy.Store(tt.healthy)
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			srv.echo.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body["status"])
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	srv := NewServer(":0", &atomic.Bool{})
	metrics.LexiconEntries.Set(42)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sentiment_lexicon_entries 42")
}
