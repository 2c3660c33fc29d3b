package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spacesedan/sentiscore/internal/metrics"
)

const (
	DEFAULT_HEALTHCHECK_INTERVAL = 15 * time.Second
	healthcheckTimeout           = 3 * time.Second
)

// Pinger is anything whose reachability can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckStoreHealth pings store once and records the result.
func CheckStoreHealth(ctx context.Context, store Pinger, healthy *atomic.Bool) {
	pingCtx, cancel := context.WithTimeout(ctx, healthcheckTimeout)
	defer cancel()

	err := store.Ping(pingCtx)
	isHealthy := err == nil
	if healthy.Swap(isHealthy) != isHealthy {
		if isHealthy {
			slog.Info("[HealthCheck] Store is healthy again")
		} else {
			slog.Warn("[HealthCheck] Store is unhealthy",
				slog.String("error", err.Error()))
		}
	}

	if isHealthy {
		metrics.StoreHealthy.Set(1)
	} else {
		metrics.StoreHealthy.Set(0)
	}
}

// MonitorStoreHealth runs CheckStoreHealth every interval until ctx ends.
func MonitorStoreHealth(ctx context.Context, store Pinger, healthy *atomic.Bool, interval time.Duration) {
	if interval <= 0 {
		interval = DEFAULT_HEALTHCHECK_INTERVAL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			CheckStoreHealth(ctx, store, healthy)
		}
	}
}
