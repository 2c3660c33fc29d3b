package monitoring

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes /metrics and the liveness and readiness probes.
type Server struct {
	echo      *echo.Echo
	addr      string
	healthy   *atomic.Bool
	startTime time.Time
}

func NewServer(addr string, storeHealthy *atomic.Bool) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:      e,
		addr:      addr,
		healthy:   storeHealthy,
		startTime: time.Now(),
	}

	e.GET("/health/live", s.handleLiveness)
	e.GET("/health/ready", s.handleReadiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	return s
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("[OpsServer] Listening", slog.String("addr", s.addr))
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Seconds(),
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	if !s.healthy.Load() {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":       "unhealthy",
			"failed_check": "store",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
