package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/giovaniif/cafeteria/infra/metrics"
	"github.com/giovaniif/cafeteria/infra/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a dependency (e.g. the receipt sink) is
// reachable.
type HealthCheck func(ctx context.Context) error

func NewRouter(checks map[string]HealthCheck) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), tracing.Middleware(), metrics.Middleware)

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		sort.Strings(names)

		status := "healthy"
		results := gin.H{}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				status = "degraded"
				results[name] = "down"
				continue
			}
			results[name] = "up"
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "checks": results})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// StartServer serves the ops endpoints on addr in the background. The
// returned function shuts the server down.
func StartServer(addr string, checks map[string]HealthCheck, logger *slog.Logger) func(context.Context) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(checks),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ops server stopped", "addr", addr, "error", err)
		}
	}()
	logger.Info("ops server listening", "addr", addr)
	return server.Shutdown
}
