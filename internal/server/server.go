package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Houeta/staff-api/internal/lib/logger/sl"
	"github.com/Houeta/staff-api/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine with all application routes: the
// employee CRUD surface, export, root, health and metrics endpoints.
func NewRouter(
	log *slog.Logger,
	service EmployeeService,
	mtr *metrics.Metrics,
	reg *prometheus.Registry,
	db DBPinger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestObserver(log, mtr))

	handler := NewEmployeeHandler(service, log, mtr)

	router.GET("/", handler.Root)
	router.POST("/employees", handler.Create)
	router.GET("/employees", handler.List)
	router.GET("/employees/export", handler.Export)
	router.PUT("/employees/:id", handler.Update)
	router.DELETE("/employees/:id", handler.Delete)

	router.GET("/healthz", gin.WrapH(NewHealthChecker(db, log)))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return router
}

// requestObserver logs each request and records its duration.
func requestObserver(log *slog.Logger, mtr *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		duration := time.Since(startTime)
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()

		mtr.HTTPRequestDuration.
			WithLabelValues(path, c.Request.Method, strconv.Itoa(status)).
			Observe(duration.Seconds())

		log.DebugContext(c.Request.Context(), "request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", duration.String(),
		)
	}
}

// StartAPIServer runs the HTTP server until ctx is cancelled, then
// shuts it down gracefully.
func StartAPIServer(ctx context.Context, log *slog.Logger, router *gin.Engine, host, port string) {
	const (
		readTimeout     = 10 * time.Second
		writeTimeout    = 30 * time.Second
		idleTimeout     = time.Minute
		shutdownTimeout = 10 * time.Second
	)

	srv := &http.Server{
		Addr:         net.JoinHostPort(host, port),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.InfoContext(ctx, "API server listening", "addr", srv.Addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "API server failed", sl.Err(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(ctx, "API server shutdown failed", sl.Err(err))
			return
		}
		log.InfoContext(ctx, "API server stopped gracefully")
	}
}
