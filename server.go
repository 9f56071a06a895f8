package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter exposes the solver over HTTP:
//
//	POST /solve   {"target": 19, "numbers": [6, 2, 3, 1, 5, 2]}
//	POST /batch   {"puzzles": [...]}
//	POST /verify  {"expression": "6 * 3 + 1", "numbers": [6, 3, 1]}
//	GET  /healthz
//	GET  /metrics
func newRouter(solver *Solver, logger *slog.Logger) *gin.Engine {
	a := &api{solver: solver}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/solve", bodyHandler(a.solve))
	r.POST("/batch", bodyHandler(a.batch))
	r.POST("/verify", bodyHandler(a.verify))
	return r
}

func bodyHandler(h func(context.Context, string) (int, any)) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody{"could not read body"})
			return
		}
		status, payload := h(c.Request.Context(), string(body))
		c.JSON(status, payload)
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// serve runs the HTTP API until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, addr string, solver *Solver, logger *slog.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(solver, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
