// Package telemetry exposes prometheus metrics over HTTP.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskrt/internal/logging"
)

// NewRegistry returns a registry carrying the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func Handler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}

// Exposer serves /metrics in the background until Shutdown.
type Exposer struct {
	srv *http.Server
}

func Expose(port int, g prometheus.Gatherer) *Exposer {
	e := &Exposer{srv: &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           Handler(g),
		ReadHeaderTimeout: 5 * time.Second,
	}}
	go func() {
		if err := e.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Component("telemetry").Error("metrics listener", "err", err)
		}
	}()
	return e
}

func (e *Exposer) Shutdown(ctx context.Context) error {
	return e.srv.Shutdown(ctx)
}
