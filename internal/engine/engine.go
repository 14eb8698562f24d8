package engine

import (
	"context"
	"errors"
	"time"

	"taskrt/internal/events"
	"taskrt/internal/logging"
	"taskrt/internal/runtime"
	"taskrt/internal/telemetry"
	"taskrt/internal/transport"
)

const shutdownGrace = 5 * time.Second

type Engine struct {
	model     *runtime.Model
	transport *transport.Server
	metrics   *telemetry.Exposer
	events    events.Publisher
}

func (e *Engine) Model() *runtime.Model { return e.model }

func (e *Engine) Transport() *transport.Server { return e.transport }

// Run serves until ctx is done, then stops and cleans up every plugin.
func (e *Engine) Run(ctx context.Context) error {
	served := make(chan error, 1)
	go func() { served <- e.transport.Serve() }()

	select {
	case <-ctx.Done():
	case err := <-served:
		if err != nil {
			logging.Component("engine").Error("transport stopped", "err", err)
		}
	}
	return e.shutdown()
}

func (e *Engine) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	var errs []error
	if err := e.model.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := e.model.Cleanup(ctx); err != nil {
		errs = append(errs, err)
	}
	e.transport.Stop()
	if err := e.metrics.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := e.events.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
