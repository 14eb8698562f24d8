package engine

import (
	"context"
	"errors"
	"fmt"

	"taskrt/internal/config"
	"taskrt/internal/events"
	eventskafka "taskrt/internal/events/kafka"
	eventsstdout "taskrt/internal/events/stdout"
	"taskrt/internal/importer"
	"taskrt/internal/logging"
	"taskrt/internal/runtime"
	"taskrt/internal/telemetry"
	"taskrt/internal/transport"
)

func Bootstrap(ctx context.Context, cfg config.Runtime) (e *Engine, err error) {
	logging.Configure(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	log := logging.Component("engine")

	if cfg.Model == "" {
		return nil, errors.New("engine: no model document configured")
	}

	// 1. lifecycle events
	pub, err := NewPublisher(cfg.Events)
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	defer func() {
		if err != nil {
			_ = pub.Close()
		}
	}()

	// 2. transport server
	srv, err := transport.StartServer(cfg.GRPCPort)
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}

	// 3. model
	reg := telemetry.NewRegistry()
	imp, err := importer.FromFile(cfg.Model, nil)
	if err != nil {
		srv.Stop()
		return nil, fmt.Errorf("model: %w", err)
	}
	model, err := imp.Build(ctx,
		runtime.WithMetrics(runtime.NewMetrics(reg)),
		runtime.WithPublisher(pub),
		runtime.WithHealth(srv),
	)
	if err != nil {
		srv.Stop()
		return nil, fmt.Errorf("model: %w", err)
	}
	if err := model.Configure(ctx); err != nil {
		srv.Stop()
		_ = model.Cleanup(ctx)
		return nil, fmt.Errorf("configure: %w", err)
	}
	if err := model.Start(ctx); err != nil {
		srv.Stop()
		_ = model.Cleanup(ctx)
		return nil, fmt.Errorf("start: %w", err)
	}

	// 4. metrics
	exp := telemetry.Expose(cfg.MetricsPort, reg)

	log.Info("engine ready", "model", model.Name(), "plugins", len(model.Plugins()),
		"grpc", srv.Addr().String(), "metrics_port", cfg.MetricsPort)
	return &Engine{
		model:     model,
		transport: srv,
		metrics:   exp,
		events:    pub,
	}, nil
}

// NewPublisher builds and configures the events driver named in cfg.
func NewPublisher(cfg config.EventsCfg) (events.Publisher, error) {
	pub, err := events.NewPublisher(cfg.Driver)
	if err != nil {
		return nil, err
	}
	var raw any
	switch cfg.Driver {
	case "stdout":
		raw = eventsstdout.Config{Pretty: cfg.Pretty}
	case "kafka":
		raw = eventskafka.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			Acks:    cfg.Kafka.Acks,
			Version: cfg.Kafka.Version,
		}
	}
	if err := pub.Configure(raw); err != nil {
		return nil, err
	}
	return pub, nil
}
