package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type LogCfg struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

type KafkaEventsCfg struct {
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
	Acks    int16    `koanf:"required_acks"`
	Version string   `koanf:"version"`
}

type EventsCfg struct {
	Driver string         `koanf:"driver"` // none|memory|stdout|kafka
	Pretty bool           `koanf:"pretty"`
	Kafka  KafkaEventsCfg `koanf:"kafka"`
}

// Runtime is the process level configuration of the engine.
type Runtime struct {
	Model       string    `koanf:"model"` // path to the model document
	GRPCPort    int       `koanf:"grpc_port"`
	MetricsPort int       `koanf:"metrics_port"`
	Log         LogCfg    `koanf:"log"`
	Events      EventsCfg `koanf:"events"`
}

// LoadRuntime merges YAML (if present) with env-vars
// (prefix `TASKRT__`, delimiter `__`).
func LoadRuntime(path string) (Runtime, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Runtime{}, err
		}
	}
	sv := k.String("schema_version")
	if sv != "" && sv != SupportedSchema {
		return Runtime{}, fmt.Errorf("runtime schema_version %q not supported (want %s)", sv, SupportedSchema)
	}

	fileModel := k.String("model")

	// TASKRT__EVENTS__KAFKA__TOPIC -> events.kafka.topic
	if err := k.Load(env.Provider("TASKRT__", ".", envKey), nil); err != nil {
		return Runtime{}, err
	}

	var cfg Runtime
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	// A model path written in the file is relative to the file.
	if cfg.Model != "" && cfg.Model == fileModel && !filepath.IsAbs(cfg.Model) {
		cfg.Model = filepath.Join(filepath.Dir(path), cfg.Model)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, "TASKRT__")
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

func applyDefaults(c *Runtime) {
	if c.GRPCPort == 0 {
		c.GRPCPort = 7070
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 9100
	}
	if c.Events.Driver == "" {
		c.Events.Driver = "stdout"
	}
	if c.Events.Kafka.Acks == 0 {
		c.Events.Kafka.Acks = 1
	}
}
