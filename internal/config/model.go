package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"taskrt/internal/spec"
)

const SupportedSchema = "v1"

// LoadModelSpec reads a model document from path.
func LoadModelSpec(path string) (spec.File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return spec.File{}, err
	}
	return ParseModelSpec(raw)
}

// ParseModelSpec decodes a model document, rejecting unknown fields and
// unsupported schema versions.
func ParseModelSpec(raw []byte) (spec.File, error) {
	var cfg spec.File
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("model document: %w", err)
	}
	if cfg.SchemaVersion == "" {
		cfg.SchemaVersion = SupportedSchema
	}
	if cfg.SchemaVersion != SupportedSchema {
		return cfg, fmt.Errorf("model schema_version %q not supported (want %q)", cfg.SchemaVersion, SupportedSchema)
	}
	seen := map[string]bool{}
	for i, p := range cfg.Plugins {
		if p.Name == "" {
			return cfg, fmt.Errorf("plugins[%d]: name is required", i)
		}
		if seen[p.Name] {
			return cfg, fmt.Errorf("plugins[%d]: duplicate plugin %q", i, p.Name)
		}
		seen[p.Name] = true
	}
	return cfg, nil
}
