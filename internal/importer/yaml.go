// Package importer populates runtime models from model documents.
package importer

import (
	"context"
	"fmt"
	"sort"

	"taskrt/internal/config"
	"taskrt/internal/logging"
	"taskrt/internal/plugin"
	"taskrt/internal/runtime"
	"taskrt/internal/spec"
	"taskrt/internal/task"
	"taskrt/internal/transform"
)

// YAML imports a parsed model document. Plugins are instantiated from Store
// (the process store when nil).
type YAML struct {
	Doc   spec.File
	Store *plugin.Store
}

var _ runtime.Importer = (*YAML)(nil)

func FromFile(path string, store *plugin.Store) (*YAML, error) {
	doc, err := config.LoadModelSpec(path)
	if err != nil {
		return nil, err
	}
	return &YAML{Doc: doc, Store: store}, nil
}

func FromBytes(raw []byte, store *plugin.Store) (*YAML, error) {
	doc, err := config.ParseModelSpec(raw)
	if err != nil {
		return nil, err
	}
	return &YAML{Doc: doc, Store: store}, nil
}

func (y *YAML) store() *plugin.Store {
	if y.Store == nil {
		return plugin.Default()
	}
	return y.Store
}

// Build creates a model named after the document and imports into it.
func (y *YAML) Build(ctx context.Context, opts ...runtime.Option) (*runtime.Model, error) {
	if y.Doc.Name != "" {
		opts = append([]runtime.Option{runtime.WithName(y.Doc.Name)}, opts...)
	}
	m := runtime.New(task.Empty(), opts...)
	if err := m.ApplyConfig(ctx, y); err != nil {
		return nil, err
	}
	return m, nil
}

// Import writes task attributes and registers one plugin per document
// entry, in document order.
func (y *YAML) Import(_ context.Context, m *runtime.Model) error {
	keys := make([]string, 0, len(y.Doc.Task.Attributes))
	for k := range y.Doc.Task.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := m.Task().Set(k, y.Doc.Task.Attributes[k]); err != nil {
			return err
		}
	}

	for i, ps := range y.Doc.Plugins {
		p, err := y.instantiate(ps)
		if err != nil {
			return fmt.Errorf("plugins[%d]: %w", i, err)
		}
		if err := m.Register(p); err != nil {
			return fmt.Errorf("plugins[%d]: %w", i, err)
		}
	}
	logging.Component("importer").Debug("model imported",
		"model", m.Name(), "plugins", len(y.Doc.Plugins), "attributes", len(keys))
	return nil
}

func (y *YAML) instantiate(ps spec.PluginSpec) (plugin.Plugin, error) {
	kind := ps.Kind
	if kind == "" {
		kind = ps.Name
	}
	p, ok := y.store().NewInstance(kind)
	if !ok {
		return nil, fmt.Errorf("unknown plugin kind %q", kind)
	}
	if p.Name() != ps.Name {
		r, ok := p.(plugin.Renamer)
		if !ok {
			return nil, fmt.Errorf("plugin kind %q (%T) cannot be named %q", kind, p, ps.Name)
		}
		if err := r.Rename(ps.Name); err != nil {
			return nil, err
		}
	}
	if len(ps.Frames) == 0 && len(ps.Transformations) == 0 {
		return p, nil
	}
	tf, ok := p.(*transform.Plugin)
	if !ok {
		return nil, fmt.Errorf("plugin %q (%T) takes no frames or transformations", ps.Name, p)
	}
	tf.AddFrames(ps.Frames...)
	for _, t := range ps.Transformations {
		tf.Declare(transform.New(t.Source, t.Target))
	}
	return tf, nil
}
