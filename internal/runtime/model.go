// Package runtime owns a task state value and the plugins attached to it,
// and fans lifecycle transitions out to every plugin.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"taskrt/internal/events"
	"taskrt/internal/logging"
	"taskrt/internal/plugin"
	"taskrt/internal/task"
)

// Importer populates a model from a declarative source. It may register
// plugins, write kind specific settings and set task attributes.
type Importer interface {
	Import(ctx context.Context, m *Model) error
}

// Health receives serving status per plugin; service "" is the whole model.
type Health interface {
	SetServing(service string, serving bool)
}

// HookError reports one plugin's failure inside an aggregate call.
type HookError struct {
	Plugin string
	Hook   plugin.Hook
	Err    error
}

func (e *HookError) Error() string { return fmt.Sprintf("%s %s: %v", e.Plugin, e.Hook, e.Err) }
func (e *HookError) Unwrap() error { return e.Err }

type entry struct {
	p     plugin.Plugin
	state plugin.State
}

// Model is the runtime model. It is not safe for concurrent use.
type Model struct {
	name    string
	task    *task.Task
	entries map[string]*entry
	order   []string

	log     *slog.Logger
	metrics *Metrics
	pub     events.Publisher
	health  Health
}

type Option func(*Model)

func WithName(name string) Option { return func(m *Model) { m.name = name } }

func WithLogger(l *slog.Logger) Option { return func(m *Model) { m.log = l } }

func WithMetrics(mt *Metrics) Option { return func(m *Model) { m.metrics = mt } }

func WithPublisher(p events.Publisher) Option { return func(m *Model) { m.pub = p } }

func WithHealth(h Health) Option { return func(m *Model) { m.health = h } }

// New builds an empty model around a copy of initial.
func New(initial *task.Task, opts ...Option) *Model {
	if initial == nil {
		initial = task.Empty()
	}
	m := &Model{
		name:    "runtime",
		task:    initial.Clone(),
		entries: make(map[string]*entry),
		pub:     events.Nop{},
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// logger resolves the default logger per call unless WithLogger pinned one.
func (m *Model) logger() *slog.Logger {
	l := m.log
	if l == nil {
		l = logging.Component("runtime")
	}
	return l.With("model", m.name)
}

func (m *Model) Name() string { return m.name }

// Task exposes the live state. Do not keep it past the model's lifetime.
func (m *Model) Task() *task.Task { return m.task }

// Register takes ownership of p and binds it to this model's task.
// Names are unique; a second registration under a name is rejected.
func (m *Model) Register(p plugin.Plugin) error {
	name := p.Name()
	if name == "" {
		return plugin.ErrEmptyName
	}
	if _, ok := m.entries[name]; ok {
		return fmt.Errorf("%w: %q", plugin.ErrDuplicate, name)
	}
	if p.Task() != nil {
		return fmt.Errorf("%w: %q", plugin.ErrAlreadyBound, name)
	}
	p.Bind(m.task)
	m.entries[name] = &entry{p: p, state: plugin.StateBound}
	m.order = append(m.order, name)
	m.metrics.moved("", plugin.StateBound.String())
	m.setServing(name, false)
	m.logger().Debug("plugin registered", "plugin", name)
	return nil
}

func (m *Model) Plugin(name string) (plugin.Plugin, bool) {
	e, ok := m.entries[name]
	if !ok {
		return nil, false
	}
	return e.p, true
}

func (m *Model) State(name string) (plugin.State, bool) {
	e, ok := m.entries[name]
	if !ok {
		return plugin.StateConstructed, false
	}
	return e.state, true
}

// Plugins returns plugin names in registration order.
func (m *Model) Plugins() []string { return append([]string(nil), m.order...) }

func (m *Model) ApplyConfig(ctx context.Context, imp Importer) error {
	if err := imp.Import(ctx, m); err != nil {
		return fmt.Errorf("apply config: %w", err)
	}
	return nil
}

func (m *Model) Configure(ctx context.Context) error { return m.fanOut(ctx, plugin.HookConfigure) }
func (m *Model) Start(ctx context.Context) error     { return m.fanOut(ctx, plugin.HookStart) }
func (m *Model) Stop(ctx context.Context) error      { return m.fanOut(ctx, plugin.HookStop) }
func (m *Model) Recover(ctx context.Context) error   { return m.fanOut(ctx, plugin.HookRecover) }
func (m *Model) Cleanup(ctx context.Context) error   { return m.fanOut(ctx, plugin.HookCleanup) }

// fanOut runs h on every plugin in registration order. A failing plugin
// does not stop the others; all failures are joined.
func (m *Model) fanOut(ctx context.Context, h plugin.Hook) error {
	var errs []error
	for _, name := range m.order {
		if err := m.invoke(ctx, name, m.entries[name], h); err != nil {
			errs = append(errs, err)
		}
	}
	m.setServing("", m.allStarted())
	if err := errors.Join(errs...); err != nil {
		m.logger().Warn("lifecycle incomplete", "hook", h, "failed", len(errs), "plugins", len(m.order))
		return err
	}
	m.logger().Info("lifecycle done", "hook", h, "plugins", len(m.order))
	return nil
}

func (m *Model) invoke(ctx context.Context, name string, e *entry, h plugin.Hook) error {
	// A bound plugin is configured on its way to started.
	if h == plugin.HookStart && e.state == plugin.StateBound {
		if err := m.invoke(ctx, name, e, plugin.HookConfigure); err != nil {
			return err
		}
	}
	if plugin.Settled(e.state, h) {
		return nil
	}
	next, err := plugin.Next(e.state, h)
	if err != nil {
		m.metrics.observe(name, string(h), resultRejected, 0)
		m.publish(name, h, e.state, err)
		return &HookError{Plugin: name, Hook: h, Err: err}
	}

	began := time.Now()
	err = plugin.Invoke(ctx, e.p, h)
	took := time.Since(began)

	from := e.state
	if err != nil {
		e.state = plugin.Failed(h)
		m.metrics.observe(name, string(h), resultFailed, took)
		m.logger().Warn("hook failed", "plugin", name, "hook", h, "err", err)
	} else {
		e.state = next
		m.metrics.observe(name, string(h), resultOK, took)
		m.logger().Debug("hook ok", "plugin", name, "hook", h, "state", e.state)
	}
	m.metrics.moved(from.String(), e.state.String())
	m.setServing(name, e.state == plugin.StateStarted)
	m.publish(name, h, e.state, err)
	if err != nil {
		return &HookError{Plugin: name, Hook: h, Err: err}
	}
	return nil
}

func (m *Model) allStarted() bool {
	if len(m.order) == 0 {
		return false
	}
	for _, e := range m.entries {
		if e.state != plugin.StateStarted {
			return false
		}
	}
	return true
}

func (m *Model) setServing(service string, serving bool) {
	if m.health != nil {
		m.health.SetServing(service, serving)
	}
}

func (m *Model) publish(name string, h plugin.Hook, s plugin.State, err error) {
	ev := events.Event{
		Model:  m.name,
		Plugin: name,
		Hook:   string(h),
		OK:     err == nil,
		State:  s.String(),
		Task:   m.task.Clone(),
		At:     time.Now().UTC(),
	}
	if err != nil {
		ev.Error = err.Error()
	}
	if perr := m.pub.Publish(ev); perr != nil {
		m.logger().Warn("publish lifecycle event", "plugin", name, "hook", h, "err", perr)
	}
}

// Clone deep-copies the model: the task is copied and every plugin is
// re-created through NewInstance, given its source's settings, bound to the
// new task and, if the source had been configured, configured again.
// The clone is named "<name>/clone", shares the publisher, and records no
// metrics and no health.
func (m *Model) Clone(ctx context.Context) (*Model, error) {
	c := &Model{
		name:    m.name + "/clone",
		task:    m.task.Clone(),
		entries: make(map[string]*entry, len(m.entries)),
		log:     m.log,
		pub:     m.pub,
	}
	for _, name := range m.order {
		src := m.entries[name]
		inst := src.p.NewInstance()
		if sc, ok := inst.(plugin.SettingsCopier); ok {
			if err := sc.CopySettings(src.p); err != nil {
				return nil, fmt.Errorf("clone %s: %w", name, err)
			}
		}
		if err := c.Register(inst); err != nil {
			return nil, fmt.Errorf("clone %s: %w", name, err)
		}
		if configured(src.state) {
			if err := c.invoke(ctx, name, c.entries[name], plugin.HookConfigure); err != nil {
				return nil, fmt.Errorf("clone: %w", err)
			}
		}
	}
	return c, nil
}

func configured(s plugin.State) bool {
	switch s {
	case plugin.StateConfigured, plugin.StateStarted, plugin.StateStopped:
		return true
	}
	return false
}

// Describe writes the task followed by every plugin's own dump.
func (m *Model) Describe(w io.Writer) {
	fmt.Fprintln(w, m.task)
	for _, name := range m.order {
		e := m.entries[name]
		fmt.Fprintf(w, "Plugin %s [%s]\n", name, e.state)
		e.p.Describe(w)
	}
}
