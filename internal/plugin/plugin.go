package plugin

import (
	"context"
	"errors"
	"fmt"
	"io"

	"taskrt/internal/task"
)

var (
	ErrUnbound           = errors.New("plugin: no task bound")
	ErrAlreadyBound      = errors.New("plugin: already bound to a task")
	ErrDuplicate         = errors.New("plugin: duplicate name")
	ErrEmptyName         = errors.New("plugin: empty name")
	ErrInvalidTransition = errors.New("plugin: invalid lifecycle transition")
)

// Plugin is a behaviour unit attached to one task. Hooks that a kind does
// not care about are inherited from Base and succeed trivially.
type Plugin interface {
	Name() string

	// NewInstance returns an unconfigured plugin of the same kind. The
	// result shares no state with the receiver.
	NewInstance() Plugin

	// Bind sets the non-owning task back-reference. It must happen before
	// any hook runs.
	Bind(t *task.Task)
	Task() *task.Task

	Configure(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Recover(ctx context.Context) error
	Cleanup(ctx context.Context) error

	// Describe writes a human readable dump of kind specific state.
	Describe(w io.Writer)
}

// SettingsCopier is implemented by kinds whose settings are populated from
// outside (by an importer) and must survive cloning through NewInstance.
type SettingsCopier interface {
	CopySettings(src Plugin) error
}

// Renamer lets a freshly spawned instance take a name other than its
// prototype's. Renaming is refused once the plugin is bound.
type Renamer interface {
	Rename(name string) error
}

// Base carries the name and task reference and the default hooks.
type Base struct {
	name string
	task *task.Task
}

func NewBase(name string) Base { return Base{name: name} }

func (b *Base) Name() string { return b.name }

func (b *Base) Rename(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if b.task != nil {
		return fmt.Errorf("rename %q: %w", b.name, ErrAlreadyBound)
	}
	b.name = name
	return nil
}

func (b *Base) Bind(t *task.Task) { b.task = t }

func (b *Base) Task() *task.Task { return b.task }

func (*Base) Configure(context.Context) error { return nil }
func (*Base) Start(context.Context) error     { return nil }
func (*Base) Stop(context.Context) error      { return nil }
func (*Base) Recover(context.Context) error   { return nil }
func (*Base) Cleanup(context.Context) error   { return nil }
func (*Base) Describe(io.Writer)              {}

// Invoke runs one hook on p, refusing to do so while p has no task.
func Invoke(ctx context.Context, p Plugin, h Hook) error {
	if p.Task() == nil {
		return fmt.Errorf("%s %s: %w", p.Name(), h, ErrUnbound)
	}
	switch h {
	case HookConfigure:
		return p.Configure(ctx)
	case HookStart:
		return p.Start(ctx)
	case HookStop:
		return p.Stop(ctx)
	case HookRecover:
		return p.Recover(ctx)
	case HookCleanup:
		return p.Cleanup(ctx)
	default:
		return fmt.Errorf("plugin: unknown hook %q", h)
	}
}
