package transform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"taskrt/internal/logging"
	"taskrt/internal/plugin"
)

// Kind is the store name of the transformer prototype.
const Kind = "transformer"

// Plugin is the transformer plugin. Frames and declarations are written by
// an importer through the setters; the partition is only recomputed by
// Configure.
type Plugin struct {
	plugin.Base

	frames   []string
	declared []Transformation

	unmapped []Transformation
	needed   []Transformation
}

var (
	_ plugin.Plugin         = (*Plugin)(nil)
	_ plugin.SettingsCopier = (*Plugin)(nil)
)

func NewPlugin(name string) *Plugin {
	return &Plugin{Base: plugin.NewBase(name)}
}

func (p *Plugin) NewInstance() plugin.Plugin { return NewPlugin(p.Name()) }

// AddFrames appends frames not already known, keeping insertion order.
func (p *Plugin) AddFrames(frames ...string) {
	for _, f := range frames {
		if !slices.Contains(p.frames, f) {
			p.frames = append(p.frames, f)
		}
	}
}

func (p *Plugin) SetFrames(frames ...string) {
	p.frames = nil
	p.AddFrames(frames...)
}

// Declare appends transformations; repeated declarations are ignored.
func (p *Plugin) Declare(ts ...Transformation) {
	for _, t := range ts {
		if !slices.ContainsFunc(p.declared, t.Equal) {
			p.declared = append(p.declared, t)
		}
	}
}

func (p *Plugin) Frames() []string { return slices.Clone(p.frames) }

func (p *Plugin) Declared() []Transformation { return slices.Clone(p.declared) }

// Unmapped returns declared transformations with at least one unknown frame,
// as of the last successful Configure.
func (p *Plugin) Unmapped() []Transformation { return slices.Clone(p.unmapped) }

// Needed returns declared transformations whose frames are both known, as
// of the last successful Configure.
func (p *Plugin) Needed() []Transformation { return slices.Clone(p.needed) }

func (p *Plugin) IsMapped(t Transformation) bool {
	return slices.ContainsFunc(p.needed, t.Equal)
}

func (p *Plugin) knows(frame string) bool { return slices.Contains(p.frames, frame) }

// Configure validates every declaration and re-partitions them. On a
// validation failure the previous partition is left as it was.
func (p *Plugin) Configure(context.Context) error {
	if p.Task() == nil {
		return fmt.Errorf("%s configure: %w", p.Name(), plugin.ErrUnbound)
	}
	var errs []error
	for _, f := range p.frames {
		if f == "" {
			errs = append(errs, fmt.Errorf("%s: %w in frame list", p.Name(), ErrEmptyFrame))
		}
	}
	for _, t := range p.declared {
		if err := t.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	var needed, unmapped []Transformation
	for _, t := range p.declared {
		if p.knows(t.Source) && p.knows(t.Target) {
			needed = append(needed, t)
		} else {
			unmapped = append(unmapped, t)
		}
	}
	p.needed, p.unmapped = needed, unmapped

	logging.L().Debug("transformer configured",
		"plugin", p.Name(), "frames", len(p.frames),
		"needed", len(p.needed), "unmapped", len(p.unmapped))
	return nil
}

// CopySettings copies frames and declarations from another transformer.
// Derived state is not copied; Configure rebuilds it.
func (p *Plugin) CopySettings(src plugin.Plugin) error {
	o, ok := src.(*Plugin)
	if !ok {
		return fmt.Errorf("transformer: cannot copy settings from %T", src)
	}
	p.frames = slices.Clone(o.frames)
	p.declared = slices.Clone(o.declared)
	return nil
}

func (p *Plugin) Describe(w io.Writer) {
	fmt.Fprintln(w, "Known Frames :")
	for _, f := range p.frames {
		fmt.Fprintf(w, "    %s\n", f)
	}
	fmt.Fprintln(w, "Unmapped Transformations :")
	for _, t := range p.unmapped {
		fmt.Fprintf(w, "    %s\n", t)
	}
	fmt.Fprintln(w, "Mapped Transformations :")
	for _, t := range p.needed {
		fmt.Fprintf(w, "    %s\n", t)
	}
}

func init() {
	plugin.MustRegister(NewPlugin(Kind))
}
