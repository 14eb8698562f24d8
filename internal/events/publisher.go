// Package events carries lifecycle hook outcomes out of a runtime model.
// Drivers register themselves by name, like sinks in a pipeline.
package events

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"taskrt/internal/task"
)

// Event is one hook outcome for one plugin.
type Event struct {
	Model  string    `json:"model"`
	Plugin string    `json:"plugin"`
	Hook   string    `json:"hook"`
	OK     bool      `json:"ok"`
	State  string    `json:"state"`
	Error  string    `json:"error,omitempty"`
	At     time.Time `json:"at"`

	// Task is a snapshot of the task state right after the hook.
	Task *task.Task `json:"task,omitempty"`
}

// Publisher is the behaviour every driver exposes.
type Publisher interface {
	Configure(any) error // driver specific config struct
	Publish(Event) error
	Close() error // idempotent
}

/*──────── registry ───────*/

type factory = func() Publisher

var (
	mu  sync.RWMutex
	reg = map[string]factory{}
)

func Register(name string, f factory) {
	mu.Lock()
	reg[name] = f
	mu.Unlock()
}

func NewPublisher(name string) (Publisher, error) {
	mu.RLock()
	f, ok := reg[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("events: unknown publisher %q", name)
	}
	return f(), nil
}

func Drivers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(reg))
	for n := range reg {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

/*──────── built-in drivers ───────*/

// Nop drops every event.
type Nop struct{}

func (Nop) Configure(any) error { return nil }
func (Nop) Publish(Event) error { return nil }
func (Nop) Close() error        { return nil }

// Recorder keeps events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (*Recorder) Configure(any) error { return nil }

func (r *Recorder) Publish(e Event) error {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	return nil
}

func (*Recorder) Close() error { return nil }

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func init() {
	Register("none", func() Publisher { return Nop{} })
	Register("memory", func() Publisher { return &Recorder{} })
}
