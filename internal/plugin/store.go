package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// Store maps plugin names to prototypes. The store owns the prototypes;
// callers own whatever NewInstance returns.
type Store struct {
	mu         sync.RWMutex
	prototypes map[string]Plugin
}

func NewStore() *Store {
	return &Store{prototypes: make(map[string]Plugin)}
}

// Register adds a prototype. A name can only be registered once.
func (s *Store) Register(p Plugin) error {
	name := p.Name()
	if name == "" {
		return ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.prototypes[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	s.prototypes[name] = p
	return nil
}

// NewInstance spawns a fresh plugin from the prototype called name.
func (s *Store) NewInstance(name string) (Plugin, bool) {
	s.mu.RLock()
	proto, ok := s.prototypes[name]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return proto.NewInstance(), true
}

func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.prototypes))
	for n := range s.prototypes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default is the process-wide store, created on first use.
func Default() *Store {
	defaultOnce.Do(func() { defaultStore = NewStore() })
	return defaultStore
}

// Register is called from each kind's init().
func Register(p Plugin) error { return Default().Register(p) }

// MustRegister panics when p cannot be registered.
func MustRegister(p Plugin) {
	if err := Register(p); err != nil {
		panic(err)
	}
}

func NewInstance(name string) (Plugin, bool) { return Default().NewInstance(name) }
