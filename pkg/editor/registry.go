package editor

import (
	"sort"
	"strings"
	"sync"
)

// Built-in editor identifiers exposed by the registry.
const (
	EditorRich  = "rich"
	EditorPlain = "plain"
)

type entry struct {
	name     string
	priority int
	factory  Factory
	order    int
}

// Registry selects editor factories by name. When no name is requested the
// highest priority factory wins; ties fall back to registration order. An
// empty registry never resolves a factory.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
}

// NewRegistry constructs a registry with the built-in editors registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a factory under name. Higher priority values take precedence
// for the default; the latest registration of a name wins on lookup.
func (r *Registry) Register(name string, priority int, factory Factory) {
	if r == nil || factory == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry{
		name:     trimmed,
		priority: priority,
		factory:  factory,
		order:    len(r.entries),
	})
}

// Resolve returns the factory registered under name, or the default factory
// when name is blank.
func (r *Registry) Resolve(name string) (Factory, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	if len(r.entries) == 0 {
		r.mu.RUnlock()
		return nil, false
	}
	entries := append([]entry(nil), r.entries...)
	r.mu.RUnlock()

	trimmed := strings.TrimSpace(name)
	if trimmed != "" {
		for i := len(entries) - 1; i >= 0; i-- {
			if strings.EqualFold(entries[i].name, trimmed) {
				return entries[i].factory, true
			}
		}
		return nil, false
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].priority == entries[j].priority {
			return entries[i].order < entries[j].order
		}
		return entries[i].priority > entries[j].priority
	})
	return entries[0].factory, true
}

// Names lists registered editor names, sorted and de-duplicated.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.entries))
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		if _, ok := seen[e.name]; ok {
			continue
		}
		seen[e.name] = struct{}{}
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) registerBuiltins() {
	r.Register(EditorRich, 90, NewRich)
	r.Register(EditorPlain, 10, NewMemory)
}
