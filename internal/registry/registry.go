package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/tagscan/internal/config"
	"github.com/vk/tagscan/internal/inspector"
)

// Module is the interface every inspector package implements to be
// registered with the application.
type Module interface {
	Register(r *Registry)
}

// RegisteredInspector holds the compiled Go parts of one inspector.
type RegisteredInspector struct {
	// Fn produces the inspector's result for one item.
	Fn inspector.DecorateFunc
	// Supports optionally narrows eligibility beyond the manifest kind.
	// Nil accepts every item of the declared kind.
	Supports inspector.SupportsFunc
}

// Registry holds all registered handlers and definitions for a single
// application instance.
type Registry struct {
	handlers     map[string]*RegisteredInspector
	handlerOrder map[string]int
	defs         map[string]*config.InspectorDefinition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		handlers:     make(map[string]*RegisteredInspector),
		handlerOrder: make(map[string]int),
		defs:         make(map[string]*config.InspectorDefinition),
	}
}

// RegisterInspector registers a Go handler under the name manifests
// refer to it by. Double registration is a programmer error.
func (r *Registry) RegisterInspector(name string, h *RegisteredInspector) {
	if name == "" || h == nil || h.Fn == nil {
		panic("registry: inspector handler requires a name and a decorate function")
	}
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("inspector handler with name '%s' already registered", name))
	}
	slog.Debug("Registering inspector handler.", "name", name)
	r.handlerOrder[name] = len(r.handlers)
	r.handlers[name] = h
}

// PopulateDefinitionsFromModel copies the loaded inspector definitions
// from the config model into the registry. The inspector's own name is
// folded into its produces set here, so every later consumer sees the
// full contract.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	if model == nil {
		panic("registry: nil config model")
	}
	for name, def := range model.Inspectors {
		if def.Runnable() && !contains(def.Produces, def.Name) {
			def.Produces = append(def.Produces, def.Name)
		}
		r.defs[name] = def
	}
}

// Handler returns the registered handler with the given name.
func (r *Registry) Handler(name string) (*RegisteredInspector, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Definition returns the inspector definition with the given name.
func (r *Registry) Definition(name string) (*config.InspectorDefinition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Definitions returns all inspector definitions, keyed by name. The
// map is shared; callers must not mutate it.
func (r *Registry) Definitions() map[string]*config.InspectorDefinition {
	return r.defs
}

// Ordered returns the runnable definitions in a stable order: handler
// registration order first, definition name as tiebreak. This is the
// iteration order of the execution engine's inner loop.
func (r *Registry) Ordered() []*config.InspectorDefinition {
	out := make([]*config.InspectorDefinition, 0, len(r.defs))
	for _, def := range r.defs {
		if def.Runnable() {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		oi, oki := r.handlerOrder[out[i].Handler]
		oj, okj := r.handlerOrder[out[j].Handler]
		if oki && okj && oi != oj {
			return oi < oj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
